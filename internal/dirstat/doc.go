// Package dirstat finds the largest immediate subdirectories of a root.
//
// Each subdirectory is sized in its own goroutine by an iterative traversal
// through a gateway.Gateway, and the results feed a bounded, mutex-guarded
// top-K tracker. Access failures below the root can be suppressed; missing
// paths and unknown failures always abort the scan.
package dirstat
