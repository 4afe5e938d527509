// Package fserr classifies filesystem failures into the small set of kinds
// the scanner and its adapters act on.
package fserr

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

// Kind identifies a class of filesystem failure.
// Kinds are string-based so they read naturally in logs and JSON.
type Kind string

const (
	// KindNotFound indicates the target path does not exist.
	KindNotFound Kind = "NOT_FOUND"

	// KindAccessDenied covers permission, path-too-long and security-policy failures.
	KindAccessDenied Kind = "ACCESS_DENIED"

	// KindCancelled indicates the operation was abandoned through its context.
	KindCancelled Kind = "CANCELLED"

	// KindUnknown is anything else.
	KindUnknown Kind = "UNKNOWN"
)

// Error is a classified filesystem failure.
type Error struct {
	// Kind is the failure class.
	Kind Kind
	// Op is the gateway operation that failed (e.g. "list directories").
	Op string
	// Path is the path the operation was applied to.
	Path string
	// Err is the underlying error.
	Err error
}

// Error implements error.
func (e *Error) Error() string {
	switch {
	case e.Op != "" && e.Path != "":
		return fmt.Sprintf("%s %q: %v", e.Op, e.Path, e.Err)
	case e.Op != "":
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return e.Err.Error()
	}
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a classified error with an explicit kind.
func New(kind Kind, op, path string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

// Classify wraps err into an *Error with the kind derived from the native error.
// Errors that already carry a kind are returned unchanged. Classify(…, nil) is nil.
func Classify(op, path string, err error) error {
	if err == nil {
		return nil
	}

	var classified *Error
	if errors.As(err, &classified) {
		return err
	}

	return New(kindFor(err), op, path, err)
}

// Cancelled wraps a context error as a KindCancelled failure.
func Cancelled(err error) error {
	if err == nil {
		err = context.Canceled
	}

	return New(KindCancelled, "", "", err)
}

// KindOf returns the kind carried by err.
// Unclassified errors are KindUnknown; nil yields the empty kind.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}

	var classified *Error
	if errors.As(err, &classified) {
		return classified.Kind
	}

	return kindFor(err)
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Suppressible reports whether a failure of the given kind may be swallowed
// under the caller's suppression flag. Only access failures ever qualify.
func Suppressible(kind Kind, suppress bool) bool {
	return suppress && kind == KindAccessDenied
}

func kindFor(err error) Kind {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCancelled
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, syscall.ENOTDIR):
		return KindNotFound
	case errors.Is(err, fs.ErrPermission), errors.Is(err, syscall.ENAMETOOLONG):
		return KindAccessDenied
	default:
		return KindUnknown
	}
}
