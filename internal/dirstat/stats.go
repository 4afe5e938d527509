package dirstat

import (
	"log/slog"
	"time"
)

// DefaultCount is the number of folders reported when none is requested.
const DefaultCount = 5

// SizeRecord is one candidate folder and the size of its subtree.
type SizeRecord struct {
	// Path is the folder path as listed by the gateway.
	Path string `json:"path"`
	// Size is the cumulative size in bytes of every file under Path.
	Size int64 `json:"size"`
}

// Result holds the outcome of a completed scan.
type Result struct {
	// Root is the scanned directory.
	Root string `json:"root"`
	// Folders contains the largest immediate subdirectories, largest first.
	Folders []SizeRecord `json:"folders"`
	// Subdirectories is the number of immediate subdirectories of Root.
	Subdirectories int `json:"subdirectories"`
	// TotalBytes is the cumulative size of all immediate subdirectories.
	TotalBytes int64 `json:"total_bytes"`
	// Files is the number of files whose size was counted.
	Files int64 `json:"files"`
	// Suppressed is the number of access failures that were swallowed.
	Suppressed int64 `json:"suppressed"`
	// Elapsed is the total time taken by the scan.
	Elapsed time.Duration `json:"elapsed"`
}

// Paths returns the folder paths of r in ranking order.
func (r *Result) Paths() []string {
	paths := make([]string, len(r.Folders))
	for i, folder := range r.Folders {
		paths[i] = folder.Path
	}

	return paths
}

// Options configures a single scan.
type Options struct {
	// Count is the number of largest folders to report. Values below 1 are treated as 1.
	Count int
	// SuppressAccessErrors swallows access failures below the root.
	SuppressAccessErrors bool
	// Concurrency bounds the number of subdirectories scanned at once (0 = one goroutine each).
	Concurrency int
	// Progress, if set, is called periodically with the files and bytes counted so far.
	Progress func(files, bytes int64)
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithLogger sets the logger used for suppressed failures and scan summaries.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) {
		if logger != nil {
			s.logger = logger
		}
	}
}
