package dirstat

import (
	"context"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/idelchi/foldersize/internal/fserr"
	"github.com/idelchi/foldersize/internal/gateway"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// Scanner ranks the immediate subdirectories of a root by subtree size.
// A Scanner holds no per-scan state and may be used concurrently.
type Scanner struct {
	gw     gateway.Gateway
	logger *slog.Logger
}

// New creates a Scanner reading through gw.
func New(gw gateway.Gateway, opts ...Option) *Scanner {
	s := &Scanner{
		gw:     gw,
		logger: slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// startProgressReporter invokes hook(files, bytes) on each tick until ctx is done.
func startProgressReporter(ctx context.Context, run *scanRun, hook func(int64, int64), interval time.Duration) {
	if hook == nil {
		return
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				hook(run.files.Load(), run.bytes.Load())
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Scan lists the immediate subdirectories of root, sizes each of them in its
// own goroutine and returns the opt.Count largest, largest first.
//
// Failing to list root is always fatal, whatever opt.SuppressAccessErrors says.
// Below root, access failures are swallowed when suppression is on; missing
// paths and unknown failures always abort the scan. The first fatal failure
// cancels the remaining subdirectory scans and is the error returned.
// Every returned error carries an fserr.Kind.
func (s *Scanner) Scan(ctx context.Context, root string, opt Options) (*Result, error) {
	if opt.Count < 1 {
		opt.Count = 1
	}

	start := time.Now()

	if err := ctx.Err(); err != nil {
		return nil, fserr.Cancelled(err)
	}

	dirs, err := s.gw.ListDirectories(ctx, root)
	if err != nil {
		return nil, fserr.Classify(gateway.OpListDirectories, root, err)
	}

	s.logger.Debug("scan started",
		"root", root,
		"subdirectories", len(dirs),
		"count", opt.Count,
		"suppress", opt.SuppressAccessErrors,
	)

	run := &scanRun{
		gw:       s.gw,
		logger:   s.logger,
		suppress: opt.SuppressAccessErrors,
	}
	top := newTracker(opt.Count)

	// Child context stops the progress reporter once the scan returns.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	startProgressReporter(ctx, run, opt.Progress, opt.ProgressInterval)

	group, groupCtx := errgroup.WithContext(ctx)
	if opt.Concurrency > 0 {
		group.SetLimit(opt.Concurrency)
	}

	for _, dir := range dirs {
		group.Go(func() error {
			size, err := run.subtreeSize(groupCtx, dir)
			if err != nil {
				return err
			}

			top.tryInsert(dir, size)

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		s.logger.Debug("scan failed", "root", root, "kind", fserr.KindOf(err), "error", err)

		return nil, err
	}

	// Suppressed failures contribute nothing, so the byte counter is the sum of all subtrees.
	total := run.bytes.Load()

	result := &Result{
		Root:           root,
		Folders:        top.snapshot(),
		Subdirectories: len(dirs),
		TotalBytes:     total,
		Files:          run.files.Load(),
		Suppressed:     run.suppressed.Load(),
		Elapsed:        time.Since(start),
	}

	s.logger.Debug("scan finished",
		"root", root,
		"files", result.Files,
		"size", humanize.IBytes(uint64(total)), //nolint:gosec // sizes are never negative
		"suppressed", result.Suppressed,
		"elapsed", result.Elapsed,
	)

	return result, nil
}

// Top returns the paths of the count largest immediate subdirectories of root, largest first.
func (s *Scanner) Top(ctx context.Context, root string, count int, suppress bool) ([]string, error) {
	result, err := s.Scan(ctx, root, Options{Count: count, SuppressAccessErrors: suppress})
	if err != nil {
		return nil, err
	}

	return result.Paths(), nil
}
