package dirstat

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/idelchi/foldersize/internal/fserr"
	"github.com/idelchi/foldersize/internal/gateway"
)

// scanRun holds the per-scan policy and the counters shared by its goroutines.
type scanRun struct {
	gw       gateway.Gateway
	logger   *slog.Logger
	suppress bool

	files      atomic.Int64
	bytes      atomic.Int64
	suppressed atomic.Int64
}

// subtreeSize returns the cumulative size of every file below root.
//
// The traversal keeps its own stack of pending directories instead of
// recursing, so deep trees cost heap rather than goroutine stack. Totals do
// not depend on the visiting order.
func (r *scanRun) subtreeSize(ctx context.Context, root string) (int64, error) {
	var total int64

	pending := []string{root}

	for len(pending) > 0 {
		dir := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		files, err := query(ctx, r, gateway.OpListFiles, dir, r.gw.ListFiles)
		if err != nil {
			return 0, err
		}

		for _, file := range files {
			size, err := query(ctx, r, gateway.OpFileLength, file, r.gw.FileLength)
			if err != nil {
				return 0, err
			}

			total += size

			r.files.Add(1)
			r.bytes.Add(size)
		}

		dirs, err := query(ctx, r, gateway.OpListDirectories, dir, r.gw.ListDirectories)
		if err != nil {
			return 0, err
		}

		pending = append(pending, dirs...)
	}

	return total, nil
}

// query performs one gateway call under the cancellation and suppression policy.
// A suppressed failure yields the zero value and a nil error.
func query[T any](
	ctx context.Context,
	r *scanRun,
	op, path string,
	call func(context.Context, string) (T, error),
) (T, error) {
	var zero T

	if err := ctx.Err(); err != nil {
		return zero, fserr.Cancelled(err)
	}

	value, err := call(ctx, path)
	if err == nil {
		return value, nil
	}

	err = fserr.Classify(op, path, err)

	if fserr.Suppressible(fserr.KindOf(err), r.suppress) {
		r.suppressed.Add(1)
		r.logger.Info("suppressed access error", "op", op, "path", path, "error", err)

		return zero, nil
	}

	return zero, err
}
