package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/idelchi/foldersize/internal/dirstat"
	"github.com/idelchi/foldersize/internal/gateway"
	"github.com/idelchi/foldersize/internal/logging"
	"github.com/idelchi/foldersize/internal/server"
)

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func top(ctx context.Context, options TopOptions, stdout, stderr io.Writer) error {
	logger, err := logging.New(stderr, logging.Options{Debug: options.Debug})
	if err != nil {
		return err
	}

	enableProgress := options.Output == "table" && !options.Debug && isTerminal(stderr)

	// Simple progress callback that prints directly to stderr
	var progressHook func(files, bytes int64)

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(stderr, "\033[?25l")
		defer fmt.Fprint(stderr, "\033[?25h")

		progressHook = func(files, bytes int64) {
			msg := fmt.Sprintf("Scanning… %d files, %s",
				files, humanize.IBytes(uint64(bytes))) //nolint:gosec // Bytes is always positive
			fmt.Fprintf(stderr, "\r\033[2K%s\r", msg)
		}
	}

	scanner := dirstat.New(gateway.NewOS(), dirstat.WithLogger(logger))

	result, err := scanner.Scan(ctx, options.Path, dirstat.Options{
		Count:                options.Count,
		SuppressAccessErrors: options.SuppressAccessErrors,
		Concurrency:          options.Concurrency,
		Progress:             progressHook,
	})

	// Clear the status line
	if enableProgress {
		fmt.Fprint(stderr, "\r\033[2K\r")
	}

	if err != nil {
		return fmt.Errorf("scanning %q: %w", options.Path, err)
	}

	switch options.Output {
	case "json":
		return PrintJSON(result, stdout)
	case "paths":
		return PrintPaths(result, stdout)
	default:
		return PrintTable(result, stdout)
	}
}

func serve(ctx context.Context, options ServeOptions, stderr io.Writer) error {
	cfg := options.Config

	logger, err := logging.New(stderr, logging.Options{Debug: cfg.Debug, Format: cfg.LogFormat})
	if err != nil {
		return err
	}

	scanner := dirstat.New(gateway.NewOS(), dirstat.WithLogger(logger))

	srv := server.New(scanner, server.Options{
		DefaultCount: cfg.DefaultCount,
		Concurrency:  cfg.Concurrency,
		Logger:       logger,
	})

	return srv.ListenAndServe(ctx, cfg.Addr, server.Timeouts{
		ReadHeader: cfg.ReadHeaderTimeout,
		Shutdown:   cfg.ShutdownTimeout,
	})
}
