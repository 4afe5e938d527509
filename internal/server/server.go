// Package server exposes the folder scanner over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/idelchi/foldersize/internal/dirstat"
	"github.com/idelchi/foldersize/internal/logging"
)

// FilePath is the route serving the largest-folders query.
const FilePath = "/api/v1/File"

// Finder ranks the subdirectories of a root by size.
type Finder interface {
	Scan(ctx context.Context, root string, opt dirstat.Options) (*dirstat.Result, error)
}

// Options configures the HTTP handler.
type Options struct {
	// DefaultCount is used when a request has no count parameter.
	DefaultCount int
	// Concurrency is forwarded to every scan.
	Concurrency int
	// Logger receives request failures.
	Logger *slog.Logger
}

// Server serves folder rankings.
type Server struct {
	finder Finder
	opts   Options
	logger *slog.Logger
}

// New creates a Server backed by finder.
func New(finder Finder, opts Options) *Server {
	if opts.DefaultCount < 1 {
		opts.DefaultCount = dirstat.DefaultCount
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	return &Server{
		finder: finder,
		opts:   opts,
		logger: logger,
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET "+FilePath, s.handle(s.getFolders))

	return mux
}

// Timeouts bounds the HTTP server's waiting.
type Timeouts struct {
	// ReadHeader limits how long a client may take to send request headers.
	ReadHeader time.Duration
	// Shutdown limits how long in-flight requests may drain once ctx is done.
	Shutdown time.Duration
}

// ListenAndServe listens on addr and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string, timeouts Timeouts) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %q: %w", addr, err)
	}

	return s.Serve(ctx, ln, timeouts)
}

// Serve accepts connections on ln until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener, timeouts Timeouts) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: timeouts.ReadHeader,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}

	errc := make(chan error, 1)

	go func() {
		errc <- srv.Serve(ln)
	}()

	s.logger.Info("listening", "addr", ln.Addr().String())

	select {
	case err := <-errc:
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "timeout", timeouts.Shutdown)

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeouts.Shutdown)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}

	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving: %w", err)
	}

	return nil
}
