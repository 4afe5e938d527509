// Package gatewaytest provides an in-memory Gateway with fault injection for tests.
package gatewaytest

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/go-git/go-billy/v5/util"

	"github.com/idelchi/foldersize/internal/fserr"
	"github.com/idelchi/foldersize/internal/gateway"
)

// Tree is a memfs-backed gateway.Gateway whose operations can be made to fail per path.
type Tree struct {
	fs *gateway.FS

	mu     sync.RWMutex
	faults map[fault]error
	hooks  map[fault]func()

	calls atomic.Int64
}

type fault struct {
	op   string
	path string
}

// New creates an empty tree.
func New() *Tree {
	return &Tree{
		fs:     gateway.NewInMemory(),
		faults: make(map[fault]error),
		hooks:  make(map[fault]func()),
	}
}

// Dir creates the directory at path, including parents.
func (t *Tree) Dir(path string) *Tree {
	if err := t.fs.Raw().MkdirAll(path, 0o755); err != nil {
		panic(err)
	}

	return t
}

// File creates a file of size bytes at path, including parents.
func (t *Tree) File(path string, size int) *Tree {
	t.Dir(filepath.Dir(path))

	if err := util.WriteFile(t.fs.Raw(), path, make([]byte, size), 0o644); err != nil {
		panic(err)
	}

	return t
}

// Fail makes op on path return a classified error of the given kind.
// op is one of the gateway.Op* constants.
func (t *Tree) Fail(op, path string, kind fserr.Kind) *Tree {
	return t.FailWith(op, path, fserr.New(kind, op, path, errFor(kind)))
}

// FailWith makes op on path return err verbatim.
func (t *Tree) FailWith(op, path string, err error) *Tree {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.faults[fault{op: op, path: path}] = err

	return t
}

// OnCall runs fn right before op on path is answered.
func (t *Tree) OnCall(op, path string, fn func()) *Tree {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.hooks[fault{op: op, path: path}] = fn

	return t
}

// Calls returns the number of gateway operations served so far.
func (t *Tree) Calls() int64 {
	return t.calls.Load()
}

// FileLength implements gateway.Gateway.
func (t *Tree) FileLength(ctx context.Context, path string) (int64, error) {
	if err := t.intercept(gateway.OpFileLength, path); err != nil {
		return 0, err
	}

	return t.fs.FileLength(ctx, path)
}

// ListDirectories implements gateway.Gateway.
func (t *Tree) ListDirectories(ctx context.Context, path string) ([]string, error) {
	if err := t.intercept(gateway.OpListDirectories, path); err != nil {
		return nil, err
	}

	return t.fs.ListDirectories(ctx, path)
}

// ListFiles implements gateway.Gateway.
func (t *Tree) ListFiles(ctx context.Context, path string) ([]string, error) {
	if err := t.intercept(gateway.OpListFiles, path); err != nil {
		return nil, err
	}

	return t.fs.ListFiles(ctx, path)
}

func (t *Tree) intercept(op, path string) error {
	t.calls.Add(1)

	t.mu.RLock()
	hook := t.hooks[fault{op: op, path: path}]
	err := t.faults[fault{op: op, path: path}]
	t.mu.RUnlock()

	if hook != nil {
		hook()
	}

	return err
}

var _ gateway.Gateway = (*Tree)(nil)
