// Package gateway abstracts the handful of filesystem queries the scanner needs.
//
// Every failure returned by a Gateway is classified with fserr, so callers can
// decide on suppression without inspecting native errors.
package gateway

import (
	"context"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/idelchi/foldersize/internal/fserr"
)

// Operation names used in classified errors.
const (
	OpFileLength      = "file length"
	OpListDirectories = "list directories"
	OpListFiles       = "list files"
)

// Gateway answers size and listing queries against some storage.
type Gateway interface {
	// FileLength returns the size in bytes of the file at path.
	FileLength(ctx context.Context, path string) (int64, error)
	// ListDirectories returns the paths of the immediate subdirectories of path.
	ListDirectories(ctx context.Context, path string) ([]string, error)
	// ListFiles returns the paths of the regular files directly inside path.
	ListFiles(ctx context.Context, path string) ([]string, error)
}

// FS implements Gateway on top of a go-billy filesystem.
// Symbolic links are neither listed as directories nor as files.
type FS struct {
	fs billy.Filesystem
	// resolve maps caller paths to the paths handed to fs. Returned paths
	// are always built from the caller's path, not the resolved one.
	resolve func(string) (string, error)
}

// New wraps the given billy filesystem.
func New(fsys billy.Filesystem) *FS {
	return &FS{fs: fsys}
}

// NewOS returns a gateway over the host filesystem.
// Relative paths are resolved against the working directory.
func NewOS() *FS {
	return &FS{
		fs:      osfs.New(""),
		resolve: filepath.Abs,
	}
}

// NewInMemory returns a gateway over an empty in-memory filesystem.
func NewInMemory() *FS {
	return New(memfs.New())
}

// Raw returns the underlying billy filesystem.
//
//nolint:ireturn // exposes the adapter target
func (g *FS) Raw() billy.Filesystem {
	return g.fs
}

// FileLength implements Gateway.
func (g *FS) FileLength(_ context.Context, path string) (int64, error) {
	target, err := g.target(path)
	if err != nil {
		return 0, fserr.Classify(OpFileLength, path, err)
	}

	info, err := g.fs.Stat(target)
	if err != nil {
		return 0, fserr.Classify(OpFileLength, path, err)
	}

	return info.Size(), nil
}

// ListDirectories implements Gateway.
func (g *FS) ListDirectories(_ context.Context, path string) ([]string, error) {
	return g.list(OpListDirectories, path, func(info os.FileInfo) bool {
		return info.IsDir()
	})
}

// ListFiles implements Gateway.
func (g *FS) ListFiles(_ context.Context, path string) ([]string, error) {
	return g.list(OpListFiles, path, func(info os.FileInfo) bool {
		return info.Mode().IsRegular()
	})
}

func (g *FS) list(op, path string, keep func(os.FileInfo) bool) ([]string, error) {
	target, err := g.target(path)
	if err != nil {
		return nil, fserr.Classify(op, path, err)
	}

	entries, err := g.fs.ReadDir(target)
	if err != nil {
		return nil, fserr.Classify(op, path, err)
	}

	paths := make([]string, 0, len(entries))

	for _, entry := range entries {
		if keep(entry) {
			paths = append(paths, filepath.Join(path, entry.Name()))
		}
	}

	return paths, nil
}

func (g *FS) target(path string) (string, error) {
	if g.resolve == nil {
		return path, nil
	}

	return g.resolve(path)
}

var _ Gateway = (*FS)(nil)
