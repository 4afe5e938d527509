package gateway_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/foldersize/internal/fserr"
	"github.com/idelchi/foldersize/internal/gateway"
)

func TestInMemoryListing(t *testing.T) {
	ctx := context.Background()
	gw := gateway.NewInMemory()

	require.NoError(t, gw.Raw().MkdirAll("/root/a/deep", 0o755))
	require.NoError(t, gw.Raw().MkdirAll("/root/b", 0o755))
	require.NoError(t, util.WriteFile(gw.Raw(), "/root/one.bin", make([]byte, 3), 0o644))
	require.NoError(t, util.WriteFile(gw.Raw(), "/root/a/two.bin", make([]byte, 7), 0o644))

	dirs, err := gw.ListDirectories(ctx, "/root")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"/root/a", "/root/b"}, dirs)

	files, err := gw.ListFiles(ctx, "/root")
	require.NoError(t, err)
	assert.Equal(t, []string{"/root/one.bin"}, files)

	size, err := gw.FileLength(ctx, "/root/a/two.bin")
	require.NoError(t, err)
	assert.EqualValues(t, 7, size)
}

func TestInMemoryNotFound(t *testing.T) {
	ctx := context.Background()
	gw := gateway.NewInMemory()

	_, err := gw.ListDirectories(ctx, "/missing")
	require.Error(t, err)
	assert.True(t, fserr.Is(err, fserr.KindNotFound), "got %v", err)

	_, err = gw.ListFiles(ctx, "/missing")
	assert.True(t, fserr.Is(err, fserr.KindNotFound), "got %v", err)

	_, err = gw.FileLength(ctx, "/missing/file")
	assert.True(t, fserr.Is(err, fserr.KindNotFound), "got %v", err)
}

func TestOSListing(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub", "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "top.txt"), []byte("hello"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "inner.txt"), []byte("world!"), 0o644))

	gw := gateway.NewOS()

	dirs, err := gw.ListDirectories(ctx, root)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "sub")}, dirs)

	files, err := gw.ListFiles(ctx, root)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "top.txt")}, files)

	size, err := gw.FileLength(ctx, filepath.Join(root, "sub", "inner.txt"))
	require.NoError(t, err)
	assert.EqualValues(t, 6, size)
}

func TestOSRelativePaths(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "rel", "child"), 0o755))
	t.Chdir(root)

	dirs, err := gateway.NewOS().ListDirectories(context.Background(), "rel")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("rel", "child")}, dirs)
}

func TestOSSkipsSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated privileges on windows")
	}

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "real"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "file"), []byte("x"), 0o644))
	require.NoError(t, os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "dirlink")))
	require.NoError(t, os.Symlink(filepath.Join(root, "file"), filepath.Join(root, "filelink")))

	gw := gateway.NewOS()

	dirs, err := gw.ListDirectories(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "real")}, dirs)

	files, err := gw.ListFiles(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "file")}, files)
}

func TestOSErrors(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	gw := gateway.NewOS()

	_, err := gw.ListDirectories(ctx, filepath.Join(root, "nope"))
	assert.True(t, fserr.Is(err, fserr.KindNotFound), "got %v", err)

	file := filepath.Join(root, "plain")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	_, err = gw.ListDirectories(ctx, file)
	assert.True(t, fserr.Is(err, fserr.KindNotFound), "listing a file: got %v", err)
}

func TestOSPermissionDenied(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced here")
	}

	root := t.TempDir()
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Mkdir(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	_, err := gateway.NewOS().ListFiles(context.Background(), locked)
	require.Error(t, err)
	assert.True(t, fserr.Is(err, fserr.KindAccessDenied), "got %v", err)
}
