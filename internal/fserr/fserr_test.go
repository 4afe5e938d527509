package fserr_test

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/foldersize/internal/fserr"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want fserr.Kind
	}{
		{"not exist", fs.ErrNotExist, fserr.KindNotFound},
		{"path error enoent", &os.PathError{Op: "open", Path: "/x", Err: syscall.ENOENT}, fserr.KindNotFound},
		{"not a directory", &os.PathError{Op: "open", Path: "/x", Err: syscall.ENOTDIR}, fserr.KindNotFound},
		{"permission", fs.ErrPermission, fserr.KindAccessDenied},
		{"eacces", &os.PathError{Op: "open", Path: "/x", Err: syscall.EACCES}, fserr.KindAccessDenied},
		{"name too long", &os.PathError{Op: "open", Path: "/x", Err: syscall.ENAMETOOLONG}, fserr.KindAccessDenied},
		{"canceled", context.Canceled, fserr.KindCancelled},
		{"deadline", fmt.Errorf("scan: %w", context.DeadlineExceeded), fserr.KindCancelled},
		{"other", errors.New("disk on fire"), fserr.KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fserr.Classify("list files", "/x", tt.err)
			require.Error(t, err)
			assert.Equal(t, tt.want, fserr.KindOf(err))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestClassifyNil(t *testing.T) {
	assert.NoError(t, fserr.Classify("stat", "/x", nil))
	assert.Equal(t, fserr.Kind(""), fserr.KindOf(nil))
}

func TestClassifyKeepsExistingKind(t *testing.T) {
	inner := fserr.New(fserr.KindAccessDenied, "stat", "/a", errors.New("denied"))
	wrapped := fmt.Errorf("scanning: %w", inner)

	err := fserr.Classify("list files", "/b", wrapped)

	assert.Same(t, wrapped, err)
	assert.True(t, fserr.Is(err, fserr.KindAccessDenied))
}

func TestErrorMessage(t *testing.T) {
	err := fserr.New(fserr.KindNotFound, "list directories", "/gone", fs.ErrNotExist)
	assert.Equal(t, `list directories "/gone": file does not exist`, err.Error())

	assert.Equal(t, "context canceled", fserr.Cancelled(nil).Error())
}

func TestSuppressible(t *testing.T) {
	assert.True(t, fserr.Suppressible(fserr.KindAccessDenied, true))
	assert.False(t, fserr.Suppressible(fserr.KindAccessDenied, false))
	assert.False(t, fserr.Suppressible(fserr.KindNotFound, true))
	assert.False(t, fserr.Suppressible(fserr.KindUnknown, true))
	assert.False(t, fserr.Suppressible(fserr.KindCancelled, true))
}
