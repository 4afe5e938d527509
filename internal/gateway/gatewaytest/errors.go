package gatewaytest

import (
	"errors"
	"io/fs"

	"github.com/idelchi/foldersize/internal/fserr"
)

var errInjected = errors.New("injected failure")

func errFor(kind fserr.Kind) error {
	switch kind {
	case fserr.KindNotFound:
		return fs.ErrNotExist
	case fserr.KindAccessDenied:
		return fs.ErrPermission
	default:
		return errInjected
	}
}
