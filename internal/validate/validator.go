// Package validate rejects unusable inputs before any mapping is attempted,
// per spec.md §4.2.
package validate

import (
	"os"

	errs "github.com/zhych125/lessgo/internal/errors"
)

// MaxFileSize is the 100 GiB ceiling from spec.md §4.2.
const MaxFileSize = 100 << 30

// File validates path and returns its size once every check passes.
// Checks run in this order: existence, regular-file, non-empty, not too
// large, and openable for read.
func File(path string) (size int64, err error) {
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return 0, errs.New(errs.FileNotFound, "stat", statErr).WithPath(path)
		}
		if os.IsPermission(statErr) {
			return 0, errs.New(errs.PermissionDenied, "stat", statErr).WithPath(path)
		}
		return 0, errs.New(errs.IoFailure, "stat", statErr).WithPath(path)
	}

	if !info.Mode().IsRegular() {
		return 0, errs.New(errs.NotARegularFile, "stat", nil).WithPath(path)
	}

	if info.Size() == 0 {
		return 0, errs.New(errs.EmptyFile, "stat", nil).WithPath(path)
	}

	if info.Size() > MaxFileSize {
		return 0, errs.New(errs.FileTooLarge, "stat", nil).WithPath(path)
	}

	f, openErr := os.Open(path)
	if openErr != nil {
		if os.IsPermission(openErr) {
			return 0, errs.New(errs.PermissionDenied, "open", openErr).WithPath(path)
		}
		return 0, errs.New(errs.IoFailure, "open", openErr).WithPath(path)
	}
	defer f.Close()

	return info.Size(), nil
}
