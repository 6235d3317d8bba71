package source

import (
	"os"
	"runtime"

	"github.com/zhych125/lessgo/internal/compression"
	errs "github.com/zhych125/lessgo/internal/errors"
	"github.com/zhych125/lessgo/internal/validate"
)

// inMemoryThreshold is the size below which a plain file is loaded into a
// heap buffer instead of memory-mapped, per spec.md §4.3.
const (
	inMemoryThresholdDarwin    = 50 << 20
	inMemoryThresholdOtherOS   = 10 << 20
)

func inMemoryThreshold() int64 {
	if runtime.GOOS == "darwin" {
		return inMemoryThresholdDarwin
	}
	return inMemoryThresholdOtherOS
}

// Open validates path, detects compression, and constructs the matching
// Source variant: a heap buffer for small plain files, a memory map for
// large plain files, or a memory map over a freshly decompressed temp file
// for compressed input.
func Open(path string) (Source, error) {
	size, err := validate.File(path)
	if err != nil {
		return nil, err
	}

	kind, err := compression.Detect(path)
	if err != nil {
		return nil, err
	}

	if kind != compression.None {
		return newDecompressedSource(path, kind)
	}

	if size < inMemoryThreshold() {
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, errs.New(errs.IoFailure, "read-in-memory", readErr).WithPath(path)
		}
		return newInMemorySource(data), nil
	}

	return newMappedSource(path, size)
}
