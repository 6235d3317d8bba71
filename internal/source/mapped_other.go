//go:build !unix

package source

import (
	"os"

	errs "github.com/zhych125/lessgo/internal/errors"
)

// mappedSource on non-unix platforms falls back to a full read; memory
// mapping here is a POSIX-specific optimization (unix.Mmap) and spec.md §4.3
// only requires mmap where the platform exposes it.
type mappedSource struct {
	data []byte
}

func newMappedSource(path string, size int64) (*mappedSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.New(errs.MappingFailure, "mmap-fallback-read", err).WithPath(path)
	}
	return &mappedSource{data: data}, nil
}

func (s *mappedSource) Bytes() []byte { return s.data }
func (s *mappedSource) Len() int64    { return int64(len(s.data)) }
func (s *mappedSource) Close() error  { return nil }
