//go:build unix

package source

import (
	"os"

	"golang.org/x/sys/unix"

	errs "github.com/zhych125/lessgo/internal/errors"
)

// mappedSource memory-maps an already-validated, already-sized plain file
// read-only. Grounded on the gogrep mmap reader: open, Fadvise sequential,
// syscall.Mmap PROT_READ|MAP_PRIVATE.
type mappedSource struct {
	file *os.File
	data []byte
}

func newMappedSource(path string, size int64) (*mappedSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.New(errs.IoFailure, "open-for-mmap", err).WithPath(path)
	}

	fd := int(f.Fd())
	_ = unix.Fadvise(fd, 0, size, unix.FADV_SEQUENTIAL) // non-fatal advisory hint

	data, err := unix.Mmap(fd, 0, int(size), unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		f.Close()
		return nil, errs.New(errs.MappingFailure, "mmap", err).WithPath(path)
	}
	_ = unix.Madvise(data, unix.MADV_SEQUENTIAL) // non-fatal advisory hint

	return &mappedSource{file: f, data: data}, nil
}

func (s *mappedSource) Bytes() []byte { return s.data }
func (s *mappedSource) Len() int64    { return int64(len(s.data)) }

func (s *mappedSource) Close() error {
	var err error
	if s.data != nil {
		err = unix.Munmap(s.data)
		s.data = nil
	}
	if closeErr := s.file.Close(); err == nil {
		err = closeErr
	}
	return err
}
