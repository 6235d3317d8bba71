// Package compression classifies files by magic bytes, per spec.md §4.1.
package compression

import (
	"io"
	"os"

	errs "github.com/zhych125/lessgo/internal/errors"
)

// Kind is the detected compression format of a file.
type Kind int

const (
	None Kind = iota
	Gzip
	Bzip2
	Xz
)

func (k Kind) String() string {
	switch k {
	case Gzip:
		return "gzip"
	case Bzip2:
		return "bzip2"
	case Xz:
		return "xz"
	default:
		return "none"
	}
}

var (
	gzipMagic  = []byte{0x1F, 0x8B}
	bzip2Magic = []byte{0x42, 0x5A, 0x68}
	xzMagic    = []byte{0xFD, 0x37, 0x7A, 0x58, 0x5A, 0x00}
)

// Detect opens path, reads up to 8 leading bytes, and classifies the file.
// Files shorter than 2 bytes classify as None. Detect never inspects the
// file extension and fails only on I/O error.
func Detect(path string) (Kind, error) {
	f, err := os.Open(path)
	if err != nil {
		return None, errs.New(errs.IoFailure, "detect-compression", err).WithPath(path)
	}
	defer f.Close()

	var header [8]byte
	n, err := io.ReadFull(f, header[:])
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return None, errs.New(errs.IoFailure, "detect-compression", err).WithPath(path)
	}

	return classify(header[:n]), nil
}

func classify(header []byte) Kind {
	if len(header) < 2 {
		return None
	}
	if hasPrefix(header, xzMagic) {
		return Xz
	}
	if hasPrefix(header, bzip2Magic) {
		return Bzip2
	}
	if hasPrefix(header, gzipMagic) {
		return Gzip
	}
	return None
}

func hasPrefix(header, magic []byte) bool {
	if len(header) < len(magic) {
		return false
	}
	for i, b := range magic {
		if header[i] != b {
			return false
		}
	}
	return true
}
