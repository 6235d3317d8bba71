package source

import (
	"bufio"
	"compress/bzip2"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/ulikunitz/xz"

	"github.com/zhych125/lessgo/internal/compression"
	errs "github.com/zhych125/lessgo/internal/errors"
)

// decompressedSource streams a compressed input through the matching
// decoder into a fresh temp file, then memory-maps that temp file. The temp
// file stays on disk while the source is open; Close unmaps and closes it
// and then unlinks it, matching spec.md's "unlinked on drop".
type decompressedSource struct {
	mapped   *mappedSource
	tempPath string
}

func newDecompressedSource(path string, kind compression.Kind) (*decompressedSource, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, errs.New(errs.IoFailure, "open-compressed", err).WithPath(path)
	}
	defer in.Close()

	var reader io.Reader
	switch kind {
	case compression.Gzip:
		gz, gzErr := gzip.NewReader(in)
		if gzErr != nil {
			return nil, errs.New(errs.CompressionFailure, "gzip-init", gzErr).WithPath(path)
		}
		defer gz.Close()
		reader = gz
	case compression.Bzip2:
		reader = bzip2.NewReader(in)
	case compression.Xz:
		xr, xzErr := xz.NewReader(bufio.NewReader(in))
		if xzErr != nil {
			return nil, errs.New(errs.CompressionFailure, "xz-init", xzErr).WithPath(path)
		}
		reader = xr
	default:
		return nil, errs.New(errs.InvalidArgument, "decompress", nil).WithPath(path)
	}

	out, err := os.CreateTemp("", "lessgo-decompressed-*")
	if err != nil {
		return nil, errs.New(errs.IoFailure, "create-temp", err).WithPath(path)
	}
	tempPath := out.Name()

	if _, copyErr := io.Copy(out, reader); copyErr != nil {
		out.Close()
		os.Remove(tempPath)
		return nil, errs.New(errs.CompressionFailure, "decompress", copyErr).WithPath(path)
	}
	if closeErr := out.Close(); closeErr != nil {
		os.Remove(tempPath)
		return nil, errs.New(errs.IoFailure, "close-temp", closeErr).WithPath(path)
	}

	info, statErr := os.Stat(tempPath)
	if statErr != nil {
		os.Remove(tempPath)
		return nil, errs.New(errs.IoFailure, "stat-temp", statErr).WithPath(tempPath)
	}

	mapped, mapErr := newMappedSource(tempPath, info.Size())
	if mapErr != nil {
		os.Remove(tempPath)
		return nil, mapErr
	}

	return &decompressedSource{mapped: mapped, tempPath: tempPath}, nil
}

func (s *decompressedSource) Bytes() []byte { return s.mapped.Bytes() }
func (s *decompressedSource) Len() int64    { return s.mapped.Len() }

func (s *decompressedSource) Close() error {
	err := s.mapped.Close()
	if removeErr := os.Remove(s.tempPath); err == nil && removeErr != nil && !os.IsNotExist(removeErr) {
		err = removeErr
	}
	return err
}
