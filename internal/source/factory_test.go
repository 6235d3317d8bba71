package source

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SmallPlainFile_InMemory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "small.log")
	content := []byte("line one\nline two\nline three\n")
	require.NoError(t, os.WriteFile(path, content, 0644))

	src, err := Open(path)
	require.NoError(t, err)
	defer src.Close()

	_, isInMemory := src.(*inMemorySource)
	assert.True(t, isInMemory)
	assert.Equal(t, content, src.Bytes())
	assert.EqualValues(t, len(content), src.Len())
}

func TestOpen_LargePlainFile_Mapped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "large.log")
	content := bytes.Repeat([]byte("x"), int(inMemoryThreshold())+1024)
	require.NoError(t, os.WriteFile(path, content, 0644))

	src, err := Open(path)
	require.NoError(t, err)
	defer src.Close()

	_, isMapped := src.(*mappedSource)
	assert.True(t, isMapped)
	assert.EqualValues(t, len(content), src.Len())
}

func TestOpen_GzipFile_DecompressedAndMapped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.gz")
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte("alpha\nbeta\ngamma\n"))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	src, err := Open(path)
	require.NoError(t, err)
	defer src.Close()

	decompressed, ok := src.(*decompressedSource)
	require.True(t, ok)
	assert.Equal(t, []byte("alpha\nbeta\ngamma\n"), src.Bytes())
	assert.FileExists(t, decompressed.tempPath)
}

func TestOpen_GzipFile_TempFileUnlinkedOnClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.gz")
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte("alpha\n"))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	src, err := Open(path)
	require.NoError(t, err)
	decompressed := src.(*decompressedSource)
	tempPath := decompressed.tempPath

	require.NoError(t, src.Close())
	_, statErr := os.Stat(tempPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.log"))
	assert.Error(t, err)
}
