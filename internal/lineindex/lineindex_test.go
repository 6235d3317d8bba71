package lineindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnsureIndexedTo_GrowsOffsets(t *testing.T) {
	data := []byte("first\nsecond\nthird\nfourth\n")
	idx := New(int64(len(data)))

	idx.EnsureIndexedTo(data, int64(len(data)))

	assert.Equal(t, 5, idx.LineCount()) // starts: 0, 6, 13, 19, 26(=len, EOF line start never recorded beyond data)
	start, ok := idx.LineStart(1)
	assert.True(t, ok)
	assert.EqualValues(t, 6, start)
}

func TestEnsureIndexedTo_NoOpWhenAlreadyCovered(t *testing.T) {
	data := []byte("a\nb\nc\n")
	idx := New(int64(len(data)))
	idx.EnsureIndexedTo(data, 4)
	watermark := idx.IndexedTo()

	idx.EnsureIndexedTo(data, 2) // target <= current watermark
	assert.Equal(t, watermark, idx.IndexedTo())
}

func TestEnsureIndexedTo_NeverShrinks(t *testing.T) {
	data := []byte("a\nb\nc\nd\n")
	idx := New(int64(len(data)))
	idx.EnsureIndexedTo(data, int64(len(data)))
	full := idx.LineCount()

	idx.EnsureIndexedTo(data, 2)
	assert.Equal(t, full, idx.LineCount())
}

func TestEnsureIndexedTo_ClampsToSize(t *testing.T) {
	data := []byte("a\nb\n")
	idx := New(int64(len(data)))
	idx.EnsureIndexedTo(data, 1000)
	assert.Equal(t, int64(len(data)), idx.IndexedTo())
}
