package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPagerError_ErrorMessage(t *testing.T) {
	err := New(FileTooLarge, "validate", stderrors.New("exceeds 100 GiB")).WithPath("/var/log/huge.log")
	assert.Contains(t, err.Error(), "file_too_large")
	assert.Contains(t, err.Error(), "/var/log/huge.log")
	assert.Contains(t, err.Error(), "exceeds 100 GiB")
}

func TestPagerError_ErrorMessage_NoPath(t *testing.T) {
	err := New(SearchCompileFailure, "compile", stderrors.New("bad regex"))
	assert.NotContains(t, err.Error(), " for ")
}

func TestPagerError_Unwrap(t *testing.T) {
	underlying := stderrors.New("permission denied")
	err := New(PermissionDenied, "open", underlying)

	require.ErrorIs(t, err, underlying)
}

func TestPagerError_Is_MatchesByKind(t *testing.T) {
	a := New(FileNotFound, "open", stderrors.New("boom"))
	b := New(FileNotFound, "other-op", stderrors.New("different"))
	c := New(EmptyFile, "open", stderrors.New("boom"))

	assert.True(t, a.Is(b))
	assert.False(t, a.Is(c))
}
