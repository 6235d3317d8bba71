package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefault_HasSaneBaseline(t *testing.T) {
	opts := Default()
	assert.Equal(t, 24, opts.PageLines)
	assert.Equal(t, 3, opts.WheelTick)
	assert.Equal(t, 32, opts.MatcherCacheSize)
	assert.Empty(t, opts.DebugLogPath)
}
