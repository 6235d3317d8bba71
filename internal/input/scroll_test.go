package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrollCoalescer_SingleTickNoImmediateFlush(t *testing.T) {
	c := NewScrollCoalescer()
	base := time.Unix(0, 0)
	_, flushed := c.Tick(ScrollDown, base)
	assert.False(t, flushed)
}

func TestScrollCoalescer_SameDirectionWithinWindowSums(t *testing.T) {
	c := NewScrollCoalescer()
	base := time.Unix(0, 0)
	c.Tick(ScrollDown, base)
	c.Tick(ScrollDown, base.Add(5*time.Millisecond))
	c.Tick(ScrollDown, base.Add(9*time.Millisecond))

	a, ok := c.Flush()
	require.True(t, ok)
	assert.Equal(t, ActionScroll, a.Kind)
	assert.Equal(t, ScrollDown, a.ScrollDir)
	assert.Equal(t, DefaultWheelTick*3, a.Lines)
}

func TestScrollCoalescer_DirectionChangeFlushesPending(t *testing.T) {
	c := NewScrollCoalescer()
	base := time.Unix(0, 0)
	c.Tick(ScrollDown, base)
	c.Tick(ScrollDown, base.Add(2*time.Millisecond))

	flushed, ok := c.Tick(ScrollUp, base.Add(3*time.Millisecond))
	require.True(t, ok)
	assert.Equal(t, ScrollDown, flushed.ScrollDir)
	assert.Equal(t, DefaultWheelTick*2, flushed.Lines)

	a, ok := c.Flush()
	require.True(t, ok)
	assert.Equal(t, ScrollUp, a.ScrollDir)
	assert.Equal(t, DefaultWheelTick, a.Lines)
}

func TestScrollCoalescer_WindowExpiryFlushesOnNextTick(t *testing.T) {
	c := NewScrollCoalescer()
	base := time.Unix(0, 0)
	c.Tick(ScrollDown, base)

	flushed, ok := c.Tick(ScrollDown, base.Add(20*time.Millisecond))
	require.True(t, ok)
	assert.Equal(t, DefaultWheelTick, flushed.Lines)
}

func TestScrollCoalescer_Expired(t *testing.T) {
	c := NewScrollCoalescer()
	base := time.Unix(0, 0)
	assert.False(t, c.Expired(base))
	c.Tick(ScrollDown, base)
	assert.False(t, c.Expired(base.Add(5*time.Millisecond)))
	assert.True(t, c.Expired(base.Add(13*time.Millisecond)))
}

func TestScrollCoalescer_FlushWithNoPendingIsNoOp(t *testing.T) {
	c := NewScrollCoalescer()
	_, ok := c.Flush()
	assert.False(t, ok)
}
