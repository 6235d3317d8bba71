// Package search compiles patterns into matchers and drives forward/backward
// search by delegating line scanning to an injected accessor, per
// spec.md §4.5.
package search

import (
	"context"

	"github.com/zhych125/lessgo/internal/access"
)

// LineAccessor is the subset of *access.Accessor the engine needs, kept as
// an interface so the engine can be tested without a real byte source.
type LineAccessor interface {
	FindNextMatch(ctx context.Context, start int64, predicate access.MatchPredicate) (int64, bool)
	FindPrevMatch(ctx context.Context, start int64, predicate access.MatchPredicate) (int64, bool)
}

// Engine compiles patterns and drives search traversal. It caches compiled
// matchers and is safe for use by a single owning goroutine (the search
// worker); concurrent use is not required by spec.md and the cache already
// serializes itself internally.
type Engine struct {
	accessor LineAccessor
	cache    *matcherCache
}

// NewEngine creates an Engine over accessor with a bounded matcher cache of
// the given capacity (<=0 uses a sensible default).
func NewEngine(accessor LineAccessor, cacheCapacity int) *Engine {
	return &Engine{accessor: accessor, cache: newMatcherCache(cacheCapacity)}
}

func (e *Engine) matcherFor(pattern string, opts Options) (*matcher, error) {
	if m, ok := e.cache.get(pattern, opts); ok {
		return m, nil
	}
	m, err := compile(pattern, opts)
	if err != nil {
		return nil, err
	}
	e.cache.put(pattern, opts, m)
	return m, nil
}

// GetLineMatches returns non-overlapping, left-to-right byte ranges within
// line where pattern matches under opts.
func (e *Engine) GetLineMatches(pattern, line string, opts Options) ([][2]int, error) {
	m, err := e.matcherFor(pattern, opts)
	if err != nil {
		return nil, err
	}
	return m.FindAllIndex(line), nil
}

// SearchFrom searches forward from startByte (inclusive) and returns the
// byte offset of the first matching line's start.
func (e *Engine) SearchFrom(ctx context.Context, pattern string, startByte int64, opts Options) (int64, bool, error) {
	m, err := e.matcherFor(pattern, opts)
	if err != nil {
		return 0, false, err
	}
	pos, found := e.accessor.FindNextMatch(ctx, startByte, func(line string) bool {
		return len(m.FindAllIndex(line)) > 0
	})
	return pos, found, nil
}

// SearchPrev searches backward, strictly before startByte, and returns the
// byte offset of the first matching line's start.
func (e *Engine) SearchPrev(ctx context.Context, pattern string, startByte int64, opts Options) (int64, bool, error) {
	m, err := e.matcherFor(pattern, opts)
	if err != nil {
		return 0, false, err
	}
	pos, found := e.accessor.FindPrevMatch(ctx, startByte, func(line string) bool {
		return len(m.FindAllIndex(line)) > 0
	})
	return pos, found, nil
}
