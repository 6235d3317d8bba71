package search

import (
	"container/list"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// matcherCache is a bounded LRU cache of compiled matchers keyed on
// (pattern, Options), so repeated "next match" requests for the same search
// skip recompilation. Eviction is LRU; correctness never depends on whether
// an entry survives eviction, only on cheap, safe recompilation on miss.
type matcherCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[uint64]*list.Element
	order    *list.List // front = most recently used
}

type cacheEntry struct {
	key     uint64
	matcher *matcher
}

func newMatcherCache(capacity int) *matcherCache {
	if capacity <= 0 {
		capacity = 32
	}
	return &matcherCache{
		capacity: capacity,
		entries:  make(map[uint64]*list.Element),
		order:    list.New(),
	}
}

func cacheKey(pattern string, opts Options) uint64 {
	h := xxhash.New()
	_, _ = h.WriteString(pattern)
	_, _ = h.Write([]byte{
		boolByte(opts.CaseSensitive),
		boolByte(opts.WholeWord),
		boolByte(opts.RegexMode),
		boolByte(opts.FixedString),
	})
	return h.Sum64()
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func (c *matcherCache) get(pattern string, opts Options) (*matcher, bool) {
	key := cacheKey(pattern, opts)

	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*cacheEntry).matcher, true
}

func (c *matcherCache) put(pattern string, opts Options, m *matcher) {
	key := cacheKey(pattern, opts)

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		el.Value.(*cacheEntry).matcher = m
		c.order.MoveToFront(el)
		return
	}

	el := c.order.PushFront(&cacheEntry{key: key, matcher: m})
	c.entries[key] = el

	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
}
