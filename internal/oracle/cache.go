package oracle

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the sub-word cache when none is configured.
const DefaultCacheSize = 4096

// CachedSubwords memoises a SubwordSegmenter in an LRU cache.
type CachedSubwords struct {
	next  SubwordSegmenter
	cache *lru.Cache[string, []string]
}

// NewCachedSubwords wraps next. A non-positive size uses DefaultCacheSize.
func NewCachedSubwords(next SubwordSegmenter, size int) (*CachedSubwords, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}

	cache, err := lru.New[string, []string](size)
	if err != nil {
		return nil, err
	}

	return &CachedSubwords{next: next, cache: cache}, nil
}

func (c *CachedSubwords) Subwords(word string) []string {
	if cached, ok := c.cache.Get(word); ok {
		return append([]string(nil), cached...)
	}

	subs := c.next.Subwords(word)
	c.cache.Add(word, append([]string(nil), subs...))

	return subs
}
