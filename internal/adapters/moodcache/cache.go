// Package moodcache memoizes resolved track moods in a bounded, expiring
// in-process cache so repeated classifications skip the model.
package moodcache

import (
	"time"

	"github.com/maypok86/otter/v2"

	"github.com/ewilliams-labs/cognia/internal/core/domain"
	"github.com/ewilliams-labs/cognia/internal/core/ports"
)

const (
	DefaultSize = 1024
	DefaultTTL  = 24 * time.Hour
)

// Cache implements ports.MoodCache. It is safe for concurrent use.
type Cache struct {
	cache *otter.Cache[string, domain.Mood]
}

var _ ports.MoodCache = (*Cache)(nil)

// New returns a cache holding at most size entries, each for ttl after it
// was written. Non-positive arguments fall back to the defaults.
func New(size int, ttl time.Duration) *Cache {
	if size <= 0 {
		size = DefaultSize
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		cache: otter.Must(&otter.Options[string, domain.Mood]{
			MaximumSize:      size,
			InitialCapacity:  min(size, 128),
			ExpiryCalculator: otter.ExpiryWriting[string, domain.Mood](ttl),
		}),
	}
}

func (c *Cache) Get(key string) (domain.Mood, bool) {
	return c.cache.GetIfPresent(key)
}

// Set ignores labels outside the closed mood set.
func (c *Cache) Set(key string, mood domain.Mood) {
	if _, ok := domain.ParseMood(string(mood)); !ok {
		return
	}
	c.cache.Set(key, mood)
}

func (c *Cache) Clear() {
	c.cache.InvalidateAll()
}

// Len is an estimate; evictions are applied asynchronously.
func (c *Cache) Len() int {
	return c.cache.EstimatedSize()
}
