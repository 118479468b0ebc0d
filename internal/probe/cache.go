package probe

import (
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// Cache remembers successful probe reports by artifact digest so watch
// mode does not re-create sessions for unchanged model files.
type Cache struct {
	c *ttlcache.Cache[string, *Report]
}

// NewCache creates a probe cache with the given TTL. Reads do not extend
// an item's lifetime, so an unchanged model is re-probed once ttl passes.
func NewCache(ttl time.Duration) *Cache {
	c := ttlcache.New(
		ttlcache.WithTTL[string, *Report](ttl),
		ttlcache.WithDisableTouchOnHit[string, *Report](),
	)
	go c.Start()

	return &Cache{c: c}
}

// Get returns the cached report for a digest, if present.
func (c *Cache) Get(digest string) (*Report, bool) {
	item := c.c.Get(digest)
	if item == nil {
		return nil, false
	}
	return item.Value(), true
}

// Set stores a report under the artifact digest.
func (c *Cache) Set(digest string, r *Report) {
	c.c.Set(digest, r, ttlcache.DefaultTTL)
}

// Stop stops the cache's expiration loop.
func (c *Cache) Stop() {
	c.c.Stop()
}
