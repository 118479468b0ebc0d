package probe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_SetAndGet(t *testing.T) {
	c := NewCache(time.Minute)
	defer c.Stop()

	r := sampleReport()
	c.Set(r.Digest, r)

	got, ok := c.Get(r.Digest)
	require.True(t, ok)
	assert.Equal(t, r, got)

	_, ok = c.Get("unknown-digest")
	assert.False(t, ok)
}

func TestCache_Expiry(t *testing.T) {
	c := NewCache(20 * time.Millisecond)
	defer c.Stop()

	r := sampleReport()
	c.Set(r.Digest, r)

	// The polling reads must not extend the item's TTL; the entry has to
	// expire even while it is being read every cycle.
	assert.Eventually(t, func() bool {
		_, ok := c.Get(r.Digest)
		return !ok
	}, time.Second, 10*time.Millisecond)
}
