package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryReplyCache(t *testing.T) {
	ctx := context.Background()

	t.Run("stores and retrieves a reply", func(t *testing.T) {
		c := NewMemoryReplyCache()
		c.Set(ctx, "k1", "the reply", time.Minute)

		reply, ok := c.Get(ctx, "k1")
		assert.True(t, ok)
		assert.Equal(t, "the reply", reply)
	})

	t.Run("misses unknown keys", func(t *testing.T) {
		c := NewMemoryReplyCache()

		_, ok := c.Get(ctx, "missing")
		assert.False(t, ok)
	})

	t.Run("drops expired entries", func(t *testing.T) {
		c := NewMemoryReplyCache()
		c.Set(ctx, "k1", "stale", time.Nanosecond)
		time.Sleep(time.Millisecond)

		_, ok := c.Get(ctx, "k1")
		assert.False(t, ok)
	})

	t.Run("ignores non-positive ttl", func(t *testing.T) {
		c := NewMemoryReplyCache()
		c.Set(ctx, "k1", "never stored", 0)

		_, ok := c.Get(ctx, "k1")
		assert.False(t, ok)
	})
}
