package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryTokenBlacklist(t *testing.T) {
	ctx := context.Background()

	t.Run("blacklists a jti until its ttl elapses", func(t *testing.T) {
		bl := NewInMemoryTokenBlacklist()

		require.NoError(t, bl.AddToBlacklist(ctx, "jti-1", time.Minute))

		revoked, err := bl.IsBlacklisted(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, revoked)

		revoked, err = bl.IsBlacklisted(ctx, "jti-2")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("ignores non-positive ttl", func(t *testing.T) {
		bl := NewInMemoryTokenBlacklist()

		require.NoError(t, bl.AddToBlacklist(ctx, "jti-1", 0))

		revoked, err := bl.IsBlacklisted(ctx, "jti-1")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("drops expired entries on lookup", func(t *testing.T) {
		bl := NewInMemoryTokenBlacklist()
		require.NoError(t, bl.AddToBlacklist(ctx, "jti-1", time.Nanosecond))
		time.Sleep(time.Millisecond)

		revoked, err := bl.IsBlacklisted(ctx, "jti-1")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("invalidates tokens issued before a logout-everywhere", func(t *testing.T) {
		bl := NewInMemoryTokenBlacklist()
		issuedBefore := time.Now().Add(-time.Minute)

		require.NoError(t, bl.AddUserTokensToBlacklist(ctx, "user-1", time.Hour))

		invalidated, err := bl.IsUserTokenInvalidated(ctx, "user-1", issuedBefore)
		require.NoError(t, err)
		assert.True(t, invalidated)

		invalidated, err = bl.IsUserTokenInvalidated(ctx, "user-1", time.Now().Add(time.Minute))
		require.NoError(t, err)
		assert.False(t, invalidated)

		invalidated, err = bl.IsUserTokenInvalidated(ctx, "user-2", issuedBefore)
		require.NoError(t, err)
		assert.False(t, invalidated)
	})
}
