package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist revokes tokens before their natural expiry. Individual
// tokens are blacklisted by JTI; a logout-everywhere invalidates every
// token issued to a user before the invalidation instant.
type TokenBlacklist interface {
	AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
	AddUserTokensToBlacklist(ctx context.Context, userID string, ttl time.Duration) error
	IsUserTokenInvalidated(ctx context.Context, userID string, issuedAt time.Time) (bool, error)
}

const (
	tokenBlacklistPrefix = "token:blacklist:"
	userInvalidatePrefix = "token:user-invalidated:"
)

// RedisTokenBlacklist stores revocations in Redis with TTLs matching the
// remaining token lifetime, so entries clean themselves up.
type RedisTokenBlacklist struct {
	client *redis.Client
}

// NewRedisTokenBlacklist creates a Redis-backed token blacklist
func NewRedisTokenBlacklist(client *redis.Client) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{client: client}
}

func (b *RedisTokenBlacklist) AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // already expired, nothing to revoke
	}
	key := tokenBlacklistPrefix + jti
	if err := b.client.Set(ctx, key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}
	return nil
}

func (b *RedisTokenBlacklist) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	key := tokenBlacklistPrefix + jti
	n, err := b.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	return n > 0, nil
}

func (b *RedisTokenBlacklist) AddUserTokensToBlacklist(ctx context.Context, userID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	key := userInvalidatePrefix + userID
	now := time.Now().Unix()
	if err := b.client.Set(ctx, key, now, ttl).Err(); err != nil {
		return fmt.Errorf("failed to invalidate user tokens: %w", err)
	}
	return nil
}

func (b *RedisTokenBlacklist) IsUserTokenInvalidated(ctx context.Context, userID string, issuedAt time.Time) (bool, error) {
	key := userInvalidatePrefix + userID
	invalidatedAt, err := b.client.Get(ctx, key).Int64()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check user token invalidation: %w", err)
	}
	return issuedAt.Unix() <= invalidatedAt, nil
}

// InMemoryTokenBlacklist is a process-local blacklist for development and
// tests. Expired entries are dropped lazily on lookup.
type InMemoryTokenBlacklist struct {
	mu          sync.RWMutex
	tokens      map[string]time.Time // jti -> expiry
	invalidated map[string]userInvalidation
}

type userInvalidation struct {
	at     time.Time
	expiry time.Time
}

// NewInMemoryTokenBlacklist creates an in-memory token blacklist
func NewInMemoryTokenBlacklist() *InMemoryTokenBlacklist {
	return &InMemoryTokenBlacklist{
		tokens:      make(map[string]time.Time),
		invalidated: make(map[string]userInvalidation),
	}
}

func (b *InMemoryTokenBlacklist) AddToBlacklist(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens[jti] = time.Now().Add(ttl)
	return nil
}

func (b *InMemoryTokenBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	expiry, ok := b.tokens[jti]
	if !ok {
		return false, nil
	}
	if time.Now().After(expiry) {
		delete(b.tokens, jti)
		return false, nil
	}
	return true, nil
}

func (b *InMemoryTokenBlacklist) AddUserTokensToBlacklist(_ context.Context, userID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	now := time.Now()
	b.invalidated[userID] = userInvalidation{at: now, expiry: now.Add(ttl)}
	return nil
}

func (b *InMemoryTokenBlacklist) IsUserTokenInvalidated(_ context.Context, userID string, issuedAt time.Time) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	inv, ok := b.invalidated[userID]
	if !ok {
		return false, nil
	}
	if time.Now().After(inv.expiry) {
		delete(b.invalidated, userID)
		return false, nil
	}
	return !issuedAt.After(inv.at), nil
}
