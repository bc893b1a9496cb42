// Package cache provides reply caching for the assistant.
package cache

import (
	"context"
	"sync"
	"time"

	appassistant "github.com/practiq/backend/internal/application/assistant"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var _ appassistant.ReplyCache = (*RedisReplyCache)(nil)
var _ appassistant.ReplyCache = (*MemoryReplyCache)(nil)

// RedisReplyCache stores assistant replies in Redis. Cache failures are
// logged and otherwise ignored; the assistant answers without the cache.
type RedisReplyCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisReplyCache creates a Redis-backed reply cache
func NewRedisReplyCache(client *redis.Client, logger *zap.Logger) *RedisReplyCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisReplyCache{client: client, logger: logger}
}

func (c *RedisReplyCache) Get(ctx context.Context, key string) (string, bool) {
	reply, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		c.logger.Warn("Reply cache read failed", zap.Error(err))
		return "", false
	}
	return reply, true
}

func (c *RedisReplyCache) Set(ctx context.Context, key, reply string, ttl time.Duration) {
	if err := c.client.Set(ctx, key, reply, ttl).Err(); err != nil {
		c.logger.Warn("Reply cache write failed", zap.Error(err))
	}
}

// MemoryReplyCache is a process-local reply cache for development and
// tests. Expired entries are dropped lazily on read.
type MemoryReplyCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	reply     string
	expiresAt time.Time
}

// NewMemoryReplyCache creates an in-memory reply cache
func NewMemoryReplyCache() *MemoryReplyCache {
	return &MemoryReplyCache{entries: make(map[string]memoryEntry)}
}

func (c *MemoryReplyCache) Get(_ context.Context, key string) (string, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return "", false
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return "", false
	}
	return entry.reply, true
}

func (c *MemoryReplyCache) Set(_ context.Context, key, reply string, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.entries[key] = memoryEntry{reply: reply, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
}
