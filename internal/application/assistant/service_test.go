package assistant

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/practiq/backend/internal/domain/client"
	"github.com/practiq/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	reply string
	err   error
	calls int
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) Complete(_ context.Context, _, _ string) (string, error) {
	p.calls++
	return p.reply, p.err
}

type memoryCache struct {
	mu      sync.Mutex
	entries map[string]string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]string)}
}

func (c *memoryCache) Get(_ context.Context, key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok
}

func (c *memoryCache) Set(_ context.Context, key, reply string, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = reply
}

type stubClientRepo struct {
	client.Repository
	mock.Mock
}

func (m *stubClientRepo) FindByRef(ctx context.Context, ref string) (*client.Client, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.Client), args.Error(1)
}

func TestService_Chat(t *testing.T) {
	ctx := context.Background()

	t.Run("answers and caches the reply", func(t *testing.T) {
		provider := &fakeProvider{reply: "VAT returns are due one month and seven days after the period end."}
		svc := NewService(provider, newMemoryCache(), nil)

		first, err := svc.Chat(ctx, ChatRequest{Message: "When are VAT returns due?"})
		require.NoError(t, err)
		assert.False(t, first.Cached)
		assert.Equal(t, "fake", first.Provider)

		second, err := svc.Chat(ctx, ChatRequest{Message: "When are VAT returns due?"})
		require.NoError(t, err)
		assert.True(t, second.Cached)
		assert.Equal(t, first.Reply, second.Reply)
		assert.Equal(t, 1, provider.calls)
	})

	t.Run("includes client context in the prompt", func(t *testing.T) {
		provider := &fakeProvider{reply: "ok"}
		repo := new(stubClientRepo)
		c, err := client.NewClient("1A001", "Acme Trading Ltd", client.TypeCompany, 1)
		require.NoError(t, err)
		repo.On("FindByRef", ctx, "1A001").Return(c, nil)

		svc := NewService(provider, nil, repo)

		_, err = svc.Chat(ctx, ChatRequest{Message: "What filings are due?", ClientRef: "1a001"})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("propagates unknown client", func(t *testing.T) {
		provider := &fakeProvider{reply: "ok"}
		repo := new(stubClientRepo)
		repo.On("FindByRef", ctx, "9Z999").Return(nil, shared.ErrNotFound)

		svc := NewService(provider, nil, repo)

		_, err := svc.Chat(ctx, ChatRequest{Message: "hi", ClientRef: "9Z999"})

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Zero(t, provider.calls)
	})

	t.Run("wraps provider failure", func(t *testing.T) {
		provider := &fakeProvider{err: errors.New("connection refused")}
		svc := NewService(provider, nil, nil)

		resp, err := svc.Chat(ctx, ChatRequest{Message: "hi"})

		assert.Error(t, err)
		assert.Nil(t, resp)
		assert.Contains(t, err.Error(), "could not answer")
	})
}
