package client

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/practiq/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBucketStore is an in-memory BucketRepository for allocator tests.
type fakeBucketStore struct {
	buckets     map[string]*RefBucket // key: portfolio|alpha
	createFails int                   // next N Create calls fail with ErrAlreadyExists
}

func newFakeBucketStore() *fakeBucketStore {
	return &fakeBucketStore{buckets: make(map[string]*RefBucket)}
}

func bucketKey(portfolioCode int, alpha string) string {
	return fmt.Sprintf("%d|%s", portfolioCode, alpha)
}

func (s *fakeBucketStore) seed(portfolioCode int, alpha string, nextIndex int) *RefBucket {
	b := NewRefBucket(portfolioCode, alpha)
	b.NextIndex = nextIndex
	s.buckets[bucketKey(portfolioCode, alpha)] = b
	return b
}

func (s *fakeBucketStore) get(portfolioCode int, alpha string) *RefBucket {
	return s.buckets[bucketKey(portfolioCode, alpha)]
}

func (s *fakeBucketStore) ListForPortfolio(_ context.Context, portfolioCode int) ([]RefBucket, error) {
	var out []RefBucket
	for _, b := range s.buckets {
		if b.PortfolioCode == portfolioCode {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Alpha < out[j].Alpha })
	return out, nil
}

func (s *fakeBucketStore) Create(_ context.Context, portfolioCode int, alpha string, nextIndex int) (*RefBucket, error) {
	key := bucketKey(portfolioCode, alpha)
	if s.createFails > 0 {
		s.createFails--
		// Simulate a concurrent allocator winning the race: the bucket
		// exists by the time the conflict surfaces.
		if _, ok := s.buckets[key]; !ok {
			s.buckets[key] = NewRefBucket(portfolioCode, alpha)
		}
		return nil, shared.ErrAlreadyExists
	}
	if _, ok := s.buckets[key]; ok {
		return nil, shared.ErrAlreadyExists
	}
	b := NewRefBucket(portfolioCode, alpha)
	b.NextIndex = nextIndex
	s.buckets[key] = b
	copied := *b
	return &copied, nil
}

func (s *fakeBucketStore) Upsert(_ context.Context, portfolioCode int, alpha string) (*RefBucket, error) {
	key := bucketKey(portfolioCode, alpha)
	if b, ok := s.buckets[key]; ok {
		copied := *b
		return &copied, nil
	}
	b := NewRefBucket(portfolioCode, alpha)
	s.buckets[key] = b
	copied := *b
	return &copied, nil
}

func (s *fakeBucketStore) Advance(_ context.Context, id uuid.UUID, nextIndex int) error {
	for _, b := range s.buckets {
		if b.ID == id {
			b.NextIndex = nextIndex
			return nil
		}
	}
	return shared.ErrNotFound
}

// fakeClientIndex is an in-memory ExistenceChecker.
type fakeClientIndex struct {
	refs         map[string]bool
	alwaysExists bool
	probes       int
}

func newFakeClientIndex(existing ...string) *fakeClientIndex {
	refs := make(map[string]bool, len(existing))
	for _, r := range existing {
		refs[r] = true
	}
	return &fakeClientIndex{refs: refs}
}

func (f *fakeClientIndex) ExistsByRef(_ context.Context, ref string) (bool, error) {
	f.probes++
	if f.alwaysExists {
		return true, nil
	}
	return f.refs[ref], nil
}

func newTestAllocator() (*RefAllocator, *fakeBucketStore, *fakeClientIndex) {
	buckets := newFakeBucketStore()
	clients := newFakeClientIndex()
	return NewRefAllocator(buckets, clients), buckets, clients
}

func TestRefAllocator_Allocate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates first bucket for a fresh portfolio", func(t *testing.T) {
		alloc, buckets, _ := newTestAllocator()

		ref, err := alloc.Allocate(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, "1A001", ref)
		assert.Equal(t, 2, buckets.get(1, "A").NextIndex)
	})

	t.Run("result matches reference format with suffix in range", func(t *testing.T) {
		alloc, buckets, _ := newTestAllocator()
		buckets.seed(7, "C", 314)

		ref, err := alloc.Allocate(ctx, 7)

		require.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`^7[A-Z]\d{3}$`), ref)
		assert.Equal(t, "7C314", ref)
	})

	t.Run("repeated allocations never repeat", func(t *testing.T) {
		alloc, _, clients := newTestAllocator()

		seen := make(map[string]bool)
		for i := 0; i < 50; i++ {
			ref, err := alloc.Allocate(ctx, 1)
			require.NoError(t, err)
			assert.False(t, seen[ref], "duplicate reference %s", ref)
			seen[ref] = true
			// Persist the result as an existing client, like the
			// creation flow does.
			clients.refs[ref] = true
		}
	})

	t.Run("prefers earliest lettered bucket with capacity", func(t *testing.T) {
		alloc, buckets, _ := newTestAllocator()
		buckets.seed(1, "A", 500)
		buckets.seed(1, "B", 100)

		ref, err := alloc.Allocate(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, "1A500", ref)
		assert.Equal(t, 501, buckets.get(1, "A").NextIndex)
		assert.Equal(t, 100, buckets.get(1, "B").NextIndex, "B must be untouched")
	})

	t.Run("rolls over to next letter when bucket is exhausted", func(t *testing.T) {
		alloc, buckets, _ := newTestAllocator()
		buckets.seed(2, "A", 1000)

		ref, err := alloc.Allocate(ctx, 2)

		require.NoError(t, err)
		assert.Equal(t, "2B001", ref)
		require.NotNil(t, buckets.get(2, "B"))
		assert.Equal(t, 2, buckets.get(2, "B").NextIndex)
		assert.Equal(t, 1000, buckets.get(2, "A").NextIndex, "exhausted bucket must not move")
	})

	t.Run("skips manually assigned references", func(t *testing.T) {
		buckets := newFakeBucketStore()
		buckets.seed(3, "A", 1)
		clients := newFakeClientIndex("3A001")
		alloc := NewRefAllocator(buckets, clients)

		ref, err := alloc.Allocate(ctx, 3)

		require.NoError(t, err)
		assert.Equal(t, "3A002", ref)
		assert.Equal(t, 3, buckets.get(3, "A").NextIndex)
	})

	t.Run("pads the sequence to three digits", func(t *testing.T) {
		alloc, buckets, _ := newTestAllocator()
		buckets.seed(1, "B", 42)
		buckets.seed(1, "A", 1000)

		ref, err := alloc.Allocate(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, "1B042", ref)
	})

	t.Run("non-positive portfolio code falls back to portfolio 1", func(t *testing.T) {
		for _, code := range []int{0, -5} {
			alloc, buckets, _ := newTestAllocator()

			ref, err := alloc.Allocate(ctx, code)

			require.NoError(t, err)
			assert.Equal(t, "1A001", ref)
			assert.NotNil(t, buckets.get(1, "A"))
		}
	})

	t.Run("fails after exactly the probe budget when every slot is taken", func(t *testing.T) {
		alloc, buckets, clients := newTestAllocator()
		buckets.seed(1, "A", 1)
		clients.alwaysExists = true

		ref, err := alloc.Allocate(ctx, 1)

		assert.Empty(t, ref)
		assert.ErrorIs(t, err, ErrAllocationExhausted)
		assert.Equal(t, MaxAllocationProbes, clients.probes)
	})

	t.Run("retries after losing a bucket creation race", func(t *testing.T) {
		alloc, buckets, _ := newTestAllocator()
		buckets.createFails = 1

		ref, err := alloc.Allocate(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, "1A001", ref, "re-read picks up the winner's bucket")
		assert.Zero(t, buckets.createFails, "conflicting create must have been attempted")
	})

	t.Run("fails fast when the whole letter range is exhausted", func(t *testing.T) {
		alloc, buckets, _ := newTestAllocator()
		for c := byte('A'); c <= 'Z'; c++ {
			buckets.seed(4, string(c), 1000)
		}

		_, err := alloc.Allocate(ctx, 4)

		assert.ErrorIs(t, err, ErrAllocationExhausted)
	})

	t.Run("fails fast instead of reusing the Z bucket", func(t *testing.T) {
		buckets := newFakeBucketStore()
		buckets.seed(5, "Z", 999)
		clients := newFakeClientIndex("5Z999")
		alloc := NewRefAllocator(buckets, clients)

		_, err := alloc.Allocate(ctx, 5)

		assert.ErrorIs(t, err, ErrAllocationExhausted)
	})
}

func TestFormatRef(t *testing.T) {
	tests := []struct {
		portfolioCode int
		alpha         string
		index         int
		want          string
	}{
		{1, "A", 1, "1A001"},
		{1, "B", 42, "1B042"},
		{12, "Z", 999, "12Z999"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatRef(tt.portfolioCode, tt.alpha, tt.index))
	}
}

func TestParseRef(t *testing.T) {
	t.Run("parses allocated references", func(t *testing.T) {
		portfolioCode, alpha, index, err := ParseRef("12B042")

		require.NoError(t, err)
		assert.Equal(t, 12, portfolioCode)
		assert.Equal(t, "B", alpha)
		assert.Equal(t, 42, index)
	})

	t.Run("rejects malformed references", func(t *testing.T) {
		for _, ref := range []string{"", "A001", "1a001", "1A1", "1A0012", "0A001"} {
			_, _, _, err := ParseRef(ref)
			assert.Error(t, err, "ref %q", ref)
		}
	})
}

func TestNextAlpha(t *testing.T) {
	assert.Equal(t, "A", nextAlpha(""))
	assert.Equal(t, "B", nextAlpha("A"))
	assert.Equal(t, "Z", nextAlpha("Y"))
	assert.Equal(t, "Z", nextAlpha("Z"))
}
