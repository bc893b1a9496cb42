package client

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/practiq/backend/internal/domain/shared"
)

const (
	// DefaultPortfolioCode is used when a caller supplies no usable
	// portfolio code.
	DefaultPortfolioCode = 1

	// MaxAllocationProbes caps the number of candidate references tried
	// per allocation. Hitting it means pathological bucket fragmentation
	// or near-complete reference-space exhaustion for the portfolio.
	MaxAllocationProbes = 2000
)

// ErrAllocationExhausted is returned when no free reference could be
// found within the probe budget, or when a portfolio has consumed its
// entire letter range. Not retryable; operator intervention is implied.
var ErrAllocationExhausted = shared.NewDomainError("ALLOCATION_EXHAUSTED", "Unable to generate client reference")

var refPattern = regexp.MustCompile(`^([1-9]\d*)([A-Z])(\d{3})$`)

// FormatRef builds a client reference: portfolio code, bucket letter,
// zero-padded sequence. Portfolio 1, letter B, index 42 -> "1B042".
func FormatRef(portfolioCode int, alpha string, index int) string {
	return fmt.Sprintf("%d%s%03d", portfolioCode, alpha, index)
}

// ParseRef splits a reference into portfolio code, letter and sequence.
// Returns shared.ErrInvalidInput for anything that does not match the
// allocated format.
func ParseRef(ref string) (portfolioCode int, alpha string, index int, err error) {
	m := refPattern.FindStringSubmatch(ref)
	if m == nil {
		return 0, "", 0, shared.NewDomainError("INVALID_REF", "Client reference must match <portfolio><letter><3 digits>")
	}
	portfolioCode, _ = strconv.Atoi(m[1])
	index, _ = strconv.Atoi(m[3])
	return portfolioCode, m[2], index, nil
}

// ExistenceChecker is the slice of the client repository the allocator
// needs for collision probes.
type ExistenceChecker interface {
	ExistsByRef(ctx context.Context, ref string) (bool, error)
}

// RefAllocator produces client references of the form
// <portfolioCode><letter><3-digit sequence>, drawn from per-portfolio
// letter buckets that roll over alphabetically when exhausted.
//
// Allocate must run inside the same transaction as the client insert
// that consumes the reference: nothing is externally observable until
// the final bucket advance commits, so a conflicting insert aborts the
// transaction and the whole operation is safe to retry from scratch.
type RefAllocator struct {
	buckets BucketRepository
	clients ExistenceChecker
}

// NewRefAllocator creates a RefAllocator over the given stores
func NewRefAllocator(buckets BucketRepository, clients ExistenceChecker) *RefAllocator {
	return &RefAllocator{
		buckets: buckets,
		clients: clients,
	}
}

// Allocate returns the next free reference for the portfolio and
// advances the owning bucket past the consumed slot.
//
// The bucket counter is only a starting hint: every candidate is probed
// against existing client records, and the counter is advanced after a
// free slot is found. Manually assigned references are skipped over
// without the bucket ever being told about them.
func (a *RefAllocator) Allocate(ctx context.Context, portfolioCode int) (string, error) {
	if portfolioCode < 1 {
		portfolioCode = DefaultPortfolioCode
	}

	active, err := a.activeBucket(ctx, portfolioCode)
	if err != nil {
		return "", err
	}

	bucketID := active.ID
	alpha := active.Alpha
	next := active.NextIndex

	for probes := 0; probes < MaxAllocationProbes; probes++ {
		// Roll over to the next letter while the working index is past
		// bucket capacity. Rollovers do not consume the probe budget.
		for next > MaxBucketIndex {
			if alpha == "Z" {
				// The portfolio has burned through its whole letter
				// range; reusing Z would hand out colliding references
				// forever, so fail instead.
				return "", ErrAllocationExhausted
			}
			alpha = nextAlpha(alpha)
			b, err := a.buckets.Upsert(ctx, portfolioCode, alpha)
			if err != nil {
				return "", err
			}
			bucketID = b.ID
			next = b.NextIndex
		}

		ref := FormatRef(portfolioCode, alpha, next)
		exists, err := a.clients.ExistsByRef(ctx, ref)
		if err != nil {
			return "", err
		}
		if !exists {
			if err := a.buckets.Advance(ctx, bucketID, next+1); err != nil {
				return "", err
			}
			return ref, nil
		}

		// Slot occupied (e.g. a manually assigned reference); try the
		// next index without advancing the bucket.
		next++
	}

	return "", ErrAllocationExhausted
}

// activeBucket returns the alphabetically-earliest bucket with remaining
// capacity, creating the next-letter bucket when every existing one is
// exhausted or none exist yet.
func (a *RefAllocator) activeBucket(ctx context.Context, portfolioCode int) (*RefBucket, error) {
	for {
		buckets, err := a.buckets.ListForPortfolio(ctx, portfolioCode)
		if err != nil {
			return nil, err
		}

		for i := range buckets {
			if !buckets[i].Exhausted() {
				return &buckets[i], nil
			}
		}

		alpha := "A"
		if n := len(buckets); n > 0 {
			last := buckets[n-1].Alpha
			if last == "Z" {
				// Every letter up to and including Z is exhausted.
				return nil, ErrAllocationExhausted
			}
			alpha = nextAlpha(last)
		}

		b, err := a.buckets.Create(ctx, portfolioCode, alpha, 1)
		if err != nil {
			if errors.Is(err, shared.ErrAlreadyExists) {
				// Lost a creation race; re-read and pick up the winner's
				// bucket.
				continue
			}
			return nil, err
		}
		return b, nil
	}
}
