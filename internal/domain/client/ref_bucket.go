package client

import (
	"github.com/practiq/backend/internal/domain/shared"
)

// MaxBucketIndex is the highest sequence number a single letter bucket
// can hand out. A bucket whose NextIndex exceeds this value is exhausted
// and allocation rolls over to the next letter.
const MaxBucketIndex = 999

// RefBucket is a per-(portfolio, letter) counter tracking the next
// candidate sequence number for client reference allocation. Buckets are
// created lazily, never deleted, and NextIndex only moves forward.
//
// NextIndex is a lower-bound hint, not a strict ledger: references can
// be assigned manually, so the allocator re-verifies every candidate
// against existing client records before committing.
type RefBucket struct {
	shared.BaseEntity
	PortfolioCode int    `gorm:"not null;uniqueIndex:idx_ref_bucket_portfolio_alpha,priority:1"`
	Alpha         string `gorm:"type:char(1);not null;uniqueIndex:idx_ref_bucket_portfolio_alpha,priority:2"`
	NextIndex     int    `gorm:"not null;default:1"`
}

// TableName returns the table name for GORM
func (RefBucket) TableName() string {
	return "ref_buckets"
}

// NewRefBucket creates a bucket starting at index 1
func NewRefBucket(portfolioCode int, alpha string) *RefBucket {
	return &RefBucket{
		BaseEntity:    shared.NewBaseEntity(),
		PortfolioCode: portfolioCode,
		Alpha:         alpha,
		NextIndex:     1,
	}
}

// Exhausted reports whether the bucket has no remaining capacity
func (b *RefBucket) Exhausted() bool {
	return b.NextIndex > MaxBucketIndex
}

// nextAlpha returns the letter after alpha, clamped at 'Z'. An empty
// alpha (no buckets yet) yields 'A'.
func nextAlpha(alpha string) string {
	if alpha == "" {
		return "A"
	}
	c := alpha[0]
	if c >= 'Z' {
		return "Z"
	}
	return string(c + 1)
}
