package client

import (
	"context"

	"github.com/google/uuid"
	"github.com/practiq/backend/internal/domain/shared"
)

// BucketRepository defines persistence for reference allocation buckets.
// All operations are expected to run inside the caller's transaction;
// mutual exclusion between concurrent allocations is delegated to the
// store's isolation guarantees.
type BucketRepository interface {
	// ListForPortfolio returns all buckets for a portfolio ordered by
	// alpha ascending.
	ListForPortfolio(ctx context.Context, portfolioCode int) ([]RefBucket, error)

	// Create inserts a bucket starting at the given index. Returns
	// shared.ErrAlreadyExists when the (portfolio, alpha) pair is taken,
	// which callers treat as "someone else just created it" and re-read.
	Create(ctx context.Context, portfolioCode int, alpha string, nextIndex int) (*RefBucket, error)

	// Upsert idempotently ensures a bucket exists for the letter,
	// creating it at index 1 if absent, otherwise returning the existing
	// row unchanged.
	Upsert(ctx context.Context, portfolioCode int, alpha string) (*RefBucket, error)

	// Advance unconditionally sets the bucket's next index. Only called
	// after the corresponding slot has been verified free.
	Advance(ctx context.Context, id uuid.UUID, nextIndex int) error
}

// Repository defines the interface for client persistence
type Repository interface {
	// FindByRef finds a client by its reference
	FindByRef(ctx context.Context, ref string) (*Client, error)

	// FindAll finds all clients matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Client, error)

	// FindByPortfolio finds clients belonging to a portfolio
	FindByPortfolio(ctx context.Context, portfolioCode int, filter shared.Filter) ([]Client, error)

	// FindByCompanyNumber finds a client by Companies House number
	FindByCompanyNumber(ctx context.Context, companyNumber string) (*Client, error)

	// ExistsByRef checks whether a client with the reference exists.
	// This is the allocator's collision probe.
	ExistsByRef(ctx context.Context, ref string) (bool, error)

	// Save creates or updates a client
	Save(ctx context.Context, c *Client) error

	// Create inserts a new client. Returns shared.ErrAlreadyExists when
	// the reference is already taken (primary-key conflict).
	Create(ctx context.Context, c *Client) error

	// Delete deletes a client by reference
	Delete(ctx context.Context, ref string) error

	// Count counts clients matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByStatus counts clients with the given status
	CountByStatus(ctx context.Context, status Status) (int64, error)

	// CountByPortfolio counts clients belonging to a portfolio
	CountByPortfolio(ctx context.Context, portfolioCode int) (int64, error)
}

// PortfolioRepository defines the interface for portfolio persistence
type PortfolioRepository interface {
	// FindByCode finds a portfolio by its numeric code
	FindByCode(ctx context.Context, code int) (*Portfolio, error)

	// FindAll returns all portfolios ordered by code
	FindAll(ctx context.Context) ([]Portfolio, error)

	// Save creates or updates a portfolio
	Save(ctx context.Context, p *Portfolio) error

	// ExistsByCode checks whether a portfolio with the code exists
	ExistsByCode(ctx context.Context, code int) (bool, error)
}
