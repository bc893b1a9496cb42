package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/practiq/backend/internal/domain/client"
	"github.com/practiq/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRefBucketRepository implements client.BucketRepository using GORM.
// Callers run these operations inside a transaction via the transaction
// scope; the unique (portfolio_code, alpha) index arbitrates concurrent
// bucket creation.
type GormRefBucketRepository struct {
	db *gorm.DB
}

// NewGormRefBucketRepository creates a new GormRefBucketRepository
func NewGormRefBucketRepository(db *gorm.DB) *GormRefBucketRepository {
	return &GormRefBucketRepository{db: db}
}

// ListForPortfolio returns all buckets for a portfolio ordered by alpha
func (r *GormRefBucketRepository) ListForPortfolio(ctx context.Context, portfolioCode int) ([]client.RefBucket, error) {
	var buckets []client.RefBucket
	if err := r.db.WithContext(ctx).
		Where("portfolio_code = ?", portfolioCode).
		Order("alpha ASC").
		Find(&buckets).Error; err != nil {
		return nil, err
	}
	return buckets, nil
}

// Create inserts a bucket starting at the given index
func (r *GormRefBucketRepository) Create(ctx context.Context, portfolioCode int, alpha string, nextIndex int) (*client.RefBucket, error) {
	bucket := client.NewRefBucket(portfolioCode, alpha)
	bucket.NextIndex = nextIndex

	if err := r.db.WithContext(ctx).Create(bucket).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, shared.ErrAlreadyExists
		}
		return nil, err
	}
	return bucket, nil
}

// Upsert ensures a bucket row exists for the letter, leaving an existing
// row untouched
func (r *GormRefBucketRepository) Upsert(ctx context.Context, portfolioCode int, alpha string) (*client.RefBucket, error) {
	// Normalize once so the insert and the re-read agree on the key
	alpha = strings.ToUpper(alpha)
	bucket := client.NewRefBucket(portfolioCode, alpha)

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "portfolio_code"}, {Name: "alpha"}},
			DoNothing: true,
		}).
		Create(bucket).Error; err != nil {
		return nil, err
	}

	// Re-read so the caller sees the surviving row either way
	var existing client.RefBucket
	if err := r.db.WithContext(ctx).
		Where("portfolio_code = ? AND alpha = ?", portfolioCode, alpha).
		First(&existing).Error; err != nil {
		return nil, translateError(err)
	}
	return &existing, nil
}

// Advance sets the bucket's next index
func (r *GormRefBucketRepository) Advance(ctx context.Context, id uuid.UUID, nextIndex int) error {
	result := r.db.WithContext(ctx).
		Model(&client.RefBucket{}).
		Where("id = ?", id).
		Update("next_index", nextIndex)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormRefBucketRepository implements client.BucketRepository
var _ client.BucketRepository = (*GormRefBucketRepository)(nil)
