package persistence

import (
	"context"

	"github.com/practiq/backend/internal/domain/client"
	"gorm.io/gorm"
)

// GormPortfolioRepository implements client.PortfolioRepository using GORM
type GormPortfolioRepository struct {
	db *gorm.DB
}

// NewGormPortfolioRepository creates a new GormPortfolioRepository
func NewGormPortfolioRepository(db *gorm.DB) *GormPortfolioRepository {
	return &GormPortfolioRepository{db: db}
}

// FindByCode finds a portfolio by its numeric code
func (r *GormPortfolioRepository) FindByCode(ctx context.Context, code int) (*client.Portfolio, error) {
	var p client.Portfolio
	if err := r.db.WithContext(ctx).First(&p, "code = ?", code).Error; err != nil {
		return nil, translateError(err)
	}
	return &p, nil
}

// FindAll returns all portfolios ordered by code
func (r *GormPortfolioRepository) FindAll(ctx context.Context) ([]client.Portfolio, error) {
	var portfolios []client.Portfolio
	if err := r.db.WithContext(ctx).Order("code ASC").Find(&portfolios).Error; err != nil {
		return nil, err
	}
	return portfolios, nil
}

// Save creates or updates a portfolio
func (r *GormPortfolioRepository) Save(ctx context.Context, p *client.Portfolio) error {
	return translateError(r.db.WithContext(ctx).Save(p).Error)
}

// ExistsByCode checks whether a portfolio with the code exists
func (r *GormPortfolioRepository) ExistsByCode(ctx context.Context, code int) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&client.Portfolio{}).
		Where("code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormPortfolioRepository implements client.PortfolioRepository
var _ client.PortfolioRepository = (*GormPortfolioRepository)(nil)
