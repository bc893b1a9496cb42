package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/practiq/backend/internal/domain/client"
	"github.com/practiq/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormClientRepository implements client.Repository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// FindByRef finds a client by its reference
func (r *GormClientRepository) FindByRef(ctx context.Context, ref string) (*client.Client, error) {
	var c client.Client
	if err := r.db.WithContext(ctx).First(&c, "ref = ?", strings.ToUpper(ref)).Error; err != nil {
		return nil, translateError(err)
	}
	return &c, nil
}

// FindAll finds all clients matching the filter
func (r *GormClientRepository) FindAll(ctx context.Context, filter shared.Filter) ([]client.Client, error) {
	var clients []client.Client
	query := r.applyFilter(r.db.WithContext(ctx).Model(&client.Client{}), filter)

	if err := query.Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// FindByPortfolio finds clients belonging to a portfolio
func (r *GormClientRepository) FindByPortfolio(ctx context.Context, portfolioCode int, filter shared.Filter) ([]client.Client, error) {
	var clients []client.Client
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&client.Client{}).Where("portfolio_code = ?", portfolioCode),
		filter,
	)

	if err := query.Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// FindByCompanyNumber finds a client by Companies House number
func (r *GormClientRepository) FindByCompanyNumber(ctx context.Context, companyNumber string) (*client.Client, error) {
	if companyNumber == "" {
		return nil, shared.NewDomainError("INVALID_COMPANY_NUMBER", "Company number cannot be empty")
	}
	var c client.Client
	if err := r.db.WithContext(ctx).
		First(&c, "company_number = ?", strings.ToUpper(companyNumber)).Error; err != nil {
		return nil, translateError(err)
	}
	return &c, nil
}

// ExistsByRef checks whether a client with the reference exists
func (r *GormClientRepository) ExistsByRef(ctx context.Context, ref string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&client.Client{}).
		Where("ref = ?", strings.ToUpper(ref)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a client
func (r *GormClientRepository) Save(ctx context.Context, c *client.Client) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// Create inserts a new client, returning shared.ErrAlreadyExists when the
// reference is taken
func (r *GormClientRepository) Create(ctx context.Context, c *client.Client) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Delete deletes a client by reference
func (r *GormClientRepository) Delete(ctx context.Context, ref string) error {
	result := r.db.WithContext(ctx).Delete(&client.Client{}, "ref = ?", strings.ToUpper(ref))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts clients matching the filter
func (r *GormClientRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&client.Client{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts clients with the given status
func (r *GormClientRepository) CountByStatus(ctx context.Context, status client.Status) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&client.Client{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByPortfolio counts clients belonging to a portfolio
func (r *GormClientRepository) CountByPortfolio(ctx context.Context, portfolioCode int) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&client.Client{}).
		Where("portfolio_code = ?", portfolioCode).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormClientRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ClientSortFields, "ref")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

func (r *GormClientRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR ref ILIKE ? OR company_number ILIKE ? OR email ILIKE ?",
			pattern, pattern, pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "type":
			query = query.Where("type = ?", value)
		case "portfolio_code":
			query = query.Where("portfolio_code = ?", value)
		}
	}

	return query
}

// Ensure GormClientRepository implements client.Repository
var _ client.Repository = (*GormClientRepository)(nil)
