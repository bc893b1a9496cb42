package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/practiq/backend/internal/domain/engagement"
	"github.com/practiq/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormServiceRepository implements engagement.ServiceRepository using GORM
type GormServiceRepository struct {
	db *gorm.DB
}

// NewGormServiceRepository creates a new GormServiceRepository
func NewGormServiceRepository(db *gorm.DB) *GormServiceRepository {
	return &GormServiceRepository{db: db}
}

// FindByID finds a service offering by its ID
func (r *GormServiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*engagement.ServiceOffering, error) {
	var offering engagement.ServiceOffering
	if err := r.db.WithContext(ctx).First(&offering, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &offering, nil
}

// FindByCode finds a service offering by its code
func (r *GormServiceRepository) FindByCode(ctx context.Context, code string) (*engagement.ServiceOffering, error) {
	var offering engagement.ServiceOffering
	if err := r.db.WithContext(ctx).
		First(&offering, "code = ?", strings.ToUpper(code)).Error; err != nil {
		return nil, translateError(err)
	}
	return &offering, nil
}

// FindAll returns all service offerings, optionally only active ones
func (r *GormServiceRepository) FindAll(ctx context.Context, activeOnly bool) ([]engagement.ServiceOffering, error) {
	query := r.db.WithContext(ctx).Order("code ASC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var offerings []engagement.ServiceOffering
	if err := query.Find(&offerings).Error; err != nil {
		return nil, err
	}
	return offerings, nil
}

// Save creates or updates a service offering
func (r *GormServiceRepository) Save(ctx context.Context, offering *engagement.ServiceOffering) error {
	return translateError(r.db.WithContext(ctx).Save(offering).Error)
}

// Delete deletes a service offering
func (r *GormServiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&engagement.ServiceOffering{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormServiceRepository implements engagement.ServiceRepository
var _ engagement.ServiceRepository = (*GormServiceRepository)(nil)

// GormEngagementRepository implements engagement.Repository using GORM
type GormEngagementRepository struct {
	db *gorm.DB
}

// NewGormEngagementRepository creates a new GormEngagementRepository
func NewGormEngagementRepository(db *gorm.DB) *GormEngagementRepository {
	return &GormEngagementRepository{db: db}
}

// FindByID finds an engagement by its ID
func (r *GormEngagementRepository) FindByID(ctx context.Context, id uuid.UUID) (*engagement.Engagement, error) {
	var e engagement.Engagement
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &e, nil
}

// FindByClient finds all engagements for a client ordered by start date
func (r *GormEngagementRepository) FindByClient(ctx context.Context, clientRef string) ([]engagement.Engagement, error) {
	var engagements []engagement.Engagement
	if err := r.db.WithContext(ctx).
		Where("client_ref = ?", strings.ToUpper(clientRef)).
		Order("start_date DESC").
		Find(&engagements).Error; err != nil {
		return nil, err
	}
	return engagements, nil
}

// FindAll finds engagements matching the filter with pagination
func (r *GormEngagementRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[engagement.Engagement], error) {
	query := r.db.WithContext(ctx).Model(&engagement.Engagement{})
	query = r.applyFilters(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	page, pageSize := filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	orderBy := ValidateSortField(filter.OrderBy, EngagementSortFields, "next_due_at")
	var engagements []engagement.Engagement
	if err := query.
		Order(orderBy + " " + ValidateSortOrder(filter.OrderDir)).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&engagements).Error; err != nil {
		return nil, err
	}

	result := shared.NewPaginated(engagements, total, page, pageSize)
	return &result, nil
}

// Save creates or updates an engagement
func (r *GormEngagementRepository) Save(ctx context.Context, e *engagement.Engagement) error {
	return translateError(r.db.WithContext(ctx).Save(e).Error)
}

// Delete deletes an engagement
func (r *GormEngagementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&engagement.Engagement{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountActiveByClient counts a client's active engagements
func (r *GormEngagementRepository) CountActiveByClient(ctx context.Context, clientRef string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&engagement.Engagement{}).
		Where("client_ref = ? AND status = ?", strings.ToUpper(clientRef), engagement.StatusActive).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormEngagementRepository) applyFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "frequency":
			query = query.Where("frequency = ?", value)
		case "client_ref":
			query = query.Where("client_ref = ?", value)
		case "service_id":
			query = query.Where("service_id = ?", value)
		}
	}
	return query
}

// Ensure GormEngagementRepository implements engagement.Repository
var _ engagement.Repository = (*GormEngagementRepository)(nil)
