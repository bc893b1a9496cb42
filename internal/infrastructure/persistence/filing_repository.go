package persistence

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/practiq/backend/internal/domain/compliance"
	"github.com/practiq/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormFilingRepository implements compliance.Repository using GORM
type GormFilingRepository struct {
	db *gorm.DB
}

// NewGormFilingRepository creates a new GormFilingRepository
func NewGormFilingRepository(db *gorm.DB) *GormFilingRepository {
	return &GormFilingRepository{db: db}
}

// FindByID finds a filing by its ID
func (r *GormFilingRepository) FindByID(ctx context.Context, id uuid.UUID) (*compliance.Filing, error) {
	var f compliance.Filing
	if err := r.db.WithContext(ctx).First(&f, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &f, nil
}

// FindByClient finds all filings for a client ordered by due date
func (r *GormFilingRepository) FindByClient(ctx context.Context, clientRef string) ([]compliance.Filing, error) {
	var filings []compliance.Filing
	if err := r.db.WithContext(ctx).
		Where("client_ref = ?", strings.ToUpper(clientRef)).
		Order("due_date ASC").
		Find(&filings).Error; err != nil {
		return nil, err
	}
	return filings, nil
}

// FindAll finds filings matching the filter with pagination
func (r *GormFilingRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[compliance.Filing], error) {
	query := r.db.WithContext(ctx).Model(&compliance.Filing{})
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

	orderBy := ValidateSortField(filter.OrderBy, FilingSortFields, "due_date")
	var filings []compliance.Filing
	if err := query.
		Order(orderBy + " " + ValidateSortOrder(filter.OrderDir)).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&filings).Error; err != nil {
		return nil, err
	}

	result := shared.NewPaginated(filings, total, page, pageSize)
	return &result, nil
}

// FindDueBetween finds unfiled filings with a due date inside the window
func (r *GormFilingRepository) FindDueBetween(ctx context.Context, from, to time.Time) ([]compliance.Filing, error) {
	var filings []compliance.Filing
	if err := r.db.WithContext(ctx).
		Where("due_date >= ? AND due_date <= ? AND status <> ?", from, to, compliance.StatusFiled).
		Order("due_date ASC").
		Find(&filings).Error; err != nil {
		return nil, err
	}
	return filings, nil
}

// Save creates or updates a filing
func (r *GormFilingRepository) Save(ctx context.Context, f *compliance.Filing) error {
	return translateError(r.db.WithContext(ctx).Save(f).Error)
}

// Delete deletes a filing
func (r *GormFilingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&compliance.Filing{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountOverdue counts unfiled filings past their due date
func (r *GormFilingRepository) CountOverdue(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&compliance.Filing{}).
		Where("due_date < ? AND status <> ?", now, compliance.StatusFiled).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts filings grouped by status
func (r *GormFilingRepository) CountByStatus(ctx context.Context) (map[compliance.Status]int64, error) {
	type row struct {
		Status compliance.Status
		Count  int64
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&compliance.Filing{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[compliance.Status]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.Count
	}
	return counts, nil
}

func (r *GormFilingRepository) applyFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "type":
			query = query.Where("type = ?", value)
		case "client_ref":
			query = query.Where("client_ref = ?", value)
		case "overdue":
			// Value carries the clock reading to compare against
			if now, ok := value.(time.Time); ok {
				query = query.Where("due_date < ? AND status <> ?", now, compliance.StatusFiled)
			}
		}
	}
	return query
}

// Ensure GormFilingRepository implements compliance.Repository
var _ compliance.Repository = (*GormFilingRepository)(nil)
