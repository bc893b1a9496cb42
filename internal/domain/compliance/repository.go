package compliance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/practiq/backend/internal/domain/shared"
)

// Repository defines the persistence interface for filings
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Filing, error)
	FindByClient(ctx context.Context, clientRef string) ([]Filing, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[Filing], error)
	FindDueBetween(ctx context.Context, from, to time.Time) ([]Filing, error)
	Save(ctx context.Context, f *Filing) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountOverdue(ctx context.Context, now time.Time) (int64, error)
	CountByStatus(ctx context.Context) (map[Status]int64, error)
}
