package engagement

import (
	"context"

	"github.com/google/uuid"
	"github.com/practiq/backend/internal/domain/shared"
)

// ServiceRepository defines the persistence interface for service offerings
type ServiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ServiceOffering, error)
	FindByCode(ctx context.Context, code string) (*ServiceOffering, error)
	FindAll(ctx context.Context, activeOnly bool) ([]ServiceOffering, error)
	Save(ctx context.Context, offering *ServiceOffering) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Repository defines the persistence interface for engagements
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Engagement, error)
	FindByClient(ctx context.Context, clientRef string) ([]Engagement, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[Engagement], error)
	Save(ctx context.Context, e *Engagement) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountActiveByClient(ctx context.Context, clientRef string) (int64, error)
}
