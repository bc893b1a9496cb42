package document

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence interface for document metadata
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Document, error)
	FindByClient(ctx context.Context, clientRef string) ([]Document, error)
	Save(ctx context.Context, d *Document) error
	Delete(ctx context.Context, id uuid.UUID) error
}
