package identity

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence interface for users
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindAll(ctx context.Context) ([]User, error)
	Save(ctx context.Context, u *User) error
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}
