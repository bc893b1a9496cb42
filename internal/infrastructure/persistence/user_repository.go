package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/practiq/backend/internal/domain/identity"
	"gorm.io/gorm"
)

// GormUserRepository implements identity.Repository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var u identity.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &u, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	var u identity.User
	if err := r.db.WithContext(ctx).
		First(&u, "username = ?", strings.ToLower(strings.TrimSpace(username))).Error; err != nil {
		return nil, translateError(err)
	}
	return &u, nil
}

// FindAll returns all users ordered by username
func (r *GormUserRepository) FindAll(ctx context.Context) ([]identity.User, error) {
	var users []identity.User
	if err := r.db.WithContext(ctx).Order("username ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Save creates or updates a user
func (r *GormUserRepository) Save(ctx context.Context, u *identity.User) error {
	return translateError(r.db.WithContext(ctx).Save(u).Error)
}

// ExistsByUsername checks whether a username is taken
func (r *GormUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&identity.User{}).
		Where("username = ?", strings.ToLower(strings.TrimSpace(username))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormUserRepository implements identity.Repository
var _ identity.Repository = (*GormUserRepository)(nil)
