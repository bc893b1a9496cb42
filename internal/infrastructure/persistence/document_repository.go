package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/practiq/backend/internal/domain/document"
	"github.com/practiq/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormDocumentRepository implements document.Repository using GORM
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewGormDocumentRepository creates a new GormDocumentRepository
func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

// FindByID finds a document by its ID
func (r *GormDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*document.Document, error) {
	var d document.Document
	if err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &d, nil
}

// FindByClient finds all documents for a client, newest first
func (r *GormDocumentRepository) FindByClient(ctx context.Context, clientRef string) ([]document.Document, error) {
	var documents []document.Document
	if err := r.db.WithContext(ctx).
		Where("client_ref = ?", strings.ToUpper(clientRef)).
		Order("created_at DESC").
		Find(&documents).Error; err != nil {
		return nil, err
	}
	return documents, nil
}

// Save creates or updates a document record
func (r *GormDocumentRepository) Save(ctx context.Context, d *document.Document) error {
	return translateError(r.db.WithContext(ctx).Save(d).Error)
}

// Delete removes a document record
func (r *GormDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&document.Document{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormDocumentRepository implements document.Repository
var _ document.Repository = (*GormDocumentRepository)(nil)
