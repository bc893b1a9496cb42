package document

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/practiq/backend/internal/domain/client"
	"github.com/practiq/backend/internal/domain/document"
	"github.com/practiq/backend/internal/domain/shared"
)

// AllowedContentTypes is the whitelist for client document uploads.
// Executables and scripts stay out; SVG is excluded because it can
// carry script.
var AllowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"text/plain":      true,
	"text/csv":        true,
	"application/zip": true,
}

// ObjectStorageService defines the interface for object storage
// operations, implemented by the infrastructure layer (S3 or the local
// stub).
type ObjectStorageService interface {
	// GenerateUploadURL generates a presigned URL for uploading a file
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL generates a presigned URL for downloading a file
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject deletes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists checks if an object exists in storage
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// ServiceConfig holds configuration for the document service
type ServiceConfig struct {
	UploadURLExpiry   time.Duration
	DownloadURLExpiry time.Duration
}

// DefaultServiceConfig returns the default configuration
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		UploadURLExpiry:   15 * time.Minute,
		DownloadURLExpiry: 1 * time.Hour,
	}
}

// Service handles client document operations
type Service struct {
	documentRepo document.Repository
	clientRepo   client.Repository
	storage      ObjectStorageService
	config       ServiceConfig
}

// NewService creates a new document Service
func NewService(documentRepo document.Repository, clientRepo client.Repository, storage ObjectStorageService) *Service {
	return &Service{
		documentRepo: documentRepo,
		clientRepo:   clientRepo,
		storage:      storage,
		config:       DefaultServiceConfig(),
	}
}

// SetConfig sets the service configuration
func (s *Service) SetConfig(config ServiceConfig) {
	s.config = config
}

// InitiateUpload creates a pending document record and returns a
// presigned upload URL
func (s *Service) InitiateUpload(ctx context.Context, clientRef string, req InitiateUploadRequest, uploadedBy string) (*InitiateUploadResponse, error) {
	c, err := s.clientRepo.FindByRef(ctx, clientRef)
	if err != nil {
		return nil, err
	}

	if !AllowedContentTypes[req.ContentType] {
		return nil, shared.NewDomainError("DISALLOWED_CONTENT_TYPE",
			fmt.Sprintf("Content type '%s' is not allowed", req.ContentType))
	}

	storageKey := s.generateStorageKey(c.Ref, req.FileName)

	doc, err := document.NewDocument(c.Ref, document.Category(req.Category), req.FileName, req.FileSize, req.ContentType, storageKey, uploadedBy)
	if err != nil {
		return nil, err
	}

	if err := s.documentRepo.Save(ctx, doc); err != nil {
		return nil, err
	}

	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, storageKey, req.ContentType, s.config.UploadURLExpiry)
	if err != nil {
		_ = s.documentRepo.Delete(ctx, doc.ID)
		return nil, shared.NewDomainError("UPLOAD_URL_FAILED", "Failed to generate upload URL")
	}

	return &InitiateUploadResponse{
		DocumentID: doc.ID,
		UploadURL:  uploadURL,
		ExpiresAt:  expiresAt,
	}, nil
}

// ConfirmUpload verifies the file landed in storage and activates the
// document record
func (s *Service) ConfirmUpload(ctx context.Context, documentID uuid.UUID) (*DocumentResponse, error) {
	doc, err := s.documentRepo.FindByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	exists, err := s.storage.ObjectExists(ctx, doc.StorageKey)
	if err != nil {
		return nil, shared.NewDomainError("STORAGE_CHECK_FAILED", "Failed to verify upload")
	}
	if !exists {
		return nil, shared.NewDomainError("UPLOAD_NOT_FOUND", "File not found in storage. Please upload the file first.")
	}

	if err := doc.Confirm(); err != nil {
		return nil, err
	}
	if err := s.documentRepo.Save(ctx, doc); err != nil {
		return nil, err
	}

	response := ToDocumentResponse(doc)
	return &response, nil
}

// Download returns a presigned download URL for an active document
func (s *Service) Download(ctx context.Context, documentID uuid.UUID) (*DownloadResponse, error) {
	doc, err := s.documentRepo.FindByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if !doc.IsActive() {
		return nil, shared.NewDomainError("DOCUMENT_NOT_AVAILABLE", "Document is not available for download")
	}

	url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, doc.StorageKey, s.config.DownloadURLExpiry)
	if err != nil {
		return nil, shared.NewDomainError("DOWNLOAD_URL_FAILED", "Failed to generate download URL")
	}

	return &DownloadResponse{
		DownloadURL: url,
		FileName:    doc.FileName,
		ExpiresAt:   expiresAt,
	}, nil
}

// ListForClient returns a client's non-deleted documents
func (s *Service) ListForClient(ctx context.Context, clientRef string) ([]DocumentResponse, error) {
	if _, err := s.clientRepo.FindByRef(ctx, clientRef); err != nil {
		return nil, err
	}

	docs, err := s.documentRepo.FindByClient(ctx, clientRef)
	if err != nil {
		return nil, err
	}

	out := make([]DocumentResponse, 0, len(docs))
	for i := range docs {
		if docs[i].IsDeleted() {
			continue
		}
		out = append(out, ToDocumentResponse(&docs[i]))
	}
	return out, nil
}

// Delete soft-deletes the record and removes the stored object
func (s *Service) Delete(ctx context.Context, documentID uuid.UUID) error {
	doc, err := s.documentRepo.FindByID(ctx, documentID)
	if err != nil {
		return err
	}

	if err := doc.Delete(); err != nil {
		return err
	}
	if err := s.documentRepo.Save(ctx, doc); err != nil {
		return err
	}

	// Best effort: the metadata row is authoritative, an orphaned
	// object only wastes space.
	_ = s.storage.DeleteObject(ctx, doc.StorageKey)

	return nil
}

// generateStorageKey builds a collision-free key under the client's prefix
func (s *Service) generateStorageKey(clientRef, fileName string) string {
	ext := filepath.Ext(fileName)
	base := strings.TrimSuffix(fileName, ext)
	base = strings.ReplaceAll(base, " ", "-")
	return fmt.Sprintf("clients/%s/%s-%s%s", clientRef, base, uuid.New().String()[:8], ext)
}
