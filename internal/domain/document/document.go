package document

import (
	"strings"
	"time"

	"github.com/practiq/backend/internal/domain/shared"
)

// MaxFileSize is the maximum allowed file size (50MB)
const MaxFileSize = 50 * 1024 * 1024

// Category classifies documents within a client file
type Category string

const (
	CategoryAccounts       Category = "accounts"
	CategoryTax            Category = "tax"
	CategoryCorrespondence Category = "correspondence"
	CategoryIdentity       Category = "identity" // AML / KYC evidence
	CategoryEngagement     Category = "engagement"
	CategoryOther          Category = "other"
)

// IsValid checks if the category is valid
func (c Category) IsValid() bool {
	switch c {
	case CategoryAccounts, CategoryTax, CategoryCorrespondence,
		CategoryIdentity, CategoryEngagement, CategoryOther:
		return true
	default:
		return false
	}
}

// Status represents the upload lifecycle of a document
type Status string

const (
	StatusPending Status = "pending" // Metadata recorded, upload not yet confirmed
	StatusActive  Status = "active"
	StatusDeleted Status = "deleted"
)

// Document is the metadata record for a file held against a client.
// The binary lives behind the storage interface; this aggregate tracks
// the storage key and the upload lifecycle.
type Document struct {
	shared.BaseAggregateRoot
	ClientRef   string   `gorm:"type:varchar(20);not null;index"`
	Category    Category `gorm:"type:varchar(30);not null;default:'other'"`
	Status      Status   `gorm:"type:varchar(20);not null;default:'pending'"`
	FileName    string   `gorm:"type:varchar(255);not null"`
	FileSize    int64    `gorm:"not null"`
	ContentType string   `gorm:"type:varchar(100);not null"`
	StorageKey  string   `gorm:"type:varchar(500);not null;uniqueIndex"`
	UploadedBy  string   `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (Document) TableName() string {
	return "documents"
}

// NewDocument creates a new document record in pending status
func NewDocument(clientRef string, category Category, fileName string, fileSize int64, contentType, storageKey, uploadedBy string) (*Document, error) {
	if clientRef == "" {
		return nil, shared.NewDomainError("INVALID_CLIENT_REF", "Client reference cannot be empty")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Invalid document category")
	}
	if err := validateFileName(fileName); err != nil {
		return nil, err
	}
	if err := validateFileSize(fileSize); err != nil {
		return nil, err
	}
	if err := validateContentType(contentType); err != nil {
		return nil, err
	}
	if err := validateStorageKey(storageKey); err != nil {
		return nil, err
	}

	return &Document{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ClientRef:         clientRef,
		Category:          category,
		Status:            StatusPending,
		FileName:          fileName,
		FileSize:          fileSize,
		ContentType:       contentType,
		StorageKey:        storageKey,
		UploadedBy:        uploadedBy,
	}, nil
}

// Confirm activates the document once the file is in storage
func (d *Document) Confirm() error {
	if d.Status == StatusActive {
		return shared.NewDomainError("ALREADY_CONFIRMED", "Document is already confirmed")
	}
	if d.Status == StatusDeleted {
		return shared.NewDomainError("CANNOT_CONFIRM_DELETED", "Cannot confirm a deleted document")
	}

	d.Status = StatusActive
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// Delete marks the document as deleted (soft delete). The stored file
// is removed separately by the application service.
func (d *Document) Delete() error {
	if d.Status == StatusDeleted {
		return shared.NewDomainError("ALREADY_DELETED", "Document is already deleted")
	}

	d.Status = StatusDeleted
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// Recategorise moves the document to a different category
func (d *Document) Recategorise(category Category) error {
	if d.Status == StatusDeleted {
		return shared.NewDomainError("CANNOT_UPDATE_DELETED", "Cannot update a deleted document")
	}
	if !category.IsValid() {
		return shared.NewDomainError("INVALID_CATEGORY", "Invalid document category")
	}

	d.Category = category
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// IsActive returns true if the document is active
func (d *Document) IsActive() bool {
	return d.Status == StatusActive
}

// IsDeleted returns true if the document is deleted
func (d *Document) IsDeleted() bool {
	return d.Status == StatusDeleted
}

// validation functions

func validateFileName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_FILE_NAME", "File name cannot be empty")
	}
	if len(name) > 255 {
		return shared.NewDomainError("INVALID_FILE_NAME", "File name cannot exceed 255 characters")
	}
	for _, r := range name {
		if r < 32 || r == 127 {
			return shared.NewDomainError("INVALID_FILE_NAME", "File name contains invalid characters")
		}
	}
	if strings.Contains(name, "/") || strings.Contains(name, "\\") {
		return shared.NewDomainError("INVALID_FILE_NAME", "File name cannot contain path separators")
	}
	return nil
}

func validateFileSize(size int64) error {
	if size <= 0 {
		return shared.NewDomainError("INVALID_FILE_SIZE", "File size must be greater than 0")
	}
	if size > MaxFileSize {
		return shared.NewDomainError("FILE_TOO_LARGE", "File size cannot exceed 50MB")
	}
	return nil
}

func validateContentType(contentType string) error {
	if contentType == "" {
		return shared.NewDomainError("INVALID_CONTENT_TYPE", "Content type cannot be empty")
	}
	if len(contentType) > 100 {
		return shared.NewDomainError("INVALID_CONTENT_TYPE", "Content type cannot exceed 100 characters")
	}
	if !strings.Contains(contentType, "/") ||
		strings.HasPrefix(contentType, "/") || strings.HasSuffix(contentType, "/") {
		return shared.NewDomainError("INVALID_CONTENT_TYPE", "Content type must be in type/subtype format")
	}
	return nil
}

func validateStorageKey(key string) error {
	if key == "" {
		return shared.NewDomainError("INVALID_STORAGE_KEY", "Storage key cannot be empty")
	}
	if len(key) > 500 {
		return shared.NewDomainError("INVALID_STORAGE_KEY", "Storage key cannot exceed 500 characters")
	}
	if strings.Contains(key, "..") {
		return shared.NewDomainError("INVALID_STORAGE_KEY", "Storage key cannot contain path traversal sequences")
	}
	if strings.HasPrefix(key, "/") {
		return shared.NewDomainError("INVALID_STORAGE_KEY", "Storage key must be a relative path")
	}
	return nil
}
