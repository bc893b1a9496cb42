package document

import (
	"time"

	"github.com/google/uuid"
	"github.com/practiq/backend/internal/domain/document"
)

// InitiateUploadRequest starts an upload for a client document
type InitiateUploadRequest struct {
	Category    string `json:"category" binding:"required,oneof=accounts tax correspondence identity engagement other"`
	FileName    string `json:"file_name" binding:"required,min=1,max=255"`
	FileSize    int64  `json:"file_size" binding:"required,min=1"`
	ContentType string `json:"content_type" binding:"required,max=100"`
}

// InitiateUploadResponse returns the presigned upload target
type InitiateUploadResponse struct {
	DocumentID uuid.UUID `json:"document_id"`
	UploadURL  string    `json:"upload_url"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// DownloadResponse returns a presigned download link
type DownloadResponse struct {
	DownloadURL string    `json:"download_url"`
	FileName    string    `json:"file_name"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// DocumentResponse represents a document in API responses
type DocumentResponse struct {
	ID          uuid.UUID `json:"id"`
	ClientRef   string    `json:"client_ref"`
	Category    string    `json:"category"`
	Status      string    `json:"status"`
	FileName    string    `json:"file_name"`
	FileSize    int64     `json:"file_size"`
	ContentType string    `json:"content_type"`
	UploadedBy  string    `json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToDocumentResponse converts a domain Document
func ToDocumentResponse(d *document.Document) DocumentResponse {
	return DocumentResponse{
		ID:          d.ID,
		ClientRef:   d.ClientRef,
		Category:    string(d.Category),
		Status:      string(d.Status),
		FileName:    d.FileName,
		FileSize:    d.FileSize,
		ContentType: d.ContentType,
		UploadedBy:  d.UploadedBy,
		CreatedAt:   d.CreatedAt,
	}
}

// ToDocumentResponses converts a slice of domain Documents
func ToDocumentResponses(docs []document.Document) []DocumentResponse {
	out := make([]DocumentResponse, len(docs))
	for i := range docs {
		out[i] = ToDocumentResponse(&docs[i])
	}
	return out
}
