package compliance

import (
	"time"

	"github.com/google/uuid"
	"github.com/practiq/backend/internal/domain/compliance"
)

// CreateFilingRequest represents a request to create a filing
type CreateFilingRequest struct {
	Type      string    `json:"type" binding:"required,oneof=annual_accounts confirmation_statement vat_return corporation_tax self_assessment payroll_year_end"`
	PeriodEnd time.Time `json:"period_end" binding:"required"`
	DueDate   time.Time `json:"due_date" binding:"required"`
	Notes     string    `json:"notes"`
}

// UpdateStatusRequest moves a filing through its workflow
type UpdateStatusRequest struct {
	Status    string `json:"status" binding:"required,oneof=pending in_progress filed"`
	Reference string `json:"reference" binding:"max=50"`
}

// FilingListFilter represents filter options for the filing list
type FilingListFilter struct {
	Status    string `form:"status" binding:"omitempty,oneof=pending in_progress filed overdue"`
	ClientRef string `form:"client_ref"`
	DueWithin int    `form:"due_within" binding:"omitempty,min=1,max=365"` // Days
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// FilingResponse represents a filing in API responses
type FilingResponse struct {
	ID        uuid.UUID  `json:"id"`
	ClientRef string     `json:"client_ref"`
	Type      string     `json:"type"`
	PeriodEnd time.Time  `json:"period_end"`
	DueDate   time.Time  `json:"due_date"`
	Status    string     `json:"status"`
	Overdue   bool       `json:"overdue"`
	FiledAt   *time.Time `json:"filed_at"`
	Reference string     `json:"reference"`
	Notes     string     `json:"notes"`
	CreatedAt time.Time  `json:"created_at"`
}

// ToFilingResponse converts a domain Filing. Overdue is derived against
// the supplied clock, not stored.
func ToFilingResponse(f *compliance.Filing, now time.Time) FilingResponse {
	return FilingResponse{
		ID:        f.ID,
		ClientRef: f.ClientRef,
		Type:      string(f.Type),
		PeriodEnd: f.PeriodEnd,
		DueDate:   f.DueDate,
		Status:    string(f.Status),
		Overdue:   f.IsOverdue(now),
		FiledAt:   f.FiledAt,
		Reference: f.Reference,
		Notes:     f.Notes,
		CreatedAt: f.CreatedAt,
	}
}

// ToFilingResponses converts a slice of domain Filings
func ToFilingResponses(filings []compliance.Filing, now time.Time) []FilingResponse {
	out := make([]FilingResponse, len(filings))
	for i := range filings {
		out[i] = ToFilingResponse(&filings[i], now)
	}
	return out
}
