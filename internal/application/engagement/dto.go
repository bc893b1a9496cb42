package engagement

import (
	"time"

	"github.com/google/uuid"
	"github.com/practiq/backend/internal/domain/engagement"
	"github.com/shopspring/decimal"
)

// CreateServiceRequest represents a request to create a service offering
type CreateServiceRequest struct {
	Code        string           `json:"code" binding:"required,min=1,max=50"`
	Name        string           `json:"name" binding:"required,min=1,max=200"`
	Description string           `json:"description"`
	DefaultFee  *decimal.Decimal `json:"default_fee"`
}

// ServiceResponse represents a service offering in API responses
type ServiceResponse struct {
	ID          uuid.UUID       `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	DefaultFee  decimal.Decimal `json:"default_fee"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CreateEngagementRequest represents a request to engage a client for a service
type CreateEngagementRequest struct {
	ServiceID uuid.UUID        `json:"service_id" binding:"required"`
	Fee       *decimal.Decimal `json:"fee"` // Defaults to the offering's fee
	Frequency string           `json:"frequency" binding:"required,oneof=monthly quarterly annual one_off"`
	StartDate *time.Time       `json:"start_date"`
	Notes     string           `json:"notes"`
}

// EngagementResponse represents an engagement in API responses
type EngagementResponse struct {
	ID        uuid.UUID       `json:"id"`
	ClientRef string          `json:"client_ref"`
	ServiceID uuid.UUID       `json:"service_id"`
	Fee       decimal.Decimal `json:"fee"`
	Frequency string          `json:"frequency"`
	Status    string          `json:"status"`
	StartDate time.Time       `json:"start_date"`
	NextDueAt *time.Time      `json:"next_due_at"`
	EndedAt   *time.Time      `json:"ended_at"`
	Notes     string          `json:"notes"`
	CreatedAt time.Time       `json:"created_at"`
}

// ToServiceResponse converts a domain ServiceOffering
func ToServiceResponse(s *engagement.ServiceOffering) ServiceResponse {
	return ServiceResponse{
		ID:          s.ID,
		Code:        s.Code,
		Name:        s.Name,
		Description: s.Description,
		DefaultFee:  s.DefaultFee,
		Active:      s.Active,
		CreatedAt:   s.CreatedAt,
	}
}

// ToEngagementResponse converts a domain Engagement
func ToEngagementResponse(e *engagement.Engagement) EngagementResponse {
	return EngagementResponse{
		ID:        e.ID,
		ClientRef: e.ClientRef,
		ServiceID: e.ServiceID,
		Fee:       e.Fee,
		Frequency: string(e.Frequency),
		Status:    string(e.Status),
		StartDate: e.StartDate,
		NextDueAt: e.NextDueAt,
		EndedAt:   e.EndedAt,
		Notes:     e.Notes,
		CreatedAt: e.CreatedAt,
	}
}

// ToEngagementResponses converts a slice of domain Engagements
func ToEngagementResponses(engagements []engagement.Engagement) []EngagementResponse {
	out := make([]EngagementResponse, len(engagements))
	for i := range engagements {
		out[i] = ToEngagementResponse(&engagements[i])
	}
	return out
}
