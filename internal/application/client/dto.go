package client

import (
	"time"

	"github.com/practiq/backend/internal/domain/client"
)

// =============================================================================
// Client DTOs
// =============================================================================

// CreateClientRequest represents a request to create a new client. When
// Ref is empty a reference is allocated from the portfolio's buckets.
type CreateClientRequest struct {
	Ref           string `json:"ref" binding:"omitempty,max=20"`
	Name          string `json:"name" binding:"required,min=1,max=200"`
	Type          string `json:"type" binding:"required,oneof=individual sole_trader company partnership trust"`
	PortfolioCode int    `json:"portfolio_code" binding:"omitempty,min=1"`
	CompanyNumber string `json:"company_number" binding:"max=20"`
	VATNumber     string `json:"vat_number" binding:"max=20"`
	UTR           string `json:"utr" binding:"max=20"`
	ContactName   string `json:"contact_name" binding:"max=100"`
	Phone         string `json:"phone" binding:"max=50"`
	Email         string `json:"email" binding:"omitempty,email,max=200"`
	AddressLine1  string `json:"address_line1" binding:"max=200"`
	AddressLine2  string `json:"address_line2" binding:"max=200"`
	City          string `json:"city" binding:"max=100"`
	Postcode      string `json:"postcode" binding:"max=20"`
	Notes         string `json:"notes"`
}

// UpdateClientRequest represents a request to update a client
type UpdateClientRequest struct {
	Name          *string `json:"name" binding:"omitempty,min=1,max=200"`
	Status        *string `json:"status" binding:"omitempty,oneof=active dormant ceased"`
	CompanyNumber *string `json:"company_number" binding:"omitempty,max=20"`
	VATNumber     *string `json:"vat_number" binding:"omitempty,max=20"`
	UTR           *string `json:"utr" binding:"omitempty,max=20"`
	ContactName   *string `json:"contact_name" binding:"omitempty,max=100"`
	Phone         *string `json:"phone" binding:"omitempty,max=50"`
	Email         *string `json:"email" binding:"omitempty,email,max=200"`
	AddressLine1  *string `json:"address_line1" binding:"omitempty,max=200"`
	AddressLine2  *string `json:"address_line2" binding:"omitempty,max=200"`
	City          *string `json:"city" binding:"omitempty,max=100"`
	Postcode      *string `json:"postcode" binding:"omitempty,max=20"`
	Notes         *string `json:"notes"`
}

// ReassignRefRequest represents an administrative reference change
type ReassignRefRequest struct {
	NewRef string `json:"new_ref" binding:"required,min=1,max=20"`
}

// ClientResponse represents a client in API responses
type ClientResponse struct {
	Ref           string    `json:"ref"`
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	Status        string    `json:"status"`
	PortfolioCode int       `json:"portfolio_code"`
	CompanyNumber string    `json:"company_number"`
	VATNumber     string    `json:"vat_number"`
	UTR           string    `json:"utr"`
	ContactName   string    `json:"contact_name"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	AddressLine1  string    `json:"address_line1"`
	AddressLine2  string    `json:"address_line2"`
	City          string    `json:"city"`
	Postcode      string    `json:"postcode"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Version       int       `json:"version"`
}

// ClientListFilter represents filter options for the client list
type ClientListFilter struct {
	Search        string `form:"search"`
	Status        string `form:"status" binding:"omitempty,oneof=active dormant ceased"`
	Type          string `form:"type" binding:"omitempty,oneof=individual sole_trader company partnership trust"`
	PortfolioCode int    `form:"portfolio_code" binding:"omitempty,min=1"`
	Page          int    `form:"page" binding:"omitempty,min=1"`
	PageSize      int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy       string `form:"order_by"`
	OrderDir      string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToClientResponse converts a domain Client to ClientResponse
func ToClientResponse(c *client.Client) ClientResponse {
	return ClientResponse{
		Ref:           c.Ref,
		Name:          c.Name,
		Type:          string(c.Type),
		Status:        string(c.Status),
		PortfolioCode: c.PortfolioCode,
		CompanyNumber: c.CompanyNumber,
		VATNumber:     c.VATNumber,
		UTR:           c.UTR,
		ContactName:   c.ContactName,
		Phone:         c.Phone,
		Email:         c.Email,
		AddressLine1:  c.AddressLine1,
		AddressLine2:  c.AddressLine2,
		City:          c.City,
		Postcode:      c.Postcode,
		Notes:         c.Notes,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
		Version:       c.Version,
	}
}

// ToClientResponses converts a slice of domain Clients
func ToClientResponses(clients []client.Client) []ClientResponse {
	out := make([]ClientResponse, len(clients))
	for i := range clients {
		out[i] = ToClientResponse(&clients[i])
	}
	return out
}

// =============================================================================
// Portfolio DTOs
// =============================================================================

// CreatePortfolioRequest represents a request to create a portfolio
type CreatePortfolioRequest struct {
	Code        int    `json:"code" binding:"required,min=1"`
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description"`
}

// PortfolioResponse represents a portfolio in API responses
type PortfolioResponse struct {
	Code        int       `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ClientCount int64     `json:"client_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToPortfolioResponse converts a domain Portfolio to PortfolioResponse
func ToPortfolioResponse(p *client.Portfolio, clientCount int64) PortfolioResponse {
	return PortfolioResponse{
		Code:        p.Code,
		Name:        p.Name,
		Description: p.Description,
		ClientCount: clientCount,
		CreatedAt:   p.CreatedAt,
	}
}
