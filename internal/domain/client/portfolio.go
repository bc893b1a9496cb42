package client

import (
	"time"

	"github.com/practiq/backend/internal/domain/shared"
)

// Portfolio groups clients under a numeric code. The code is the first
// component of every client reference allocated from the portfolio.
type Portfolio struct {
	shared.BaseAggregateRoot
	Code        int    `gorm:"not null;uniqueIndex"`
	Name        string `gorm:"type:varchar(100);not null"`
	Description string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Portfolio) TableName() string {
	return "portfolios"
}

// NewPortfolio creates a new portfolio with the given code and name
func NewPortfolio(code int, name string) (*Portfolio, error) {
	if code < 1 {
		return nil, shared.NewDomainError("INVALID_PORTFOLIO_CODE", "Portfolio code must be a positive integer")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Portfolio name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Portfolio name cannot exceed 100 characters")
	}

	return &Portfolio{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
	}, nil
}

// Rename changes the portfolio's display name
func (p *Portfolio) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Portfolio name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Portfolio name cannot exceed 100 characters")
	}

	p.Name = name
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetDescription sets the portfolio's description
func (p *Portfolio) SetDescription(description string) {
	p.Description = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}
