package engagement

import (
	"strings"
	"time"

	"github.com/practiq/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ServiceOffering is a service the practice offers to clients, e.g.
// bookkeeping, VAT returns, payroll, annual accounts. Engagements
// reference an offering and may override its default fee.
type ServiceOffering struct {
	shared.BaseAggregateRoot
	Code        string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	DefaultFee  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Active      bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (ServiceOffering) TableName() string {
	return "service_offerings"
}

// NewServiceOffering creates a new service offering
func NewServiceOffering(code, name string, defaultFee decimal.Decimal) (*ServiceOffering, error) {
	if err := validateServiceCode(code); err != nil {
		return nil, err
	}
	if err := validateServiceName(name); err != nil {
		return nil, err
	}
	if defaultFee.IsNegative() {
		return nil, shared.NewDomainError("INVALID_FEE", "Default fee cannot be negative")
	}

	return &ServiceOffering{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		DefaultFee:        defaultFee,
		Active:            true,
	}, nil
}

// Update updates the offering's basic information
func (s *ServiceOffering) Update(name, description string) error {
	if err := validateServiceName(name); err != nil {
		return err
	}

	s.Name = name
	s.Description = description
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// SetDefaultFee changes the default fee charged for new engagements
func (s *ServiceOffering) SetDefaultFee(fee decimal.Decimal) error {
	if fee.IsNegative() {
		return shared.NewDomainError("INVALID_FEE", "Default fee cannot be negative")
	}

	s.DefaultFee = fee
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// Deactivate removes the offering from the catalogue. Existing
// engagements keep running.
func (s *ServiceOffering) Deactivate() error {
	if !s.Active {
		return shared.NewDomainError("ALREADY_INACTIVE", "Service offering is already inactive")
	}

	s.Active = false
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// Activate restores the offering to the catalogue
func (s *ServiceOffering) Activate() error {
	if s.Active {
		return shared.NewDomainError("ALREADY_ACTIVE", "Service offering is already active")
	}

	s.Active = true
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

func validateServiceCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Service code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Service code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "Service code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

func validateServiceName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Service name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Service name cannot exceed 200 characters")
	}
	return nil
}
