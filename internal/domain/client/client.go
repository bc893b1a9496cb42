package client

import (
	"regexp"
	"strings"
	"time"

	"github.com/practiq/backend/internal/domain/shared"
)

// Status represents the lifecycle status of a client
type Status string

const (
	StatusActive  Status = "active"
	StatusDormant Status = "dormant"
	StatusCeased  Status = "ceased" // Disengaged or wound up
)

// Type represents the kind of entity the client is
type Type string

const (
	TypeIndividual  Type = "individual"
	TypeSoleTrader  Type = "sole_trader"
	TypeCompany     Type = "company"
	TypePartnership Type = "partnership"
	TypeTrust       Type = "trust"
)

// Client is a client of the practice. It is the aggregate root for
// client-related operations and is keyed by its allocated reference
// (e.g. "1A001"); once assigned, the reference is immutable except via
// the explicit ReassignRef administrative operation.
type Client struct {
	Ref           string `gorm:"type:varchar(20);primaryKey"`
	Name          string `gorm:"type:varchar(200);not null"`
	Type          Type   `gorm:"type:varchar(20);not null;default:'individual'"`
	Status        Status `gorm:"type:varchar(20);not null;default:'active'"`
	PortfolioCode int    `gorm:"not null;index"`
	CompanyNumber string `gorm:"type:varchar(20);index"` // Companies House number, companies only
	VATNumber     string `gorm:"type:varchar(20)"`
	UTR           string `gorm:"type:varchar(20)"` // Unique Taxpayer Reference
	ContactName   string `gorm:"type:varchar(100)"`
	Email         string `gorm:"type:varchar(200);index"`
	Phone         string `gorm:"type:varchar(50)"`
	AddressLine1  string `gorm:"type:varchar(200)"`
	AddressLine2  string `gorm:"type:varchar(200)"`
	City          string `gorm:"type:varchar(100)"`
	Postcode      string `gorm:"type:varchar(20)"`
	Notes         string `gorm:"type:text"`
	Version       int    `gorm:"not null;default:1"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	domainEvents []shared.DomainEvent `gorm:"-"`
}

// TableName returns the table name for GORM
func (Client) TableName() string {
	return "clients"
}

// NewClient creates a new client keyed by the given reference. The
// reference is either freshly allocated or supplied by an administrator;
// either way it is recorded exactly as given (uppercased), never
// silently mutated.
func NewClient(ref, name string, clientType Type, portfolioCode int) (*Client, error) {
	ref = strings.ToUpper(strings.TrimSpace(ref))
	if err := validateRef(ref); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateType(clientType); err != nil {
		return nil, err
	}
	if portfolioCode < 1 {
		portfolioCode = DefaultPortfolioCode
	}

	now := time.Now()
	c := &Client{
		Ref:           ref,
		Name:          name,
		Type:          clientType,
		Status:        StatusActive,
		PortfolioCode: portfolioCode,
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	c.AddDomainEvent(NewClientCreatedEvent(c))

	return c, nil
}

// GetVersion returns the aggregate version for optimistic locking
func (c *Client) GetVersion() int {
	return c.Version
}

// IncrementVersion increments the version number
func (c *Client) IncrementVersion() {
	c.Version++
}

// AddDomainEvent adds a domain event to be published
func (c *Client) AddDomainEvent(event shared.DomainEvent) {
	c.domainEvents = append(c.domainEvents, event)
}

// GetDomainEvents returns all pending domain events
func (c *Client) GetDomainEvents() []shared.DomainEvent {
	return c.domainEvents
}

// ClearDomainEvents clears the pending domain events
func (c *Client) ClearDomainEvents() {
	c.domainEvents = nil
}

// Update updates the client's basic information
func (c *Client) Update(name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	c.Name = name
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewClientUpdatedEvent(c))

	return nil
}

// SetContact sets the client's contact information
func (c *Client) SetContact(contactName, phone, email string) error {
	if contactName != "" && len(contactName) > 100 {
		return shared.NewDomainError("INVALID_CONTACT_NAME", "Contact name cannot exceed 100 characters")
	}
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return err
		}
	}
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
	}

	c.ContactName = contactName
	c.Phone = phone
	c.Email = email
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetAddress sets the client's address
func (c *Client) SetAddress(line1, line2, city, postcode string) error {
	for _, f := range []struct {
		value string
		max   int
		code  string
		msg   string
	}{
		{line1, 200, "INVALID_ADDRESS", "Address line cannot exceed 200 characters"},
		{line2, 200, "INVALID_ADDRESS", "Address line cannot exceed 200 characters"},
		{city, 100, "INVALID_CITY", "City cannot exceed 100 characters"},
		{postcode, 20, "INVALID_POSTCODE", "Postcode cannot exceed 20 characters"},
	} {
		if f.value != "" && len(f.value) > f.max {
			return shared.NewDomainError(f.code, f.msg)
		}
	}

	c.AddressLine1 = line1
	c.AddressLine2 = line2
	c.City = city
	c.Postcode = postcode
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetTaxIdentifiers sets the client's statutory identifiers
func (c *Client) SetTaxIdentifiers(companyNumber, vatNumber, utr string) error {
	if companyNumber != "" && len(companyNumber) > 20 {
		return shared.NewDomainError("INVALID_COMPANY_NUMBER", "Company number cannot exceed 20 characters")
	}
	if vatNumber != "" && len(vatNumber) > 20 {
		return shared.NewDomainError("INVALID_VAT_NUMBER", "VAT number cannot exceed 20 characters")
	}
	if utr != "" && len(utr) > 20 {
		return shared.NewDomainError("INVALID_UTR", "UTR cannot exceed 20 characters")
	}

	c.CompanyNumber = strings.ToUpper(companyNumber)
	c.VATNumber = strings.ToUpper(vatNumber)
	c.UTR = utr
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetNotes sets free-form notes
func (c *Client) SetNotes(notes string) {
	c.Notes = notes
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Activate marks the client active
func (c *Client) Activate() error {
	return c.transition(StatusActive)
}

// MarkDormant marks the client dormant
func (c *Client) MarkDormant() error {
	return c.transition(StatusDormant)
}

// Cease marks the client ceased
func (c *Client) Cease() error {
	return c.transition(StatusCeased)
}

func (c *Client) transition(to Status) error {
	if c.Status == to {
		return shared.NewDomainError("INVALID_STATE", "Client is already "+string(to))
	}

	from := c.Status
	c.Status = to
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewClientStatusChangedEvent(c, from, to))

	return nil
}

// ReassignRef administratively changes the client's reference. This is
// distinct from allocation: the new reference is caller-chosen, and
// uniqueness is the caller's responsibility (enforced by the primary-key
// constraint on save).
func (c *Client) ReassignRef(newRef string) error {
	newRef = strings.ToUpper(strings.TrimSpace(newRef))
	if err := validateRef(newRef); err != nil {
		return err
	}

	oldRef := c.Ref
	c.Ref = newRef
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewClientRefReassignedEvent(c, oldRef, newRef))

	return nil
}

// IsActive returns true if the client is active
func (c *Client) IsActive() bool {
	return c.Status == StatusActive
}

// IsCompany returns true for clients registered at Companies House
func (c *Client) IsCompany() bool {
	return c.Type == TypeCompany
}

// Validation functions

var refCharset = regexp.MustCompile(`^[A-Z0-9]+$`)

func validateRef(ref string) error {
	if ref == "" {
		return shared.NewDomainError("INVALID_REF", "Client reference cannot be empty")
	}
	if len(ref) > 20 {
		return shared.NewDomainError("INVALID_REF", "Client reference cannot exceed 20 characters")
	}
	// Manually assigned references need not follow the allocated
	// format, but they are always uppercase alphanumerics.
	if !refCharset.MatchString(ref) {
		return shared.NewDomainError("INVALID_REF", "Client reference can only contain letters and digits")
	}
	return nil
}

func validateName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Client name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Client name cannot exceed 200 characters")
	}
	return nil
}

func validateType(t Type) error {
	switch t {
	case TypeIndividual, TypeSoleTrader, TypeCompany, TypePartnership, TypeTrust:
		return nil
	default:
		return shared.NewDomainError("INVALID_TYPE", "Invalid client type")
	}
}

func validatePhone(phone string) error {
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone number cannot exceed 50 characters")
	}
	validPhone := regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)
	if !validPhone.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Invalid phone number format")
	}
	return nil
}

func validateEmail(email string) error {
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}
