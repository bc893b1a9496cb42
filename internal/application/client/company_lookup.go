package client

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/practiq/backend/internal/domain/client"
	"github.com/practiq/backend/internal/domain/shared"
)

// ErrCompanyNotFound is returned by a CompanyProfileGateway when the
// registry has no company under the given number.
var ErrCompanyNotFound = errors.New("company not found")

// CompanyProfile is the slice of a Companies House profile the practice
// cares about
type CompanyProfile struct {
	CompanyNumber          string   `json:"company_number"`
	CompanyName            string   `json:"company_name"`
	CompanyStatus          string   `json:"company_status"`
	CompanyType            string   `json:"company_type"`
	DateOfCreation         string   `json:"date_of_creation"`
	RegisteredAddressLine1 string   `json:"registered_address_line1"`
	RegisteredAddressLine2 string   `json:"registered_address_line2"`
	RegisteredCity         string   `json:"registered_city"`
	RegisteredPostcode     string   `json:"registered_postcode"`
	SICCodes               []string `json:"sic_codes"`
	AccountsNextDue        string   `json:"accounts_next_due,omitempty"`
	ConfirmationNextDue    string   `json:"confirmation_next_due,omitempty"`
}

// CompanyProfileGateway fetches company profiles from the registry
type CompanyProfileGateway interface {
	Profile(ctx context.Context, companyNumber string) (*CompanyProfile, error)
}

// Company numbers are 8 characters: fully numeric or a two-letter
// prefix (SC, NI, OC, ...) followed by six digits.
var companyNumberPattern = regexp.MustCompile(`^(\d{8}|[A-Z]{2}\d{6})$`)

// CompanyLookupService answers company profile lookups and refreshes
// client records from the registry
type CompanyLookupService struct {
	gateway    CompanyProfileGateway
	clientRepo client.Repository
}

// NewCompanyLookupService creates a new CompanyLookupService
func NewCompanyLookupService(gateway CompanyProfileGateway, clientRepo client.Repository) *CompanyLookupService {
	return &CompanyLookupService{
		gateway:    gateway,
		clientRepo: clientRepo,
	}
}

// NormalizeCompanyNumber uppercases and left-pads short numeric company
// numbers to eight digits, the form the registry keys on
func NormalizeCompanyNumber(number string) string {
	number = strings.ToUpper(strings.TrimSpace(number))
	for len(number) < 8 && number != "" && number[0] >= '0' && number[0] <= '9' {
		number = "0" + number
	}
	return number
}

// Lookup fetches a company profile from the registry
func (s *CompanyLookupService) Lookup(ctx context.Context, companyNumber string) (*CompanyProfile, error) {
	number := NormalizeCompanyNumber(companyNumber)
	if !companyNumberPattern.MatchString(number) {
		return nil, shared.NewDomainError("INVALID_COMPANY_NUMBER", "Company number must be 8 digits or a 2-letter prefix and 6 digits")
	}

	profile, err := s.gateway.Profile(ctx, number)
	if err != nil {
		if errors.Is(err, ErrCompanyNotFound) {
			return nil, shared.NewDomainError("COMPANY_NOT_FOUND", "No company registered under this number")
		}
		return nil, shared.NewDomainError("REGISTRY_UNAVAILABLE", "Company registry lookup failed")
	}
	return profile, nil
}

// RefreshClient re-reads a client's registered details from the registry
// and applies the current name and registered office address
func (s *CompanyLookupService) RefreshClient(ctx context.Context, ref string) (*ClientResponse, error) {
	c, err := s.clientRepo.FindByRef(ctx, strings.ToUpper(ref))
	if err != nil {
		return nil, err
	}
	if c.CompanyNumber == "" {
		return nil, shared.NewDomainError("NO_COMPANY_NUMBER", "Client has no company number on record")
	}

	profile, err := s.Lookup(ctx, c.CompanyNumber)
	if err != nil {
		return nil, err
	}

	if profile.CompanyName != "" && profile.CompanyName != c.Name {
		if err := c.Update(profile.CompanyName); err != nil {
			return nil, err
		}
	}
	if profile.RegisteredAddressLine1 != "" {
		if err := c.SetAddress(profile.RegisteredAddressLine1, profile.RegisteredAddressLine2, profile.RegisteredCity, profile.RegisteredPostcode); err != nil {
			return nil, err
		}
	}

	if err := s.clientRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	response := ToClientResponse(c)
	return &response, nil
}
