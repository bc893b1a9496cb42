// Package companieshouse implements the company registry gateway
// against the Companies House public data API.
package companieshouse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	appclient "github.com/practiq/backend/internal/application/client"
	"github.com/practiq/backend/internal/infrastructure/config"
)

var _ appclient.CompanyProfileGateway = (*Client)(nil)

// Client calls the Companies House REST API. Authentication is HTTP
// basic with the API key as username and an empty password.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a registry client from the Companies House config section
func NewClient(cfg config.CompaniesHouseConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
	}
}

// companyProfileResponse mirrors the fields of GET /company/{number}
// that the practice uses
type companyProfileResponse struct {
	CompanyName    string   `json:"company_name"`
	CompanyNumber  string   `json:"company_number"`
	CompanyStatus  string   `json:"company_status"`
	Type           string   `json:"type"`
	DateOfCreation string   `json:"date_of_creation"`
	SICCodes       []string `json:"sic_codes"`

	RegisteredOfficeAddress struct {
		AddressLine1 string `json:"address_line_1"`
		AddressLine2 string `json:"address_line_2"`
		Locality     string `json:"locality"`
		PostalCode   string `json:"postal_code"`
	} `json:"registered_office_address"`

	Accounts struct {
		NextDue string `json:"next_due"`
	} `json:"accounts"`

	ConfirmationStatement struct {
		NextDue string `json:"next_due"`
	} `json:"confirmation_statement"`
}

// Profile fetches the public profile for a company number
func (c *Client) Profile(ctx context.Context, companyNumber string) (*appclient.CompanyProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/company/"+companyNumber, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.apiKey, "")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("companies house request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, appclient.ErrCompanyNotFound
	case http.StatusTooManyRequests:
		return nil, fmt.Errorf("companies house rate limit exceeded")
	case http.StatusUnauthorized:
		return nil, fmt.Errorf("companies house rejected the api key")
	default:
		return nil, fmt.Errorf("companies house returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read profile response: %w", err)
	}

	var parsed companyProfileResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode profile response: %w", err)
	}

	return &appclient.CompanyProfile{
		CompanyNumber:          parsed.CompanyNumber,
		CompanyName:            parsed.CompanyName,
		CompanyStatus:          parsed.CompanyStatus,
		CompanyType:            parsed.Type,
		DateOfCreation:         parsed.DateOfCreation,
		RegisteredAddressLine1: parsed.RegisteredOfficeAddress.AddressLine1,
		RegisteredAddressLine2: parsed.RegisteredOfficeAddress.AddressLine2,
		RegisteredCity:         parsed.RegisteredOfficeAddress.Locality,
		RegisteredPostcode:     parsed.RegisteredOfficeAddress.PostalCode,
		SICCodes:               parsed.SICCodes,
		AccountsNextDue:        parsed.Accounts.NextDue,
		ConfirmationNextDue:    parsed.ConfirmationStatement.NextDue,
	}, nil
}
