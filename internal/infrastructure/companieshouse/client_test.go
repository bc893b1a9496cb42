package companieshouse

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appclient "github.com/practiq/backend/internal/application/client"
	"github.com/practiq/backend/internal/infrastructure/config"
)

func newTestClient(serverURL string) *Client {
	return NewClient(config.CompaniesHouseConfig{
		BaseURL: serverURL,
		APIKey:  "ch-test-key",
		Timeout: 5 * time.Second,
	})
}

func TestClient_Profile(t *testing.T) {
	ctx := context.Background()

	t.Run("maps the profile fields", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/company/01234567", r.URL.Path)
			user, pass, ok := r.BasicAuth()
			require.True(t, ok)
			assert.Equal(t, "ch-test-key", user)
			assert.Empty(t, pass)

			json.NewEncoder(w).Encode(map[string]any{
				"company_name":     "ACME TRADING LIMITED",
				"company_number":   "01234567",
				"company_status":   "active",
				"type":             "ltd",
				"date_of_creation": "2009-03-12",
				"sic_codes":        []string{"62020"},
				"registered_office_address": map[string]string{
					"address_line_1": "1 King Street",
					"address_line_2": "Floor 2",
					"locality":       "Leeds",
					"postal_code":    "LS1 2HA",
				},
				"accounts":               map[string]string{"next_due": "2026-12-31"},
				"confirmation_statement": map[string]string{"next_due": "2026-03-26"},
			})
		}))
		defer server.Close()

		profile, err := newTestClient(server.URL).Profile(ctx, "01234567")
		require.NoError(t, err)
		assert.Equal(t, "ACME TRADING LIMITED", profile.CompanyName)
		assert.Equal(t, "01234567", profile.CompanyNumber)
		assert.Equal(t, "active", profile.CompanyStatus)
		assert.Equal(t, "ltd", profile.CompanyType)
		assert.Equal(t, "1 King Street", profile.RegisteredAddressLine1)
		assert.Equal(t, "Leeds", profile.RegisteredCity)
		assert.Equal(t, "LS1 2HA", profile.RegisteredPostcode)
		assert.Equal(t, []string{"62020"}, profile.SICCodes)
		assert.Equal(t, "2026-12-31", profile.AccountsNextDue)
		assert.Equal(t, "2026-03-26", profile.ConfirmationNextDue)
	})

	t.Run("maps 404 to the not-found sentinel", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).Profile(ctx, "99999999")
		assert.ErrorIs(t, err, appclient.ErrCompanyNotFound)
	})

	t.Run("reports rate limiting", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).Profile(ctx, "01234567")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rate limit")
	})

	t.Run("reports a rejected key", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).Profile(ctx, "01234567")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "api key")
	})
}
