package persistence

import (
	"strings"
)

// ValidateSortOrder normalizes the sort direction to ASC or DESC,
// defaulting to ASC
func ValidateSortOrder(orderDir string) string {
	if strings.ToUpper(strings.TrimSpace(orderDir)) == "DESC" {
		return "DESC"
	}
	return "ASC"
}

// ValidateSortField checks the sort field against a whitelist, returning
// the default when the input is empty or not allowed. Sort fields end up
// concatenated into ORDER BY clauses, so nothing outside the whitelist
// may pass.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" || !allowedFields[trimmed] {
		return defaultField
	}
	return trimmed
}

// ClientSortFields contains allowed sort fields for clients
var ClientSortFields = map[string]bool{
	"ref":            true,
	"name":           true,
	"type":           true,
	"status":         true,
	"portfolio_code": true,
	"company_number": true,
	"created_at":     true,
	"updated_at":     true,
}

// EngagementSortFields contains allowed sort fields for engagements
var EngagementSortFields = map[string]bool{
	"id":          true,
	"client_ref":  true,
	"status":      true,
	"frequency":   true,
	"fee":         true,
	"start_date":  true,
	"next_due_at": true,
	"created_at":  true,
	"updated_at":  true,
}

// FilingSortFields contains allowed sort fields for filings
var FilingSortFields = map[string]bool{
	"id":         true,
	"client_ref": true,
	"type":       true,
	"status":     true,
	"period_end": true,
	"due_date":   true,
	"filed_at":   true,
	"created_at": true,
	"updated_at": true,
}
