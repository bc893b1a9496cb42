package dto

import (
	"net/http"
	"strings"
)

// Error codes used by handlers for failures that never reach a service
const (
	CodeBadRequest   = "BAD_REQUEST"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeInternal     = "INTERNAL_ERROR"
)

// errorCodeStatus maps domain error codes to HTTP statuses. Codes the
// map does not name fall back to suffix rules and finally to 422, since
// an unmapped domain error is a business rule rejection, not a crash.
var errorCodeStatus = map[string]int{
	CodeBadRequest:   http.StatusBadRequest,
	CodeUnauthorized: http.StatusUnauthorized,
	CodeForbidden:    http.StatusForbidden,
	CodeNotFound:     http.StatusNotFound,
	CodeInternal:     http.StatusInternalServerError,

	"VALIDATION_ERROR":       http.StatusBadRequest,
	"INVALID_INPUT":          http.StatusBadRequest,
	"INVALID_COMPANY_NUMBER": http.StatusBadRequest,

	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_INVALID":       http.StatusUnauthorized,
	"TOKEN_REVOKED":       http.StatusUnauthorized,
	"TOKEN_MAX_REFRESH":   http.StatusUnauthorized,

	"ACCOUNT_DEACTIVATED": http.StatusForbidden,
	"ACCOUNT_LOCKED":      http.StatusLocked,

	"ALREADY_EXISTS":      http.StatusConflict,
	"USERNAME_TAKEN":      http.StatusConflict,
	"ALLOCATION_CONFLICT": http.StatusConflict,

	"ALLOCATION_EXHAUSTED": http.StatusUnprocessableEntity,

	"REGISTRY_UNAVAILABLE":  http.StatusBadGateway,
	"ASSISTANT_UNAVAILABLE": http.StatusBadGateway,
}

// HTTPStatus resolves the status for a domain error code
func HTTPStatus(code string) int {
	if status, ok := errorCodeStatus[code]; ok {
		return status
	}
	if strings.HasSuffix(code, "_NOT_FOUND") {
		return http.StatusNotFound
	}
	return http.StatusUnprocessableEntity
}
