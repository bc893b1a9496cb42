package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{"NOT_FOUND", http.StatusNotFound},
		{"PORTFOLIO_NOT_FOUND", http.StatusNotFound},
		{"COMPANY_NOT_FOUND", http.StatusNotFound},
		{"ALREADY_EXISTS", http.StatusConflict},
		{"ALLOCATION_CONFLICT", http.StatusConflict},
		{"ALLOCATION_EXHAUSTED", http.StatusUnprocessableEntity},
		{"INVALID_CREDENTIALS", http.StatusUnauthorized},
		{"ACCOUNT_LOCKED", http.StatusLocked},
		{"REGISTRY_UNAVAILABLE", http.StatusBadGateway},
		{"SOME_NEW_RULE", http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.code))
		})
	}
}

func TestNewPageResponse(t *testing.T) {
	resp := NewPageResponse([]int{1, 2, 3}, 7, 2, 3)

	assert.True(t, resp.Success)
	assert.Equal(t, int64(7), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}
