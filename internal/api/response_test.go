package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cloo-solutions/lexsearch/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()

	JSON(w, http.StatusOK, map[string]string{"key": "value"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var result map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &result)
	require.NoError(t, err)
	assert.Equal(t, "value", result["key"])
}

func TestJSON_NilData(t *testing.T) {
	w := httptest.NewRecorder()

	JSON(w, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestError(t *testing.T) {
	w := httptest.NewRecorder()

	Error(w, http.StatusBadRequest, CodeValidation, "invalid input")

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var result ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "validation_error", result.Error)
	assert.Equal(t, "invalid input", result.Message)
}

func TestDomainErrorToHTTP(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil", nil, http.StatusOK},
		{"validation", domain.ErrEmptyQuery, http.StatusBadRequest},
		{"not found", domain.ErrCaseNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("loading: %w", domain.ErrCaseNotFound), http.StatusNotFound},
		{"conflict", domain.ErrCaseAlreadyExists, http.StatusConflict},
		{"unauthorized", domain.ErrInvalidAdminToken, http.StatusUnauthorized},
		{"internal", domain.NewDomainError(domain.ErrCodeInternalError, "boom"), http.StatusInternalServerError},
		{"plain error", errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DomainErrorToHTTP(tt.err))
		})
	}
}

func TestHandleError_DomainError(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/cases/x", nil)

	HandleError(w, r, domain.ErrCaseNotFound)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var result ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "not_found", result.Error)
	assert.Equal(t, "case not found", result.Message)
}

func TestHandleError_HidesInternalDetail(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/search", nil)

	HandleError(w, r, errors.New("pq: password authentication failed for user lexsearch"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
	var result ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, CodeInternal, result.Error)
}
