package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/cloo-solutions/lexsearch/internal/domain"
	"github.com/cloo-solutions/lexsearch/internal/logger"
	"github.com/cloo-solutions/lexsearch/internal/telemetry"
	"go.uber.org/zap"
)

// Error codes rendered in the "error" field of error responses.
const (
	CodeValidation      = "validation_error"
	CodeBadRequest      = "bad_request"
	CodeNotFound        = "not_found"
	CodeConflict        = "already_exists"
	CodeUnauthorized    = "unauthorized"
	CodeTooLarge        = "request_too_large"
	CodeInternal        = "internal_error"
	CodeUnavailable     = "service_unavailable"
	internalFailureText = "An internal error occurred"
)

// ErrorResponse represents an error API response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// JSON writes a JSON response with the given status code
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// Error writes an error JSON response
func Error(w http.ResponseWriter, status int, code, message string) {
	JSON(w, status, ErrorResponse{Error: code, Message: message})
}

// DomainErrorToHTTP maps domain errors to HTTP status codes
func DomainErrorToHTTP(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var domainErr *domain.DomainError
	if !errors.As(err, &domainErr) {
		return http.StatusInternalServerError
	}

	switch domainErr.Code {
	case domain.ErrCodeValidation:
		return http.StatusBadRequest
	case domain.ErrCodeNotFound:
		return http.StatusNotFound
	case domain.ErrCodeAlreadyExists:
		return http.StatusConflict
	case domain.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// HandleError writes the response for err. Domain errors below 500 expose
// their message; everything else is logged, reported, and answered with a
// generic message.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	status := DomainErrorToHTTP(err)
	if status < http.StatusInternalServerError {
		var domainErr *domain.DomainError
		errors.As(err, &domainErr)
		Error(w, status, strings.ToLower(domainErr.Code), domainErr.Message)
		return
	}

	logger.FromContext(r.Context()).Error("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	telemetry.CaptureError(r.Context(), err)
	Error(w, status, CodeInternal, internalFailureText)
}
