package handler

import (
	"errors"
	"maps"
	"net/http"
	"slices"
	"strings"
)

var (
	// ErrNilResponse indicates a handler returned nil instead of a Response.
	ErrNilResponse = errors.New("handler returned nil response")
)

// HTTPError carries a status code and a stable machine-readable key.
type HTTPError struct {
	Code int
	Key  string
}

func (e HTTPError) Error() string {
	return e.Key
}

// NewHTTPError builds an HTTPError. An empty key defaults to the snake-cased status text.
func NewHTTPError(code int, key string) HTTPError {
	if key == "" {
		key = strings.ReplaceAll(strings.ToLower(http.StatusText(code)), " ", "_")
	}
	return HTTPError{Code: code, Key: key}
}

var (
	ErrBadRequest          = NewHTTPError(http.StatusBadRequest, "bad_request")
	ErrNotFound            = NewHTTPError(http.StatusNotFound, "not_found")
	ErrConflict            = NewHTTPError(http.StatusConflict, "conflict")
	ErrRequestTooLarge     = NewHTTPError(http.StatusRequestEntityTooLarge, "request_too_large")
	ErrUnsupportedMedia    = NewHTTPError(http.StatusUnsupportedMediaType, "unsupported_media_type")
	ErrTooManyRequests     = NewHTTPError(http.StatusTooManyRequests, "too_many_requests")
	ErrInternal            = NewHTTPError(http.StatusInternalServerError, "internal_error")
	ErrBadGateway          = NewHTTPError(http.StatusBadGateway, "bad_gateway")
	ErrServiceUnavailable  = NewHTTPError(http.StatusServiceUnavailable, "service_unavailable")
	ErrUnprocessableEntity = NewHTTPError(http.StatusUnprocessableEntity, "validation_error")
)

// ValidationError maps field names to their (already localized) messages.
type ValidationError map[string][]string

func (v ValidationError) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(v))
	for _, field := range slices.Sorted(maps.Keys(v)) {
		parts = append(parts, field+": "+strings.Join(v[field], ", "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add appends a message for field.
func (v ValidationError) Add(field, message string) {
	v[field] = append(v[field], message)
}
