package services

import (
	"errors"
	"net/http"
)

// Error kinds surfaced by the service layer. Handlers translate them into
// structured 4xx responses with a "detail" field; none are retried.
var (
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidState        = errors.New("invalid order state")
	ErrInsufficientBalance = errors.New("you don't have enough money")
)

// ValidationError reports malformed, missing or out-of-range input,
// including incompatible form fields.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string {
	return e.Detail
}

// NewValidationError creates a validation error with the given detail
func NewValidationError(detail string) error {
	return &ValidationError{Detail: detail}
}

// HTTPStatus maps a service error to its response status code
func HTTPStatus(err error) int {
	var ve *ValidationError
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalidState),
		errors.Is(err, ErrInsufficientBalance),
		errors.As(err, &ve):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
