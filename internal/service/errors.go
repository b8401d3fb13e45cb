package service

import (
	"errors"

	"github.com/Baaaki/portfolio/internal/repository"
)

var (
	ErrUsernameAlreadyExists = repository.ErrDuplicateUsername
	ErrProjectNotFound       = repository.ErrProjectNotFound
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrUnauthenticated       = errors.New("authentication required")
	ErrInvalidToken          = errors.New("invalid or expired token")
	ErrForbidden             = errors.New("admin access required")
)

// ValidationError is returned for missing or malformed input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError reports whether err (or anything it wraps) is a
// *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
