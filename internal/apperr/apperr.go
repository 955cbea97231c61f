package apperr

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services and handlers. Handlers map
// these to HTTP status codes; repositories translate driver errors
// (e.g. pgx.ErrNoRows) into them at the boundary.
var (
	ErrNotFound         = errors.New("resource not found")
	ErrForbidden        = errors.New("forbidden")
	ErrInvalidReference = errors.New("no recognizable video reference in URL")
	ErrExtractionFailed = errors.New("video metadata extraction failed")
)

// ValidationError carries a user-facing message for malformed input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
