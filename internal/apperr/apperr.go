package apperr

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure classes the API can surface. Handlers map
// these to HTTP status codes; anything else is an internal server error.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrUpstream        = errors.New("upstream failure")
	ErrPersistence     = errors.New("persistence failure")
)

// ValidationError is a client-correctable failure. Its message names the
// offending field and is safe to return to the caller verbatim.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func Validation(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// AsValidation unwraps err into a ValidationError if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
