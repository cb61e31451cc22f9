// store/errors.go
package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by mutating operations whose target id does not
// exist. Plain lookups return nil instead.
var ErrNotFound = errors.New("not found")

// ErrDataIntegrity signals a violated store invariant (a corrupted join),
// not a legitimate empty result.
var ErrDataIntegrity = errors.New("data integrity fault")

// ValidationError rejects malformed input at the store boundary.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
