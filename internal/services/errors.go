package services

import (
	"errors"
	"fmt"
)

// Closed set of business failures. Handlers branch on these with
// errors.Is/As instead of matching message strings.
var (
	ErrNotFound           = errors.New("record not found")
	ErrConflict           = errors.New("duplicate record")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrLastAdmin guards the invariant that at least one enabled
	// admin-role user must remain.
	ErrLastAdmin = errors.New("cannot remove the last remaining admin")
)

// ValidationError marks input the caller can fix; it maps to a 400 at the
// handler boundary with Reason as the message.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func invalidf(format string, args ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}
