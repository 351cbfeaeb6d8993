package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrCartEmpty is returned when a checkout step needs items in the cart.
	ErrCartEmpty = errors.New("cart is empty")
	// ErrAddressRequired is returned when payment is attempted without a saved address.
	ErrAddressRequired = errors.New("delivery address required")
	// ErrCheckoutInProgress is returned when a payment is already pending for the session.
	ErrCheckoutInProgress = errors.New("payment already in progress")
	// ErrUnsupportedVersion marks persisted state written by an unknown schema version.
	ErrUnsupportedVersion = errors.New("unsupported state version")
)

// ValidationError carries per-field messages for form input.
type ValidationError struct {
	Op     string
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) == 1 {
		if e.Op != "" {
			return fmt.Sprintf("%s: %s: %s", e.Op, names[0], e.Fields[names[0]])
		}
		return fmt.Sprintf("%s: %s", names[0], e.Fields[names[0]])
	}
	msg := fmt.Sprintf("validation failed for %s", strings.Join(names, ", "))
	if e.Op != "" {
		return e.Op + ": " + msg
	}
	return msg
}

// NewValidationError creates a validation error for a single field.
func NewValidationError(op, field, message string) error {
	return &ValidationError{Op: op, Fields: map[string]string{field: message}}
}

// ValidationFields returns the field messages when err is a ValidationError.
func ValidationFields(err error) map[string]string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}
