// Package mail turns a validated order into the email handed off to the
// customer's mail client.
package mail

import (
	"fmt"

	"github.com/sakkelaaksonen/fab/internal/domain"
)

// ValidationError reports a structurally incomplete order. It is a
// different gate than sanitization: shape, not content.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid order: %s", e.Reason)
}

// ValidateOrder checks the structural integrity of a composed order before
// formatting: items present, customer present, non-negative total and a
// timestamp.
func ValidateOrder(o domain.Order) error {
	if len(o.Items) == 0 {
		return &ValidationError{Reason: "no items"}
	}
	if o.Customer.Name == "" && o.Customer.Email == "" {
		return &ValidationError{Reason: "no customer"}
	}
	if o.Total < 0 {
		return &ValidationError{Reason: "negative total"}
	}
	if o.CreatedAt.IsZero() {
		return &ValidationError{Reason: "no timestamp"}
	}
	return nil
}
