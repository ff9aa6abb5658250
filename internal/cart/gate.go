package cart

import (
	"strings"
	"sync"

	"github.com/sakkelaaksonen/fab/internal/domain"
	"github.com/sakkelaaksonen/fab/internal/sanitize"
)

// SubmitState gates the checkout control.
type SubmitState string

const (
	StateAddressIncomplete SubmitState = "ADDRESS_INCOMPLETE"
	StateEmptyCart         SubmitState = "EMPTY_CART"
	StateReady             SubmitState = "READY"
	StateSubmitting        SubmitState = "SUBMITTING"
)

// String representation (for logging)
func (s SubmitState) String() string {
	return string(s)
}

// FieldStatus drives per-field error styling.
type FieldStatus int

const (
	// FieldNeutral shows no styling: the field is empty and the user has
	// not tried to submit yet.
	FieldNeutral FieldStatus = iota
	FieldValid
	FieldInvalid
)

// Checkout form field names.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldStreet  = "street"
	FieldCity    = "city"
	FieldPostal  = "postal"
	FieldCountry = "country"
)

var requiredFields = []string{FieldName, FieldEmail, FieldStreet, FieldCity, FieldPostal, FieldCountry}

// Gate tracks the checkout form draft and decides when the submit control
// may fire. It is created fresh at startup and reset after every resolved
// checkout.
type Gate struct {
	mu          sync.Mutex
	values      map[string]string
	touched     map[string]bool
	acceptedTOS bool
	attempted   bool
	submitting  bool
}

func NewGate() *Gate {
	return &Gate{
		values:  make(map[string]string),
		touched: make(map[string]bool),
	}
}

// SetField records a field value and marks the field touched.
func (g *Gate) SetField(name, value string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.values[name] = value
	g.touched[name] = true
}

func (g *Gate) SetAcceptedTOS(accepted bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.acceptedTOS = accepted
}

// FieldStatus is lenient for untouched or empty fields but strict for
// filled ones: an empty required field stays neutral until a submission was
// attempted, a filled invalid field is flagged immediately.
func (g *Gate) FieldStatus(name string) FieldStatus {
	g.mu.Lock()
	defer g.mu.Unlock()

	value := g.values[name]
	if strings.TrimSpace(value) == "" {
		if g.attempted {
			return FieldInvalid
		}
		return FieldNeutral
	}
	if fieldValid(name, value) {
		return FieldValid
	}
	return FieldInvalid
}

// State derives the submit-control state from the form draft and the
// current item count.
func (g *Gate) State(itemCount int) SubmitState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state(itemCount)
}

// BeginSubmit marks a submission attempt. It fails unless the gate is
// READY, and flips to SUBMITTING on success so a second attempt cannot
// start while one is in flight.
func (g *Gate) BeginSubmit(itemCount int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.attempted = true
	switch g.state(itemCount) {
	case StateSubmitting:
		return ErrSubmissionInFlight
	case StateEmptyCart:
		return ErrEmptyCart
	case StateAddressIncomplete:
		return ErrFormIncomplete
	}
	g.submitting = true
	return nil
}

// EndSubmit returns the gate to its resting state once the pipeline
// resolved, success or failure.
func (g *Gate) EndSubmit() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.submitting = false
}

// Customer assembles the form draft into a customer record.
func (g *Gate) Customer() domain.CustomerInfo {
	g.mu.Lock()
	defer g.mu.Unlock()

	return domain.CustomerInfo{
		Name:  g.values[FieldName],
		Email: g.values[FieldEmail],
		Address: domain.Address{
			Street:  g.values[FieldStreet],
			City:    g.values[FieldCity],
			Postal:  g.values[FieldPostal],
			Country: g.values[FieldCountry],
		},
		AcceptedTOS: g.acceptedTOS,
	}
}

// Reset blanks the form after a successful or abandoned checkout.
func (g *Gate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.values = make(map[string]string)
	g.touched = make(map[string]bool)
	g.acceptedTOS = false
	g.attempted = false
	g.submitting = false
}

func (g *Gate) state(itemCount int) SubmitState {
	if g.submitting {
		return StateSubmitting
	}
	if itemCount == 0 {
		return StateEmptyCart
	}
	if !g.complete() {
		return StateAddressIncomplete
	}
	return StateReady
}

func (g *Gate) complete() bool {
	if !g.acceptedTOS {
		return false
	}
	for _, field := range requiredFields {
		if !fieldValid(field, g.values[field]) {
			return false
		}
	}
	return true
}

func fieldValid(name, value string) bool {
	if name == FieldEmail {
		_, err := sanitize.Email(value)
		return err == nil
	}
	return sanitize.String(value) != ""
}
