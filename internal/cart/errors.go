package cart

import "errors"

var (
	ErrEmptyCart          = errors.New("cart is empty, nothing to checkout")
	ErrFormIncomplete     = errors.New("checkout form is incomplete")
	ErrSubmissionInFlight = errors.New("a checkout submission is already in flight")
)
