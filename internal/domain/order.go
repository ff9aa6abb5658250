package domain

import "time"

// Order is the composed payload submitted at checkout. It exists only for
// the duration of the dispatch pipeline and is never persisted.
type Order struct {
	Number    string       `json:"number"`
	Items     []LineItem   `json:"items"`
	Customer  CustomerInfo `json:"customer"`
	Total     float64      `json:"total"`
	CreatedAt time.Time    `json:"createdAt"`
}
