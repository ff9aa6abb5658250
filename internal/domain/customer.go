package domain

// Address holds the shipping address collected on the checkout form.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	Postal  string `json:"postal"`
	Country string `json:"country"`
}

// CustomerInfo is the checkout form payload. All string fields must be
// non-empty after sanitization and AcceptedTOS must be true before an order
// may be composed.
type CustomerInfo struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Address     Address `json:"address"`
	AcceptedTOS bool    `json:"acceptedTos"`
}
