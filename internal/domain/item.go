package domain

// LineItem is one product-and-quantity entry in the cart. Identity is ID;
// the cart never holds two entries with the same ID. A nil Price marks an
// informational, non-priced item that contributes nothing to totals — this
// is distinct from a free item priced at zero.
type LineItem struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Price    *float64 `json:"price,omitempty"`
	Quantity int      `json:"quantity"`
	Image    string   `json:"image"`
}

// Subtotal is price times quantity, or 0 when the item carries no price.
func (li LineItem) Subtotal() float64 {
	if li.Price == nil {
		return 0
	}
	return *li.Price * float64(li.Quantity)
}

// Priced reports whether the item contributes to the cart total.
func (li LineItem) Priced() bool {
	return li.Price != nil
}
