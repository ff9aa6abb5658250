package mail

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sakkelaaksonen/fab/internal/domain"
)

// Message is the composed email: clipboard payload and mail body alike.
type Message struct {
	Subject string
	Body    string
}

// noPrice is rendered wherever an item carries no price.
const noPrice = "N/A"

// FormatOrder renders an order as plain text. The layout is fixed: header,
// customer, shipping address, numbered item listing, order total, order
// date.
func FormatOrder(o domain.Order) Message {
	var b strings.Builder

	fmt.Fprintf(&b, "New order %s\n\n", o.Number)

	fmt.Fprintf(&b, "Customer:\n  %s\n  %s\n\n", o.Customer.Name, o.Customer.Email)

	addr := o.Customer.Address
	fmt.Fprintf(&b, "Ship to:\n  %s\n  %s %s\n  %s\n\n", addr.Street, addr.Postal, addr.City, addr.Country)

	b.WriteString("Items:\n")
	for i, item := range o.Items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item.Name)
		fmt.Fprintf(&b, "   Quantity: %d\n", item.Quantity)
		fmt.Fprintf(&b, "   Unit price: %s\n", FormatPrice(item.Price))
		fmt.Fprintf(&b, "   Line total: %s\n", formatLineTotal(item))
	}

	fmt.Fprintf(&b, "\nOrder total: %s\n", FormatAmount(o.Total))
	fmt.Fprintf(&b, "Order date: %s\n", o.CreatedAt.Format("2 January 2006 15:04"))

	return Message{
		Subject: "New Order from " + o.Customer.Name,
		Body:    b.String(),
	}
}

// FormatAmount renders a euro amount with exactly two decimals.
func FormatAmount(amount float64) string {
	return "€" + decimal.NewFromFloat(amount).StringFixed(2)
}

// FormatPrice renders an optional unit price, or the N/A sentinel.
func FormatPrice(price *float64) string {
	if price == nil {
		return noPrice
	}
	return FormatAmount(*price)
}

func formatLineTotal(item domain.LineItem) string {
	if item.Price == nil {
		return noPrice
	}
	total := decimal.NewFromFloat(*item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
	return "€" + total.StringFixed(2)
}
