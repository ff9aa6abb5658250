// Package sanitize cleans and validates free-text input before it enters
// the order pipeline. Every function is idempotent: sanitizing an already
// sanitized value yields the same value.
package sanitize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sakkelaaksonen/fab/internal/domain"
)

// Error reports an invalid or missing field, tagged with the field name.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

var (
	tagPattern     = regexp.MustCompile(`<[^>]*>`)
	schemePattern  = regexp.MustCompile(`(?i)javascript\s*:`)
	handlerPattern = regexp.MustCompile(`(?i)\bon\w+\s*=`)
	emailPattern   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// String strips HTML-tag-like substrings, javascript: scheme fragments and
// inline event-handler attributes, then trims surrounding whitespace.
// Stripping runs to a fixed point so that removals cannot splice a new
// dangerous substring together.
func String(value string) string {
	s := value
	for {
		next := tagPattern.ReplaceAllString(s, "")
		next = schemePattern.ReplaceAllString(next, "")
		next = handlerPattern.ReplaceAllString(next, "")
		if next == s {
			break
		}
		s = next
	}
	return strings.TrimSpace(s)
}

// Email sanitizes, lowercases and validates an email address. The domain
// part must contain at least one dot and the whole address no whitespace.
func Email(value string) (string, error) {
	s := strings.ToLower(String(value))
	if s == "" {
		return "", &Error{Field: "email", Reason: "required"}
	}
	if !emailPattern.MatchString(s) {
		return "", &Error{Field: "email", Reason: "not a valid address"}
	}
	return s, nil
}

// Required sanitizes a free-text field and rejects it if nothing remains.
func Required(value, field string) (string, error) {
	s := String(value)
	if s == "" {
		return "", &Error{Field: field, Reason: "required"}
	}
	return s, nil
}

// Product normalizes a product record into a well-formed line item: ID,
// name and image must survive sanitization, a non-positive price collapses
// to "no price" and a missing quantity defaults to 1.
func Product(p domain.LineItem) (domain.LineItem, error) {
	id, err := Required(p.ID, "id")
	if err != nil {
		return domain.LineItem{}, err
	}
	name, err := Required(p.Name, "name")
	if err != nil {
		return domain.LineItem{}, err
	}
	image, err := Required(p.Image, "image")
	if err != nil {
		return domain.LineItem{}, err
	}

	clean := domain.LineItem{
		ID:       id,
		Name:     name,
		Quantity: p.Quantity,
		Image:    image,
	}
	if p.Price != nil && *p.Price > 0 {
		price := *p.Price
		clean.Price = &price
	}
	if clean.Quantity < 1 {
		clean.Quantity = 1
	}
	return clean, nil
}

// Customer validates and normalizes the checkout form payload. Terms of
// service must have been explicitly accepted.
func Customer(c domain.CustomerInfo) (domain.CustomerInfo, error) {
	name, err := Required(c.Name, "name")
	if err != nil {
		return domain.CustomerInfo{}, err
	}
	email, err := Email(c.Email)
	if err != nil {
		return domain.CustomerInfo{}, err
	}
	if !c.AcceptedTOS {
		return domain.CustomerInfo{}, &Error{Field: "acceptedTos", Reason: "terms of service not accepted"}
	}

	street, err := Required(c.Address.Street, "street")
	if err != nil {
		return domain.CustomerInfo{}, err
	}
	city, err := Required(c.Address.City, "city")
	if err != nil {
		return domain.CustomerInfo{}, err
	}
	postal, err := Required(c.Address.Postal, "postal")
	if err != nil {
		return domain.CustomerInfo{}, err
	}
	country, err := Required(c.Address.Country, "country")
	if err != nil {
		return domain.CustomerInfo{}, err
	}

	return domain.CustomerInfo{
		Name:  name,
		Email: email,
		Address: domain.Address{
			Street:  street,
			City:    city,
			Postal:  postal,
			Country: country,
		},
		AcceptedTOS: true,
	}, nil
}

// Order applies the item and customer rules to a composed order, returning
// a normalized deep copy. Total, number and timestamp pass through
// untouched; their structural checks belong to order validation.
func Order(o domain.Order) (domain.Order, error) {
	clean := o
	clean.Items = make([]domain.LineItem, 0, len(o.Items))
	for _, item := range o.Items {
		cleanItem, err := Product(item)
		if err != nil {
			return domain.Order{}, err
		}
		clean.Items = append(clean.Items, cleanItem)
	}

	customer, err := Customer(o.Customer)
	if err != nil {
		return domain.Order{}, err
	}
	clean.Customer = customer
	return clean, nil
}
