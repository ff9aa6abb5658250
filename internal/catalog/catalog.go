// Package catalog holds the static storefront products. It is data the
// cart consumes, not cart logic.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/sakkelaaksonen/fab/internal/domain"
)

//go:embed products.json
var productsJSON []byte

var (
	once     sync.Once
	products []domain.LineItem
	loadErr  error
)

// Products returns the catalog in display order. Items without a price are
// informational and checkout renders them as N/A.
func Products() ([]domain.LineItem, error) {
	once.Do(func() {
		if err := json.Unmarshal(productsJSON, &products); err != nil {
			loadErr = fmt.Errorf("parse embedded catalog: %w", err)
		}
	})
	if loadErr != nil {
		return nil, loadErr
	}
	return append([]domain.LineItem(nil), products...), nil
}

// Find looks a product up by ID.
func Find(id string) (domain.LineItem, bool) {
	all, err := Products()
	if err != nil {
		return domain.LineItem{}, false
	}
	for _, p := range all {
		if p.ID == id {
			return p, true
		}
	}
	return domain.LineItem{}, false
}
