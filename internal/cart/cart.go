// Package cart owns the mutable line-item list, its derived totals, the
// persistence round-trip and checkout initiation.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sakkelaaksonen/fab/internal/dispatch"
	"github.com/sakkelaaksonen/fab/internal/domain"
	"github.com/sakkelaaksonen/fab/internal/sanitize"
	"github.com/sakkelaaksonen/fab/internal/store"
)

// storageKey is the single store entry holding the JSON item-list snapshot.
const storageKey = "fab.cart"

// Renderer projects cart state onto whatever surface presents it.
// Consumers define this interface, not the presentation layer.
type Renderer interface {
	Render(s State)
}

// Submitter runs the order submission pipeline.
type Submitter interface {
	Submit(ctx context.Context, order domain.Order) (*dispatch.Result, error)
}

// State is the snapshot handed to the renderer after every mutation.
type State struct {
	Items []domain.LineItem
	Count int
	Total float64
}

// Cart is the aggregate root. All mutations persist and re-render before
// returning.
type Cart struct {
	mu        sync.Mutex
	store     store.Store
	renderer  Renderer
	submitter Submitter
	items     []domain.LineItem
}

func New(st store.Store, renderer Renderer, submitter Submitter) *Cart {
	return &Cart{store: st, renderer: renderer, submitter: submitter}
}

// Restore loads the persisted snapshot. A missing, unparsable or otherwise
// malformed snapshot starts an empty cart; it is never partially applied
// and never surfaces an error.
func (c *Cart) Restore(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, err := c.store.Get(ctx, storageKey)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("cart snapshot read failed, starting empty: %v", err)
		}
		return
	}

	var snapshot []domain.LineItem
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		log.Printf("discarding malformed cart snapshot: %v", err)
		return
	}

	restored := make([]domain.LineItem, 0, len(snapshot))
	seen := make(map[string]bool, len(snapshot))
	for _, item := range snapshot {
		clean, err := sanitize.Product(item)
		if err != nil || item.Quantity < 1 || seen[clean.ID] {
			log.Printf("discarding malformed cart snapshot: bad entry %q", item.ID)
			return
		}
		seen[clean.ID] = true
		restored = append(restored, clean)
	}

	c.items = restored
	c.render()
}

// AddItem adds one unit of a product, merging into an existing line item
// with the same ID. Malformed input is logged and ignored; the cart never
// mutates on it.
func (c *Cart) AddItem(ctx context.Context, product domain.LineItem) {
	clean, err := sanitize.Product(product)
	if err != nil {
		log.Printf("add to cart ignored: %v", err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.index(clean.ID); i >= 0 {
		c.items[i].Quantity++
	} else {
		// adding a product always adds exactly one unit, whatever
		// quantity the input carried
		clean.Quantity = 1
		c.items = append(c.items, clean)
	}
	c.afterMutation(ctx)
}

// RemoveItem deletes the item with the given ID. Absent IDs are a no-op.
func (c *Cart) RemoveItem(ctx context.Context, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.index(id); i >= 0 {
		c.items = append(c.items[:i], c.items[i+1:]...)
	}
	c.afterMutation(ctx)
}

// UpdateQuantity applies a delta against the caller-supplied current
// quantity. A result of zero or less removes the item entirely. The caller
// owns the accuracy of current; a stale value produces a stale result.
func (c *Cart) UpdateQuantity(ctx context.Context, id string, current, delta int) {
	newQuantity := current + delta

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.index(id)
	if i < 0 {
		return
	}
	if newQuantity <= 0 {
		c.items = append(c.items[:i], c.items[i+1:]...)
	} else {
		c.items[i].Quantity = newQuantity
	}
	c.afterMutation(ctx)
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	c.afterMutation(ctx)
}

// Items returns a copy of the line items in display order.
func (c *Cart) Items() []domain.LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.LineItem(nil), c.items...)
}

// Count is the sum of all quantities.
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return countOf(c.items)
}

// Total sums price times quantity over priced items.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return totalOf(c.items)
}

// State snapshots items and derived totals for rendering.
func (c *Cart) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state()
}

// Checkout composes an order from the current items and the sanitized
// customer info and hands it to the submitter. On success the cart clears;
// on failure cart state is left untouched.
func (c *Cart) Checkout(ctx context.Context, customer domain.CustomerInfo) (*dispatch.Result, error) {
	clean, err := sanitize.Customer(customer)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if len(c.items) == 0 {
		c.mu.Unlock()
		return nil, ErrEmptyCart
	}
	order := domain.Order{
		Number:    newOrderNumber(),
		Items:     append([]domain.LineItem(nil), c.items...),
		Customer:  clean,
		Total:     totalOf(c.items),
		CreatedAt: time.Now(),
	}
	c.mu.Unlock()

	// The pipeline blocks on user interaction; the cart stays usable in
	// the meantime and only clears once the attempt resolved.
	result, err := c.submitter.Submit(ctx, order)
	if err != nil {
		return nil, err
	}

	c.Clear(ctx)
	return result, nil
}

func (c *Cart) index(id string) int {
	for i, item := range c.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// afterMutation persists and re-renders. Persist failures are logged, not
// propagated; the in-memory cart is the source of truth for this session.
func (c *Cart) afterMutation(ctx context.Context) {
	data, err := json.Marshal(c.items)
	if err != nil {
		log.Printf("cart snapshot marshal failed: %v", err)
	} else if err := c.store.Set(ctx, storageKey, string(data)); err != nil {
		log.Printf("cart snapshot write failed: %v", err)
	}
	c.render()
}

func (c *Cart) render() {
	if c.renderer != nil {
		c.renderer.Render(c.state())
	}
}

func (c *Cart) state() State {
	return State{
		Items: append([]domain.LineItem(nil), c.items...),
		Count: countOf(c.items),
		Total: totalOf(c.items),
	}
}

func countOf(items []domain.LineItem) int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count
}

func totalOf(items []domain.LineItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Subtotal()
	}
	return total
}

func newOrderNumber() string {
	return strings.ToUpper(uuid.NewString()[:8])
}
