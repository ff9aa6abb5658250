// Package store provides the key-value persistence collaborator the cart
// snapshots itself through. Values are opaque strings.
package store

import (
	"context"
	"errors"
)

// Store is implemented by every snapshot backend.
// Consumers define this interface, not the backends.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

var ErrNotFound = errors.New("key not found")
