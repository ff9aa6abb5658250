// Package clipboard copies the composed order text to the system clipboard,
// best effort. A capability-checked primary path (an external clipboard
// command) is tried first; when it fails or is unavailable, an OSC 52
// terminal escape sequence stands in for the browser widget's hidden
// selection fallback.
package clipboard

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sony/gobreaker/v2"
)

// Writer is one way of putting text on the clipboard.
type Writer interface {
	// Available reports whether this path can be attempted at all.
	Available() bool
	WriteText(ctx context.Context, text string) error
}

// Error marks a copy failure. Callers treat it as non-fatal.
type Error struct {
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("clipboard copy failed: %v", e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Bridge tries the primary writer, then the fallback. The primary sits
// behind a circuit breaker so that a clipboard command which keeps failing
// stops being retried on every checkout.
type Bridge struct {
	primary  Writer
	fallback Writer
	cb       *gobreaker.CircuitBreaker[struct{}]
}

func NewBridge(primary, fallback Writer) *Bridge {
	cb := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        "clipboard-primary",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})
	return &Bridge{primary: primary, fallback: fallback, cb: cb}
}

// Copy writes text through the first path that works. The returned error is
// always a *Error; the pipeline degrades its prompt on it instead of
// aborting.
func (b *Bridge) Copy(ctx context.Context, text string) error {
	var primaryErr error
	if b.primary != nil && b.primary.Available() {
		_, primaryErr = b.cb.Execute(func() (struct{}, error) {
			return struct{}{}, b.primary.WriteText(ctx, text)
		})
		if primaryErr == nil {
			return nil
		}
		log.Printf("clipboard primary path failed: %v", primaryErr)
	}

	if b.fallback != nil && b.fallback.Available() {
		err := b.fallback.WriteText(ctx, text)
		if err == nil {
			return nil
		}
		log.Printf("clipboard fallback path failed: %v", err)
		return &Error{Err: err}
	}

	if primaryErr != nil {
		return &Error{Err: primaryErr}
	}
	return &Error{Err: fmt.Errorf("no clipboard path available")}
}
