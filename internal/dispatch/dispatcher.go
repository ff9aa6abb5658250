// Package dispatch runs the order submission pipeline: validate, sanitize,
// format, copy to clipboard, confirm with the user, hand off a mailto URI.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/sync/singleflight"

	"github.com/sakkelaaksonen/fab/internal/domain"
	"github.com/sakkelaaksonen/fab/internal/mail"
	"github.com/sakkelaaksonen/fab/internal/sanitize"
)

// Clipboard copies the composed order text, best effort.
type Clipboard interface {
	Copy(ctx context.Context, text string) error
}

// Confirmer presents a yes/no prompt. Declining is a normal outcome, not an
// error.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// Navigator opens the mail-composition URI in the user's email client.
type Navigator interface {
	Open(ctx context.Context, uri string) error
}

var ErrIllegalTransition = errors.New("illegal transition of dispatch stage")

// Result describes how a submission attempt ended.
type Result struct {
	Stage     domain.DispatchStage
	Confirmed bool
	Copied    bool
	MailtoURI string
}

type Dispatcher struct {
	clipboard Clipboard
	confirmer Confirmer
	navigator Navigator
	recipient string
	sfg       singleflight.Group // collapses racing checkout attempts
}

func New(clipboard Clipboard, confirmer Confirmer, navigator Navigator, recipient string) *Dispatcher {
	return &Dispatcher{
		clipboard: clipboard,
		confirmer: confirmer,
		navigator: navigator,
		recipient: recipient,
	}
}

// Submit runs the pipeline for one order. A second call while an attempt is
// in flight joins that attempt and receives its result.
func (d *Dispatcher) Submit(ctx context.Context, order domain.Order) (*Result, error) {
	v, err, _ := d.sfg.Do("submit", func() (interface{}, error) {
		return d.run(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Result), nil
}

func (d *Dispatcher) run(ctx context.Context, order domain.Order) (*Result, error) {
	stage := domain.StageValidating
	advance := func(next domain.DispatchStage) error {
		if !domain.CanTransitionTo(stage, next) {
			return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, stage, next)
		}
		stage = next
		return nil
	}
	reject := func(cause error) (*Result, error) {
		stage = domain.StageRejected
		return nil, cause
	}

	if err := mail.ValidateOrder(order); err != nil {
		return reject(err)
	}

	if err := advance(domain.StageSanitizing); err != nil {
		return reject(err)
	}
	clean, err := sanitize.Order(order)
	if err != nil {
		return reject(err)
	}

	if err := advance(domain.StageFormatting); err != nil {
		return reject(err)
	}
	msg := mail.FormatOrder(clean)

	if err := advance(domain.StageCopying); err != nil {
		return reject(err)
	}
	copied := true
	if copyErr := d.clipboard.Copy(ctx, msg.Body); copyErr != nil {
		// Non-fatal: the confirmation prompt drops the clipboard claim.
		log.Printf("order %s: %v", clean.Number, copyErr)
		copied = false
	}

	if err := advance(domain.StageConfirming); err != nil {
		return reject(err)
	}
	confirmed, err := d.confirmer.Confirm(ctx, confirmPrompt(copied))
	if err != nil {
		return reject(fmt.Errorf("confirmation prompt failed: %w", err))
	}
	if !confirmed {
		if err := advance(domain.StageResolved); err != nil {
			return reject(err)
		}
		return &Result{Stage: stage, Confirmed: false, Copied: copied}, nil
	}

	if err := advance(domain.StageDispatching); err != nil {
		return reject(err)
	}
	uri := mail.MailtoURI(d.recipient, msg)
	if err := d.navigator.Open(ctx, uri); err != nil {
		return reject(fmt.Errorf("open mail client: %w", err))
	}

	if err := advance(domain.StageResolved); err != nil {
		return reject(err)
	}
	return &Result{Stage: stage, Confirmed: true, Copied: copied, MailtoURI: uri}, nil
}

func confirmPrompt(copied bool) string {
	if copied {
		return "The order email has been copied to your clipboard. Open your email app to send it now?"
	}
	return "Could not copy the order email to your clipboard. Open your email app to send it now?"
}
