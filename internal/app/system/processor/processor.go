// Package processor is the boundary to the external payment processor. The
// ledger creates intents through it and receives outcomes from it, either by
// polling a reference or by parsing a signed webhook delivery.
package processor

import (
	"context"
	"errors"
)

// Outcome is the settlement state reported by the processor.
type Outcome string

const (
	OutcomePending   Outcome = "pending"
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
)

// ErrInvalidSignature is returned when a webhook payload fails signature
// verification.
var ErrInvalidSignature = errors.New("processor: invalid webhook signature")

// ErrUnknownIntent is returned by Lookup when the processor has no intent
// with the given reference.
var ErrUnknownIntent = errors.New("processor: unknown intent")

// IntentRequest describes a payment the user is about to make. Amount is in
// minor units of Currency.
type IntentRequest struct {
	Amount         int64
	Currency       string
	IdempotencyKey string
	Metadata       map[string]string
}

// Intent is the processor's handle for a created payment.
type Intent struct {
	Ref          string
	ClientSecret string
}

// Notification is one asynchronous outcome delivered by the processor.
type Notification struct {
	EventID string
	Ref     string
	Outcome Outcome
}

// Processor creates payment intents and reports their outcome.
type Processor interface {
	CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error)
	Lookup(ctx context.Context, ref string) (Outcome, error)
	// ParseWebhook verifies and decodes a push delivery. It returns a nil
	// Notification for event types that carry no payment outcome.
	ParseWebhook(payload []byte, signature string) (*Notification, error)
}
