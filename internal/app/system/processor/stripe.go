package processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
	"github.com/stripe/stripe-go/v78/webhook"
)

// SignatureHeader is the request header carrying the Stripe webhook
// signature.
const SignatureHeader = "Stripe-Signature"

const (
	eventIntentSucceeded = "payment_intent.succeeded"
	eventIntentFailed    = "payment_intent.payment_failed"
	eventIntentCanceled  = "payment_intent.canceled"
)

// Stripe implements Processor with Stripe PaymentIntents.
type Stripe struct {
	api           *client.API
	webhookSecret string
}

// NewStripe returns a Stripe processor. backends may be nil to use the
// default Stripe endpoints.
func NewStripe(secretKey, webhookSecret string, backends *stripe.Backends) *Stripe {
	return &Stripe{
		api:           client.New(secretKey, backends),
		webhookSecret: webhookSecret,
	}
}

// CreateIntent creates a PaymentIntent with automatic payment methods.
func (s *Stripe) CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.Amount),
		Currency: stripe.String(req.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}

	pi, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe create payment intent: %w", err)
	}
	return &Intent{Ref: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

// Lookup fetches the PaymentIntent and maps its status onto an Outcome.
func (s *Stripe) Lookup(ctx context.Context, ref string) (Outcome, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	pi, err := s.api.PaymentIntents.Get(ref, params)
	if err != nil {
		var serr *stripe.Error
		if errors.As(err, &serr) && serr.Code == stripe.ErrorCodeResourceMissing {
			return "", ErrUnknownIntent
		}
		return "", fmt.Errorf("stripe get payment intent: %w", err)
	}
	return intentOutcome(pi), nil
}

func intentOutcome(pi *stripe.PaymentIntent) Outcome {
	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded:
		return OutcomeSucceeded
	case stripe.PaymentIntentStatusCanceled:
		return OutcomeFailed
	case stripe.PaymentIntentStatusRequiresPaymentMethod:
		if pi.LastPaymentError != nil {
			return OutcomeFailed
		}
	}
	return OutcomePending
}

// ParseWebhook verifies the Stripe-Signature header and extracts the
// PaymentIntent outcome.
func (s *Stripe) ParseWebhook(payload []byte, signature string) (*Notification, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, s.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	var outcome Outcome
	switch string(event.Type) {
	case eventIntentSucceeded:
		outcome = OutcomeSucceeded
	case eventIntentFailed, eventIntentCanceled:
		outcome = OutcomeFailed
	default:
		return nil, nil
	}

	if event.Data == nil {
		return nil, fmt.Errorf("stripe event %s has no data", event.ID)
	}
	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return nil, fmt.Errorf("decode payment intent: %w", err)
	}
	if pi.ID == "" {
		return nil, fmt.Errorf("stripe event %s has no payment intent id", event.ID)
	}
	return &Notification{EventID: event.ID, Ref: pi.ID, Outcome: outcome}, nil
}
