// Package ledger records payment intents and their settlement outcome. It is
// the only source of truth for whether a user has paid for a club or event.
//
// The ledger never touches memberships or registrations. Callers activate
// those only after they have observed a completed payment here.
package ledger

import (
	"context"
	"errors"
	"time"

	paymentstore "github.com/dalemusser/clubsphere/internal/app/store/payments"
	"github.com/dalemusser/clubsphere/internal/app/system/apperr"
	"github.com/dalemusser/clubsphere/internal/app/system/processor"
	"github.com/dalemusser/clubsphere/internal/app/system/tracing"
	"github.com/dalemusser/clubsphere/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Ledger records payments against a processor.
type Ledger struct {
	payments *paymentstore.Store
	proc     processor.Processor
	currency string
	log      *zap.Logger
	tracer   trace.Tracer
	now      func() time.Time
}

// New returns a Ledger settling in currency.
func New(payments *paymentstore.Store, proc processor.Processor, currency string, logger *zap.Logger) *Ledger {
	return &Ledger{
		payments: payments,
		proc:     proc,
		currency: currency,
		log:      logger,
		tracer:   tracing.Tracer("ledger"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Currency returns the settlement currency.
func (l *Ledger) Currency() string { return l.currency }

// Intent is a recorded pending payment plus the secret the client needs to
// complete it with the processor.
type Intent struct {
	Payment      models.Payment
	ClientSecret string
}

// CreateIntent asks the processor for a payment intent and records it as
// pending. amount is in minor units and must be positive.
func (l *Ledger) CreateIntent(ctx context.Context, userEmail, typ string, targetID primitive.ObjectID, amount int64) (_ *Intent, err error) {
	ctx, span := l.tracer.Start(ctx, "ledger.create_intent", trace.WithAttributes(
		attribute.String("payment.type", typ),
		attribute.String("payment.target_id", targetID.Hex()),
		attribute.Int64("payment.amount", amount),
	))
	defer func() { tracing.End(span, err) }()

	if !models.IsValidPaymentType(typ) {
		return nil, apperr.Newf(apperr.InvalidInput, "invalid payment type %q", typ)
	}
	if amount <= 0 {
		return nil, apperr.New(apperr.InvalidAmount, "amount must be greater than zero")
	}

	intent, err := l.proc.CreateIntent(ctx, processor.IntentRequest{
		Amount:         amount,
		Currency:       l.currency,
		IdempotencyKey: uuid.NewString(),
		Metadata: map[string]string{
			"userEmail": userEmail,
			"type":      typ,
			"targetId":  targetID.Hex(),
		},
	})
	if err != nil {
		return nil, err
	}

	p, err := l.payments.Create(ctx, models.Payment{
		UserEmail:    userEmail,
		Type:         typ,
		TargetID:     targetID,
		Amount:       amount,
		Currency:     l.currency,
		ProcessorRef: intent.Ref,
		CreatedAt:    l.now(),
	})
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("payment.ref", p.ProcessorRef))
	return &Intent{Payment: p, ClientSecret: intent.ClientSecret}, nil
}

// Confirm marks the payment completed. Confirming an already completed
// payment is a no-op that returns the stored record; changed reports whether
// this call performed the transition.
func (l *Ledger) Confirm(ctx context.Context, ref string) (_ *models.Payment, changed bool, err error) {
	ctx, span := l.tracer.Start(ctx, "ledger.confirm", trace.WithAttributes(attribute.String("payment.ref", ref)))
	defer func() { tracing.End(span, err) }()

	p, err := l.payments.MarkCompleted(ctx, ref, l.now())
	if err == nil {
		return p, true, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, err
	}
	existing, err := l.get(ctx, ref)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// MarkFailed moves a pending payment to failed. Completed or already failed
// payments are returned unchanged.
func (l *Ledger) MarkFailed(ctx context.Context, ref string) (_ *models.Payment, changed bool, err error) {
	p, err := l.payments.MarkFailed(ctx, ref, l.now())
	if err == nil {
		return p, true, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, err
	}
	existing, err := l.get(ctx, ref)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (l *Ledger) get(ctx context.Context, ref string) (*models.Payment, error) {
	p, err := l.payments.GetByRef(ctx, ref)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.New(apperr.NotFound, "payment not found")
	}
	return p, err
}

// Get returns the payment recorded under ref.
func (l *Ledger) Get(ctx context.Context, ref string) (*models.Payment, error) {
	return l.get(ctx, ref)
}

// HasCompletedPayment reports whether the user has a completed payment of
// the given type for the target.
func (l *Ledger) HasCompletedPayment(ctx context.Context, userEmail, typ string, targetID primitive.ObjectID) (bool, error) {
	return l.payments.HasCompleted(ctx, userEmail, typ, targetID)
}

// RequireCompleted fails PaymentRequired unless ref names a completed payment
// of type typ made by userEmail for targetID.
func (l *Ledger) RequireCompleted(ctx context.Context, ref, userEmail, typ string, targetID primitive.ObjectID) (*models.Payment, error) {
	if ref == "" {
		return nil, apperr.New(apperr.PaymentRequired, "payment is required")
	}
	p, err := l.payments.GetByRef(ctx, ref)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.New(apperr.PaymentRequired, "payment reference not found")
	}
	if err != nil {
		return nil, err
	}
	if p.UserEmail != userEmail || p.Type != typ || p.TargetID != targetID {
		return nil, apperr.New(apperr.PaymentRequired, "payment does not match this request")
	}
	if p.Status != models.PaymentCompleted {
		return nil, apperr.New(apperr.PaymentRequired, "payment is not completed")
	}
	return p, nil
}

// Poll asks the processor for the outcome of ref and applies it. Only the
// payment's own user may poll it.
func (l *Ledger) Poll(ctx context.Context, ref, callerEmail string) (_ *models.Payment, changed bool, err error) {
	p, err := l.get(ctx, ref)
	if err != nil {
		return nil, false, err
	}
	if p.UserEmail != callerEmail {
		return nil, false, apperr.New(apperr.Forbidden, "not your payment")
	}
	if p.Status == models.PaymentCompleted {
		return p, false, nil
	}

	outcome, err := l.proc.Lookup(ctx, ref)
	if errors.Is(err, processor.ErrUnknownIntent) {
		return nil, false, apperr.New(apperr.NotFound, "payment intent not found at processor")
	}
	if err != nil {
		return nil, false, err
	}
	switch outcome {
	case processor.OutcomeSucceeded:
		return l.Confirm(ctx, ref)
	case processor.OutcomeFailed:
		return l.MarkFailed(ctx, ref)
	default:
		return p, false, nil
	}
}

// Apply handles an asynchronous processor notification. Unknown references
// are logged and return (nil, false, nil) so the delivery is acknowledged.
func (l *Ledger) Apply(ctx context.Context, n processor.Notification) (*models.Payment, bool, error) {
	var (
		p       *models.Payment
		changed bool
		err     error
	)
	switch n.Outcome {
	case processor.OutcomeSucceeded:
		p, changed, err = l.Confirm(ctx, n.Ref)
	case processor.OutcomeFailed:
		p, changed, err = l.MarkFailed(ctx, n.Ref)
	default:
		return nil, false, nil
	}
	if apperr.Is(err, apperr.NotFound) {
		l.log.Warn("processor notification for unknown payment",
			zap.String("ref", n.Ref),
			zap.String("event_id", n.EventID),
			zap.String("outcome", string(n.Outcome)))
		return nil, false, nil
	}
	return p, changed, err
}

// ExpirePending marks payments pending for longer than ttl as failed. Rows
// are never deleted.
func (l *Ledger) ExpirePending(ctx context.Context, ttl time.Duration) (int64, error) {
	now := l.now()
	return l.payments.FailPendingBefore(ctx, now.Add(-ttl), now)
}

// ListByUser returns a user's payments, newest first.
func (l *Ledger) ListByUser(ctx context.Context, userEmail string) ([]models.Payment, error) {
	return l.payments.ListByUser(ctx, userEmail)
}

// List returns every payment, newest first.
func (l *Ledger) List(ctx context.Context) ([]models.Payment, error) {
	return l.payments.List(ctx)
}
