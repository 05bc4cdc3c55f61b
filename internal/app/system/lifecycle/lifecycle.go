// Package lifecycle decides whether a join or registration request becomes
// an active record or is rejected, and commits it.
//
// Duplicate active records are prevented by partial unique indexes on the
// membership and registration collections. The pre-insert existence check
// only gives a faster answer; the insert is what decides a race, and its
// constraint violation is reported as AlreadyExists.
package lifecycle

import (
	"context"
	"errors"
	"time"

	membershipstore "github.com/dalemusser/clubsphere/internal/app/store/memberships"
	registrationstore "github.com/dalemusser/clubsphere/internal/app/store/registrations"
	"github.com/dalemusser/clubsphere/internal/app/system/apperr"
	"github.com/dalemusser/clubsphere/internal/app/system/capacity"
	"github.com/dalemusser/clubsphere/internal/app/system/gates"
	"github.com/dalemusser/clubsphere/internal/app/system/ledger"
	"github.com/dalemusser/clubsphere/internal/app/system/tracing"
	"github.com/dalemusser/clubsphere/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Engine runs membership and registration transitions.
type Engine struct {
	gate        *gates.Gate
	ledger      *ledger.Ledger
	capacity    *capacity.Enforcer
	memberships *membershipstore.Store
	regs        *registrationstore.Store
	log         *zap.Logger
	tracer      trace.Tracer
	now         func() time.Time
}

// Deps are the collaborators an Engine needs.
type Deps struct {
	Gate          *gates.Gate
	Ledger        *ledger.Ledger
	Capacity      *capacity.Enforcer
	Memberships   *membershipstore.Store
	Registrations *registrationstore.Store
}

// New returns an Engine.
func New(d Deps, logger *zap.Logger) *Engine {
	return &Engine{
		gate:        d.Gate,
		ledger:      d.Ledger,
		capacity:    d.Capacity,
		memberships: d.Memberships,
		regs:        d.Registrations,
		log:         logger,
		tracer:      tracing.Tracer("lifecycle"),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Join makes userEmail an active member of the club. Paid clubs require
// paymentRef to name a completed membership payment by this user for this
// club that has not activated any other membership.
func (e *Engine) Join(ctx context.Context, userEmail string, clubID primitive.ObjectID, paymentRef string) (_ *models.Membership, err error) {
	ctx, span := e.tracer.Start(ctx, "lifecycle.join", trace.WithAttributes(
		attribute.String("club.id", clubID.Hex()),
		attribute.Bool("payment_ref.present", paymentRef != ""),
	))
	defer func() { tracing.End(span, err) }()

	club, err := e.gate.RequireApprovedClub(ctx, clubID)
	if err != nil {
		return nil, err
	}

	active, err := e.memberships.HasActive(ctx, userEmail, clubID)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, apperr.New(apperr.AlreadyExists, "already a member of this club")
	}

	var ref *string
	if club.FeeCents > 0 {
		if _, err := e.ledger.RequireCompleted(ctx, paymentRef, userEmail, models.PaymentTypeMembership, clubID); err != nil {
			return nil, err
		}
		used, err := e.memberships.PaymentRefUsed(ctx, paymentRef)
		if err != nil {
			return nil, err
		}
		if used {
			return nil, apperr.New(apperr.PaymentRequired, "payment has already been used")
		}
		ref = &paymentRef
	}

	m, err := e.memberships.Insert(ctx, models.Membership{
		UserEmail:  userEmail,
		ClubID:     clubID,
		Status:     models.MembershipActive,
		PaymentRef: ref,
		JoinedAt:   e.now(),
	})
	switch {
	case errors.Is(err, membershipstore.ErrDuplicateActive):
		return nil, apperr.Wrap(apperr.AlreadyExists, "already a member of this club", err)
	case errors.Is(err, membershipstore.ErrPaymentRefUsed):
		return nil, apperr.Wrap(apperr.PaymentRequired, "payment has already been used", err)
	case err != nil:
		return nil, err
	}
	return &m, nil
}

// Register registers userEmail for the event. Full events refuse even users
// who have paid; paid events then require a completed event payment the
// same way Join does.
func (e *Engine) Register(ctx context.Context, userEmail string, eventID primitive.ObjectID, paymentRef string) (_ *models.EventRegistration, err error) {
	ctx, span := e.tracer.Start(ctx, "lifecycle.register", trace.WithAttributes(
		attribute.String("event.id", eventID.Hex()),
		attribute.Bool("payment_ref.present", paymentRef != ""),
	))
	defer func() { tracing.End(span, err) }()

	ev, _, err := e.gate.RequireEventInApprovedClub(ctx, eventID)
	if err != nil {
		return nil, err
	}

	registered, err := e.regs.IsRegistered(ctx, userEmail, eventID)
	if err != nil {
		return nil, err
	}
	if registered {
		return nil, apperr.New(apperr.AlreadyExists, "already registered for this event")
	}

	if err := e.capacity.CheckAndReserve(ctx, ev); err != nil {
		return nil, err
	}

	var ref *string
	if ev.RequiresPayment() {
		if _, err := e.ledger.RequireCompleted(ctx, paymentRef, userEmail, models.PaymentTypeEvent, eventID); err != nil {
			return nil, err
		}
		used, err := e.regs.PaymentRefUsed(ctx, paymentRef)
		if err != nil {
			return nil, err
		}
		if used {
			return nil, apperr.New(apperr.PaymentRequired, "payment has already been used")
		}
		ref = &paymentRef
	}

	reg, err := e.regs.Insert(ctx, models.EventRegistration{
		UserEmail:    userEmail,
		EventID:      eventID,
		ClubID:       ev.ClubID,
		Status:       models.RegistrationRegistered,
		PaymentRef:   ref,
		RegisteredAt: e.now(),
	})
	switch {
	case errors.Is(err, registrationstore.ErrDuplicateRegistration):
		return nil, apperr.Wrap(apperr.AlreadyExists, "already registered for this event", err)
	case errors.Is(err, registrationstore.ErrPaymentRefUsed):
		return nil, apperr.Wrap(apperr.PaymentRequired, "payment has already been used", err)
	case err != nil:
		return nil, err
	}
	return &reg, nil
}

// CancelMembership cancels the caller's own membership. Cancelling an
// already cancelled or expired membership returns it unchanged.
func (e *Engine) CancelMembership(ctx context.Context, callerEmail string, id primitive.ObjectID) (_ *models.Membership, changed bool, err error) {
	m, err := e.memberships.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, apperr.New(apperr.NotFound, "membership not found")
	}
	if err != nil {
		return nil, false, err
	}
	if m.UserEmail != callerEmail {
		return nil, false, apperr.New(apperr.Forbidden, "not your membership")
	}
	if m.Status == models.MembershipCancelled || m.Status == models.MembershipExpired {
		return m, false, nil
	}

	cancelled, err := e.memberships.Cancel(ctx, id, e.now())
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Cancelled concurrently.
		m, err = e.memberships.GetByID(ctx, id)
		return m, false, err
	}
	if err != nil {
		return nil, false, err
	}
	return cancelled, true, nil
}

// CancelRegistration cancels the caller's own registration. Cancelling an
// already cancelled registration returns it unchanged.
func (e *Engine) CancelRegistration(ctx context.Context, callerEmail string, id primitive.ObjectID) (_ *models.EventRegistration, changed bool, err error) {
	reg, err := e.regs.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, apperr.New(apperr.NotFound, "registration not found")
	}
	if err != nil {
		return nil, false, err
	}
	if reg.UserEmail != callerEmail {
		return nil, false, apperr.New(apperr.Forbidden, "not your registration")
	}
	if reg.Status == models.RegistrationCancelled {
		return reg, false, nil
	}

	cancelled, err := e.regs.Cancel(ctx, id, e.now())
	if errors.Is(err, mongo.ErrNoDocuments) {
		reg, err = e.regs.GetByID(ctx, id)
		return reg, false, err
	}
	if err != nil {
		return nil, false, err
	}
	return cancelled, true, nil
}

// IsMember reports whether the user holds an active membership in the club.
func (e *Engine) IsMember(ctx context.Context, userEmail string, clubID primitive.ObjectID) (bool, error) {
	return e.memberships.HasActive(ctx, userEmail, clubID)
}

// IsRegistered reports whether the user is registered for the event.
func (e *Engine) IsRegistered(ctx context.Context, userEmail string, eventID primitive.ObjectID) (bool, error) {
	return e.regs.IsRegistered(ctx, userEmail, eventID)
}
