package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/clubsphere/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok || rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a registered user with the given role.
func (f *Fixtures) CreateUser(ctx context.Context, email, role string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:        primitive.NewObjectID(),
		Email:     email,
		Name:      "Test " + role,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateMember creates a user with the member role.
func (f *Fixtures) CreateMember(ctx context.Context, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, email, "member")
}

// CreateManager creates a user with the clubManager role.
func (f *Fixtures) CreateManager(ctx context.Context, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, email, "clubManager")
}

// CreateAdmin creates a user with the admin role.
func (f *Fixtures) CreateAdmin(ctx context.Context, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, email, "admin")
}

// CreateClub creates a club owned by managerEmail.
func (f *Fixtures) CreateClub(ctx context.Context, managerEmail, status string, feeCents int64) models.Club {
	f.t.Helper()

	now := time.Now().UTC()
	name := "Club " + primitive.NewObjectID().Hex()[18:]
	club := models.Club{
		ID:           primitive.NewObjectID(),
		Name:         name,
		NameCI:       text.Fold(name),
		Description:  "A test club",
		Category:     "general",
		Location:     "Test City",
		FeeCents:     feeCents,
		ManagerEmail: managerEmail,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := f.db.Collection("clubs").InsertOne(ctx, club); err != nil {
		f.t.Fatalf("failed to create test club: %v", err)
	}
	return club
}

// CreateEvent creates an event under clubID. maxAttendees may be nil.
func (f *Fixtures) CreateEvent(ctx context.Context, clubID primitive.ObjectID, isPaid bool, feeCents int64, maxAttendees *int64) models.Event {
	f.t.Helper()

	now := time.Now().UTC()
	title := "Event " + primitive.NewObjectID().Hex()[18:]
	if !isPaid {
		feeCents = 0
	}
	ev := models.Event{
		ID:           primitive.NewObjectID(),
		ClubID:       clubID,
		Title:        title,
		TitleCI:      text.Fold(title),
		Description:  "A test event",
		EventDate:    now.Add(7 * 24 * time.Hour),
		Location:     "Hall A",
		IsPaid:       isPaid,
		FeeCents:     feeCents,
		MaxAttendees: maxAttendees,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := f.db.Collection("events").InsertOne(ctx, ev); err != nil {
		f.t.Fatalf("failed to create test event: %v", err)
	}
	return ev
}

// CreatePayment records a payment with the given status.
func (f *Fixtures) CreatePayment(ctx context.Context, userEmail, typ string, targetID primitive.ObjectID, amount int64, ref, status string) models.Payment {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.Payment{
		ID:           primitive.NewObjectID(),
		UserEmail:    userEmail,
		Type:         typ,
		TargetID:     targetID,
		Amount:       amount,
		Currency:     "usd",
		ProcessorRef: ref,
		Status:       status,
		CreatedAt:    now,
	}
	if status == models.PaymentCompleted {
		p.CompletedAt = &now
	}
	if _, err := f.db.Collection("payments").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test payment: %v", err)
	}
	return p
}

// CreateMembership records a membership with the given status.
func (f *Fixtures) CreateMembership(ctx context.Context, userEmail string, clubID primitive.ObjectID, status string) models.Membership {
	f.t.Helper()

	m := models.Membership{
		ID:        primitive.NewObjectID(),
		UserEmail: userEmail,
		ClubID:    clubID,
		Status:    status,
		JoinedAt:  time.Now().UTC(),
	}
	if _, err := f.db.Collection("memberships").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("failed to create test membership: %v", err)
	}
	return m
}

// CreateRegistration records an event registration with the given status.
func (f *Fixtures) CreateRegistration(ctx context.Context, userEmail string, ev models.Event, status string) models.EventRegistration {
	f.t.Helper()

	reg := models.EventRegistration{
		ID:           primitive.NewObjectID(),
		UserEmail:    userEmail,
		EventID:      ev.ID,
		ClubID:       ev.ClubID,
		Status:       status,
		RegisteredAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("event_registrations").InsertOne(ctx, reg); err != nil {
		f.t.Fatalf("failed to create test registration: %v", err)
	}
	return reg
}
