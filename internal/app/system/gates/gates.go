// Package gates enforces per-resource preconditions: a club or event must
// exist and its owning club must be approved before members can join or
// register, and owner-only mutations must come from the owner or an admin.
//
// Role checks that depend only on the caller live in authz. Gates are for
// checks that depend on the specific resource being accessed.
package gates

import (
	"context"
	"errors"

	"github.com/dalemusser/clubsphere/internal/app/system/apperr"
	"github.com/dalemusser/clubsphere/internal/app/system/auth"
	"github.com/dalemusser/clubsphere/internal/app/system/authz"
	"github.com/dalemusser/clubsphere/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ClubStore is the slice of the club store a Gate reads.
type ClubStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Club, error)
}

// EventStore is the slice of the event store a Gate reads.
type EventStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error)
}

// Gate answers existence, approval and ownership questions about clubs and
// events.
type Gate struct {
	clubs  ClubStore
	events EventStore
}

// New returns a Gate backed by the given stores.
func New(clubs ClubStore, events EventStore) *Gate {
	return &Gate{clubs: clubs, events: events}
}

// Club loads a club by id regardless of status.
func (g *Gate) Club(ctx context.Context, clubID primitive.ObjectID) (*models.Club, error) {
	c, err := g.clubs.GetByID(ctx, clubID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.New(apperr.NotFound, "club not found")
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Event loads an event by id.
func (g *Gate) Event(ctx context.Context, eventID primitive.ObjectID) (*models.Event, error) {
	e, err := g.events.GetByID(ctx, eventID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.New(apperr.NotFound, "event not found")
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// RequireApprovedClub returns the club if it exists and is currently
// approved.
func (g *Gate) RequireApprovedClub(ctx context.Context, clubID primitive.ObjectID) (*models.Club, error) {
	c, err := g.Club(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if !c.IsApproved() {
		return nil, apperr.New(apperr.Unapproved, "club is not approved")
	}
	return c, nil
}

// RequireEventInApprovedClub returns the event and its owning club. The club
// must currently be approved.
func (g *Gate) RequireEventInApprovedClub(ctx context.Context, eventID primitive.ObjectID) (*models.Event, *models.Club, error) {
	e, err := g.Event(ctx, eventID)
	if err != nil {
		return nil, nil, err
	}
	c, err := g.RequireApprovedClub(ctx, e.ClubID)
	if err != nil {
		return nil, nil, err
	}
	return e, c, nil
}

// EventOwner returns the manager email of the club that owns the event.
func (g *Gate) EventOwner(ctx context.Context, e *models.Event) (string, error) {
	c, err := g.Club(ctx, e.ClubID)
	if err != nil {
		return "", err
	}
	return c.ManagerEmail, nil
}

// OwnsResource reports whether the principal is the resource owner.
func OwnsResource(p *auth.Principal, ownerEmail string) bool {
	return p != nil && ownerEmail != "" && p.Email == ownerEmail
}

// RequireOwnedOrAdmin fails Forbidden unless the principal owns the resource
// or holds the admin role.
func RequireOwnedOrAdmin(p *auth.Principal, role authz.Role, ownerEmail string) error {
	if role.IsAdmin() || OwnsResource(p, ownerEmail) {
		return nil
	}
	return apperr.New(apperr.Forbidden, "only the owner or an admin may do this")
}
