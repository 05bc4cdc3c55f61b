package gates_test

import (
	"testing"

	clubstore "github.com/dalemusser/clubsphere/internal/app/store/clubs"
	eventstore "github.com/dalemusser/clubsphere/internal/app/store/events"
	"github.com/dalemusser/clubsphere/internal/app/system/apperr"
	"github.com/dalemusser/clubsphere/internal/app/system/authz"
	"github.com/dalemusser/clubsphere/internal/app/system/gates"
	"github.com/dalemusser/clubsphere/internal/domain/models"
	"github.com/dalemusser/clubsphere/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newGate(t *testing.T) (*gates.Gate, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return gates.New(clubstore.New(db), eventstore.New(db)), testutil.NewFixtures(t, db)
}

func TestRequireApprovedClub(t *testing.T) {
	g, fixtures := newGate(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	approved := fixtures.CreateClub(ctx, "m@x.com", models.ClubApproved, 0)
	pending := fixtures.CreateClub(ctx, "m@x.com", models.ClubPending, 0)
	rejected := fixtures.CreateClub(ctx, "m@x.com", models.ClubRejected, 0)

	c, err := g.RequireApprovedClub(ctx, approved.ID)
	if err != nil {
		t.Fatalf("approved club: %v", err)
	}
	if c.ID != approved.ID {
		t.Errorf("got club %s, want %s", c.ID.Hex(), approved.ID.Hex())
	}

	tests := []struct {
		name string
		id   primitive.ObjectID
		want apperr.Kind
	}{
		{"pending", pending.ID, apperr.Unapproved},
		{"rejected", rejected.ID, apperr.Unapproved},
		{"missing", primitive.NewObjectID(), apperr.NotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := g.RequireApprovedClub(ctx, tt.id); !apperr.Is(err, tt.want) {
				t.Errorf("want %s, got %v", tt.want, err)
			}
		})
	}
}

func TestRequireEventInApprovedClub(t *testing.T) {
	g, fixtures := newGate(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := fixtures.CreateClub(ctx, "m@x.com", models.ClubApproved, 0)
	ev := fixtures.CreateEvent(ctx, club.ID, false, 0, nil)

	gotEv, gotClub, err := g.RequireEventInApprovedClub(ctx, ev.ID)
	if err != nil {
		t.Fatalf("RequireEventInApprovedClub: %v", err)
	}
	if gotEv.ID != ev.ID || gotClub.ID != club.ID {
		t.Error("returned wrong event or club")
	}

	// Later de-approval keeps the event but blocks new registrations.
	if _, err := clubstore.New(fixtures.DB()).SetStatus(ctx, club.ID, models.ClubRejected); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if _, _, err := g.RequireEventInApprovedClub(ctx, ev.ID); !apperr.Is(err, apperr.Unapproved) {
		t.Errorf("want Unapproved, got %v", err)
	}
	if _, _, err := g.RequireEventInApprovedClub(ctx, primitive.NewObjectID()); !apperr.Is(err, apperr.NotFound) {
		t.Errorf("want NotFound, got %v", err)
	}

	owner, err := g.EventOwner(ctx, gotEv)
	if err != nil || owner != "m@x.com" {
		t.Errorf("EventOwner = %q, %v", owner, err)
	}
}

func TestRequireOwnedOrAdmin(t *testing.T) {
	owner := testutil.PrincipalFor("owner@x.com")
	other := testutil.PrincipalFor("other@x.com")

	if err := gates.RequireOwnedOrAdmin(owner, authz.RoleClubManager, "owner@x.com"); err != nil {
		t.Errorf("owner: %v", err)
	}
	if err := gates.RequireOwnedOrAdmin(other, authz.RoleAdmin, "owner@x.com"); err != nil {
		t.Errorf("admin: %v", err)
	}
	if err := gates.RequireOwnedOrAdmin(other, authz.RoleClubManager, "owner@x.com"); !apperr.Is(err, apperr.Forbidden) {
		t.Errorf("other manager: want Forbidden, got %v", err)
	}
	if err := gates.RequireOwnedOrAdmin(other, authz.RoleMember, ""); !apperr.Is(err, apperr.Forbidden) {
		t.Errorf("empty owner: want Forbidden, got %v", err)
	}
}
