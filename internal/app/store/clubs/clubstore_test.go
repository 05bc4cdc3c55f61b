package clubstore_test

import (
	"testing"

	clubstore "github.com/dalemusser/clubsphere/internal/app/store/clubs"
	"github.com/dalemusser/clubsphere/internal/domain/models"
	"github.com/dalemusser/clubsphere/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create_DefaultsToPending(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := clubstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c, err := store.Create(ctx, models.Club{Name: "Chess Club", ManagerEmail: "m@x.com"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if c.Status != models.ClubPending {
		t.Errorf("Status: got %q, want pending", c.Status)
	}
	if c.NameCI != "chess club" {
		t.Errorf("NameCI: got %q", c.NameCI)
	}

	got, err := store.GetByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.ManagerEmail != "m@x.com" {
		t.Errorf("ManagerEmail: got %q", got.ManagerEmail)
	}
}

func TestStore_Create_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := clubstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tests := []struct {
		name string
		club models.Club
	}{
		{"missing name", models.Club{}},
		{"negative fee", models.Club{Name: "X", FeeCents: -1}},
		{"bad status", models.Club{Name: "X", Status: "archived"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := store.Create(ctx, tt.club); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestStore_Update_KeepsStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := clubstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := fixtures.CreateClub(ctx, "m@x.com", models.ClubApproved, 0)

	updated, err := store.Update(ctx, club.ID, clubstore.Update{Name: "Go Club", FeeCents: 2500})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Name != "Go Club" || updated.FeeCents != 2500 {
		t.Errorf("unexpected club after update: %+v", updated)
	}
	if updated.Status != models.ClubApproved {
		t.Errorf("Status changed to %q", updated.Status)
	}
}

func TestStore_SetStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := clubstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := fixtures.CreateClub(ctx, "m@x.com", models.ClubPending, 0)

	updated, err := store.SetStatus(ctx, club.ID, models.ClubApproved)
	if err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	if !updated.IsApproved() {
		t.Errorf("Status: got %q, want approved", updated.Status)
	}

	if _, err := store.SetStatus(ctx, club.ID, "archived"); err == nil {
		t.Error("expected error for invalid status")
	}
	if _, err := store.SetStatus(ctx, primitive.NewObjectID(), models.ClubApproved); err != mongo.ErrNoDocuments {
		t.Errorf("expected mongo.ErrNoDocuments, got %v", err)
	}
}
