package eventstore_test

import (
	"testing"
	"time"

	eventstore "github.com/dalemusser/clubsphere/internal/app/store/events"
	"github.com/dalemusser/clubsphere/internal/domain/models"
	"github.com/dalemusser/clubsphere/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create_UnpaidForcesZeroFee(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := eventstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	e, err := store.Create(ctx, models.Event{
		ClubID:    primitive.NewObjectID(),
		Title:     "Open Night",
		EventDate: time.Now().Add(24 * time.Hour).UTC(),
		IsPaid:    false,
		FeeCents:  1500,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if e.FeeCents != 0 {
		t.Errorf("FeeCents: got %d, want 0 for unpaid event", e.FeeCents)
	}

	got, err := store.GetByID(ctx, e.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.FeeCents != 0 || got.MaxAttendees != nil {
		t.Errorf("unexpected stored event: %+v", got)
	}
}

func TestStore_Create_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := eventstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	zero := int64(0)
	tests := []struct {
		name  string
		event models.Event
	}{
		{"missing club", models.Event{Title: "X"}},
		{"missing title", models.Event{ClubID: primitive.NewObjectID()}},
		{"negative fee", models.Event{ClubID: primitive.NewObjectID(), Title: "X", IsPaid: true, FeeCents: -5}},
		{"zero capacity", models.Event{ClubID: primitive.NewObjectID(), Title: "X", MaxAttendees: &zero}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := store.Create(ctx, tt.event); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestStore_Update_ClearsCapacity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := eventstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := fixtures.CreateClub(ctx, "m@x.com", models.ClubApproved, 0)
	capacity := int64(10)
	event := fixtures.CreateEvent(ctx, club.ID, true, 500, &capacity)

	updated, err := store.Update(ctx, event.ID, eventstore.Update{
		Title:     "Renamed",
		EventDate: event.EventDate,
		IsPaid:    false,
		FeeCents:  500,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.MaxAttendees != nil {
		t.Errorf("expected capacity bound removed, got %d", *updated.MaxAttendees)
	}
	if updated.FeeCents != 0 {
		t.Errorf("FeeCents: got %d, want 0", updated.FeeCents)
	}
	if updated.ClubID != club.ID {
		t.Error("club changed on update")
	}
}

func TestStore_CountByClub(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := eventstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := fixtures.CreateClub(ctx, "m@x.com", models.ClubApproved, 0)
	other := fixtures.CreateClub(ctx, "m@x.com", models.ClubApproved, 0)
	fixtures.CreateEvent(ctx, club.ID, false, 0, nil)
	fixtures.CreateEvent(ctx, club.ID, false, 0, nil)
	fixtures.CreateEvent(ctx, other.ID, false, 0, nil)

	n, err := store.CountByClub(ctx, club.ID)
	if err != nil {
		t.Fatalf("CountByClub failed: %v", err)
	}
	if n != 2 {
		t.Errorf("count = %d, want 2", n)
	}
}
