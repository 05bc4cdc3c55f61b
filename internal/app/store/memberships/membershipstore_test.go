package membershipstore_test

import (
	"errors"
	"testing"
	"time"

	membershipstore "github.com/dalemusser/clubsphere/internal/app/store/memberships"
	"github.com/dalemusser/clubsphere/internal/domain/models"
	"github.com/dalemusser/clubsphere/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Insert(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	clubID := primitive.NewObjectID()
	m, err := store.Insert(ctx, models.Membership{
		UserEmail: "a@x.com",
		ClubID:    clubID,
		Status:    models.MembershipActive,
	})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if m.ID.IsZero() || m.JoinedAt.IsZero() {
		t.Error("expected ID and JoinedAt to be set")
	}

	count, err := db.Collection("memberships").CountDocuments(ctx, bson.M{"user_email": "a@x.com", "club_id": clubID})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 membership, got %d", count)
	}
}

func TestStore_Insert_DuplicateActive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	clubID := primitive.NewObjectID()
	m := models.Membership{UserEmail: "a@x.com", ClubID: clubID, Status: models.MembershipActive}
	if _, err := store.Insert(ctx, m); err != nil {
		t.Fatalf("first Insert failed: %v", err)
	}
	_, err := store.Insert(ctx, m)
	if !errors.Is(err, membershipstore.ErrDuplicateActive) {
		t.Errorf("expected ErrDuplicateActive, got %v", err)
	}
}

func TestStore_Insert_CancelledDoesNotBlock(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	clubID := primitive.NewObjectID()
	first, err := store.Insert(ctx, models.Membership{UserEmail: "a@x.com", ClubID: clubID, Status: models.MembershipActive})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if _, err := store.Cancel(ctx, first.ID, time.Now().UTC()); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	if _, err := store.Insert(ctx, models.Membership{UserEmail: "a@x.com", ClubID: clubID, Status: models.MembershipActive}); err != nil {
		t.Fatalf("rejoin after cancel failed: %v", err)
	}

	list, err := store.ListByUser(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("expected history to keep 2 rows, got %d", len(list))
	}
}

func TestStore_Insert_PaymentRefUsed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ref := "pi_123"
	if _, err := store.Insert(ctx, models.Membership{UserEmail: "a@x.com", ClubID: primitive.NewObjectID(), Status: models.MembershipActive, PaymentRef: &ref}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	_, err := store.Insert(ctx, models.Membership{UserEmail: "a@x.com", ClubID: primitive.NewObjectID(), Status: models.MembershipActive, PaymentRef: &ref})
	if !errors.Is(err, membershipstore.ErrPaymentRefUsed) {
		t.Errorf("expected ErrPaymentRefUsed, got %v", err)
	}

	used, err := store.PaymentRefUsed(ctx, ref)
	if err != nil || !used {
		t.Errorf("PaymentRefUsed = %v, %v; want true, nil", used, err)
	}
}

func TestStore_Insert_InvalidStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Insert(ctx, models.Membership{UserEmail: "a@x.com", ClubID: primitive.NewObjectID(), Status: "paused"}); err == nil {
		t.Error("expected error for invalid status")
	}
}

func TestStore_HasActive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	clubID := primitive.NewObjectID()
	if _, err := store.Insert(ctx, models.Membership{UserEmail: "p@x.com", ClubID: clubID, Status: models.MembershipPendingPayment}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	ok, err := store.HasActive(ctx, "p@x.com", clubID)
	if err != nil {
		t.Fatalf("HasActive failed: %v", err)
	}
	if ok {
		t.Error("pendingPayment must not count as active")
	}
}

func TestStore_Cancel_AlreadyCancelled(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	m, err := store.Insert(ctx, models.Membership{UserEmail: "a@x.com", ClubID: primitive.NewObjectID(), Status: models.MembershipActive})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	got, err := store.Cancel(ctx, m.ID, time.Now().UTC())
	if err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	if got.Status != models.MembershipCancelled || got.CancelledAt == nil {
		t.Errorf("unexpected membership after cancel: %+v", got)
	}
	if _, err := store.Cancel(ctx, m.ID, time.Now().UTC()); err != mongo.ErrNoDocuments {
		t.Errorf("second Cancel: expected mongo.ErrNoDocuments, got %v", err)
	}
}

func TestStore_CountActiveByClub(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	clubID := primitive.NewObjectID()
	for _, m := range []models.Membership{
		{UserEmail: "a@x.com", ClubID: clubID, Status: models.MembershipActive},
		{UserEmail: "b@x.com", ClubID: clubID, Status: models.MembershipActive},
		{UserEmail: "c@x.com", ClubID: clubID, Status: models.MembershipCancelled},
		{UserEmail: "d@x.com", ClubID: clubID, Status: models.MembershipExpired},
	} {
		if _, err := store.Insert(ctx, m); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	n, err := store.CountActiveByClub(ctx, clubID)
	if err != nil {
		t.Fatalf("CountActiveByClub failed: %v", err)
	}
	if n != 2 {
		t.Errorf("count = %d, want 2", n)
	}
}
