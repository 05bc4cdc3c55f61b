package paymentstore_test

import (
	"errors"
	"testing"
	"time"

	paymentstore "github.com/dalemusser/clubsphere/internal/app/store/payments"
	"github.com/dalemusser/clubsphere/internal/domain/models"
	"github.com/dalemusser/clubsphere/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func newPayment(ref string) models.Payment {
	return models.Payment{
		UserEmail:    "a@x.com",
		Type:         models.PaymentTypeMembership,
		TargetID:     primitive.NewObjectID(),
		Amount:       2500,
		Currency:     "usd",
		ProcessorRef: ref,
	}
}

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := paymentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p, err := store.Create(ctx, newPayment("pi_1"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if p.Status != models.PaymentPending {
		t.Errorf("Status: got %q, want pending", p.Status)
	}

	if _, err := store.Create(ctx, newPayment("pi_1")); !errors.Is(err, paymentstore.ErrDuplicateRef) {
		t.Errorf("expected ErrDuplicateRef, got %v", err)
	}
}

func TestStore_Create_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := paymentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	noRef := newPayment("")
	badType := newPayment("pi_x")
	badType.Type = "donation"

	for name, p := range map[string]models.Payment{"no ref": noRef, "bad type": badType} {
		t.Run(name, func(t *testing.T) {
			if _, err := store.Create(ctx, p); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestStore_MarkCompleted_Once(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := paymentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, newPayment("pi_2")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	first := time.Now().UTC().Truncate(time.Millisecond)
	p, err := store.MarkCompleted(ctx, "pi_2", first)
	if err != nil {
		t.Fatalf("MarkCompleted failed: %v", err)
	}
	if p.Status != models.PaymentCompleted || p.CompletedAt == nil {
		t.Fatalf("unexpected payment: %+v", p)
	}

	if _, err := store.MarkCompleted(ctx, "pi_2", first.Add(time.Hour)); err != mongo.ErrNoDocuments {
		t.Errorf("second MarkCompleted: expected mongo.ErrNoDocuments, got %v", err)
	}
	got, err := store.GetByRef(ctx, "pi_2")
	if err != nil {
		t.Fatalf("GetByRef failed: %v", err)
	}
	if !got.CompletedAt.Equal(first) {
		t.Errorf("CompletedAt changed: got %v, want %v", got.CompletedAt, first)
	}
}

func TestStore_MarkFailed_OnlyPending(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := paymentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, newPayment("pi_3")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := store.MarkCompleted(ctx, "pi_3", time.Now().UTC()); err != nil {
		t.Fatalf("MarkCompleted failed: %v", err)
	}
	if _, err := store.MarkFailed(ctx, "pi_3", time.Now().UTC()); err != mongo.ErrNoDocuments {
		t.Errorf("MarkFailed on completed: expected mongo.ErrNoDocuments, got %v", err)
	}
}

func TestStore_FailPendingBefore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := paymentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	old := newPayment("pi_old")
	old.CreatedAt = time.Now().UTC().Add(-48 * time.Hour)
	if _, err := store.Create(ctx, old); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := store.Create(ctx, newPayment("pi_new")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	n, err := store.FailPendingBefore(ctx, time.Now().UTC().Add(-24*time.Hour), time.Now().UTC())
	if err != nil {
		t.Fatalf("FailPendingBefore failed: %v", err)
	}
	if n != 1 {
		t.Errorf("changed = %d, want 1", n)
	}

	got, err := store.GetByRef(ctx, "pi_old")
	if err != nil {
		t.Fatalf("GetByRef failed: %v", err)
	}
	if got.Status != models.PaymentFailed || got.FailedAt == nil {
		t.Errorf("unexpected old payment: %+v", got)
	}
}

func TestStore_HasCompleted(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := paymentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := newPayment("pi_4")
	if _, err := store.Create(ctx, p); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	ok, err := store.HasCompleted(ctx, p.UserEmail, p.Type, p.TargetID)
	if err != nil || ok {
		t.Fatalf("HasCompleted before confirm = %v, %v; want false, nil", ok, err)
	}
	if _, err := store.MarkCompleted(ctx, "pi_4", time.Now().UTC()); err != nil {
		t.Fatalf("MarkCompleted failed: %v", err)
	}
	ok, err = store.HasCompleted(ctx, p.UserEmail, p.Type, p.TargetID)
	if err != nil || !ok {
		t.Errorf("HasCompleted after confirm = %v, %v; want true, nil", ok, err)
	}
}
