// internal/app/store/payments/paymentstore.go
package paymentstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/clubsphere/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("payments")}
}

var (
	// ErrDuplicateRef is returned when a payment with the same processor
	// reference already exists.
	ErrDuplicateRef = errors.New("a payment with this processor reference already exists")

	errRefRequired = errors.New("processor_ref is required")
	errBadType     = errors.New(`type must be "membership"|"event"`)
)

// Create inserts a pending payment.
func (s *Store) Create(ctx context.Context, p models.Payment) (models.Payment, error) {
	if p.ProcessorRef == "" {
		return models.Payment{}, errRefRequired
	}
	if !models.IsValidPaymentType(p.Type) {
		return models.Payment{}, errBadType
	}
	p.ID = primitive.NewObjectID()
	p.Status = models.PaymentPending
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Payment{}, ErrDuplicateRef
		}
		return models.Payment{}, err
	}
	return p, nil
}

// GetByRef loads a payment by processor reference.
// Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByRef(ctx context.Context, ref string) (*models.Payment, error) {
	var p models.Payment
	if err := s.c.FindOne(ctx, bson.M{"processor_ref": ref}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// MarkCompleted moves a non-completed payment to completed in one atomic
// update. It returns mongo.ErrNoDocuments when the reference is unknown or
// the payment is already completed; completedAt is never overwritten.
func (s *Store) MarkCompleted(ctx context.Context, ref string, at time.Time) (*models.Payment, error) {
	var p models.Payment
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"processor_ref": ref, "status": bson.M{"$ne": models.PaymentCompleted}},
		bson.M{"$set": bson.M{"status": models.PaymentCompleted, "completed_at": at}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// MarkFailed moves a pending payment to failed. It returns
// mongo.ErrNoDocuments when the reference is unknown or not pending.
func (s *Store) MarkFailed(ctx context.Context, ref string, at time.Time) (*models.Payment, error) {
	var p models.Payment
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"processor_ref": ref, "status": models.PaymentPending},
		bson.M{"$set": bson.M{"status": models.PaymentFailed, "failed_at": at}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FailPendingBefore marks every payment still pending and created before
// cutoff as failed. Returns the number of payments changed.
func (s *Store) FailPendingBefore(ctx context.Context, cutoff, at time.Time) (int64, error) {
	res, err := s.c.UpdateMany(ctx,
		bson.M{"status": models.PaymentPending, "created_at": bson.M{"$lt": cutoff}},
		bson.M{"$set": bson.M{"status": models.PaymentFailed, "failed_at": at}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// HasCompleted reports whether the user has a completed payment of the given
// type for the target.
func (s *Store) HasCompleted(ctx context.Context, userEmail, typ string, targetID primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{
		"user_email": userEmail,
		"type":       typ,
		"target_id":  targetID,
		"status":     models.PaymentCompleted,
	}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListByUser returns a user's payments, newest first.
func (s *Store) ListByUser(ctx context.Context, userEmail string) ([]models.Payment, error) {
	return s.find(ctx, bson.M{"user_email": userEmail})
}

// List returns all payments, newest first.
func (s *Store) List(ctx context.Context) ([]models.Payment, error) {
	return s.find(ctx, bson.M{})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Payment, error) {
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Payment{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
