// internal/app/store/registrations/registrationstore.go
package registrationstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/clubsphere/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Unique index names, created by indexes.EnsureAll.
const (
	IndexRegisteredUserEvent = "uniq_registrations_registered_user_event"
	IndexPaymentRef          = "uniq_registrations_payment_ref"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("event_registrations")}
}

var (
	// ErrDuplicateRegistration is returned when the user is already
	// registered for the event.
	ErrDuplicateRegistration = errors.New("user is already registered for this event")
	// ErrPaymentRefUsed is returned when the payment reference already
	// activated another registration.
	ErrPaymentRefUsed = errors.New("payment reference already used by another registration")

	errBadStatus = errors.New(`status must be "registered"|"cancelled"`)
)

// Insert creates a registration. Duplicate registered rows and reused
// payment references are rejected by the partial unique indexes.
func (s *Store) Insert(ctx context.Context, reg models.EventRegistration) (models.EventRegistration, error) {
	if reg.Status != models.RegistrationRegistered && reg.Status != models.RegistrationCancelled {
		return models.EventRegistration{}, errBadStatus
	}
	reg.ID = primitive.NewObjectID()
	if reg.RegisteredAt.IsZero() {
		reg.RegisteredAt = time.Now().UTC()
	}

	if _, err := s.c.InsertOne(ctx, reg); err != nil {
		if wafflemongo.IsDup(err) {
			if strings.Contains(err.Error(), IndexPaymentRef) {
				return models.EventRegistration{}, ErrPaymentRefUsed
			}
			return models.EventRegistration{}, ErrDuplicateRegistration
		}
		return models.EventRegistration{}, err
	}
	return reg, nil
}

// GetByID loads a registration. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.EventRegistration, error) {
	var reg models.EventRegistration
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&reg); err != nil {
		return nil, err
	}
	return &reg, nil
}

// IsRegistered reports whether the user holds a registered row for the event.
func (s *Store) IsRegistered(ctx context.Context, userEmail string, eventID primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{
		"user_email": userEmail,
		"event_id":   eventID,
		"status":     models.RegistrationRegistered,
	}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// PaymentRefUsed reports whether any registration, in any status, references ref.
func (s *Store) PaymentRefUsed(ctx context.Context, ref string) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"payment_ref": ref}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CountRegistered returns the number of registered rows for the event.
func (s *Store) CountRegistered(ctx context.Context, eventID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"event_id": eventID, "status": models.RegistrationRegistered})
}

// Cancel moves a registered row to cancelled. Returns mongo.ErrNoDocuments
// when no registered row has that id.
func (s *Store) Cancel(ctx context.Context, id primitive.ObjectID, at time.Time) (*models.EventRegistration, error) {
	var reg models.EventRegistration
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": models.RegistrationRegistered},
		bson.M{"$set": bson.M{"status": models.RegistrationCancelled, "cancelled_at": at}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&reg)
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// ListByUser returns a user's registrations in any status, newest first.
func (s *Store) ListByUser(ctx context.Context, userEmail string) ([]models.EventRegistration, error) {
	cur, err := s.c.Find(ctx,
		bson.M{"user_email": userEmail},
		options.Find().SetSort(bson.D{{Key: "registered_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.EventRegistration{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
