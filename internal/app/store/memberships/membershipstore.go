// internal/app/store/memberships/membershipstore.go
package membershipstore

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

// Unique index names, created by indexes.EnsureAll. Insert uses them to tell
// which constraint a duplicate-key error came from.
const (
	IndexActiveUserClub = "uniq_memberships_active_user_club"
	IndexPaymentRef     = "uniq_memberships_payment_ref"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("memberships")}
}

var (
	// ErrDuplicateActive is returned when the user already has an active
	// membership in the club.
	ErrDuplicateActive = errors.New("user already has an active membership in this club")
	// ErrPaymentRefUsed is returned when the payment reference already
	// activated another membership.
	ErrPaymentRefUsed = errors.New("payment reference already used by another membership")

	errBadStatus = errors.New(`status must be "pendingPayment"|"active"|"cancelled"|"expired"`)
)

func isValidStatus(s string) bool {
	switch s {
	case models.MembershipPendingPayment, models.MembershipActive,
		models.MembershipCancelled, models.MembershipExpired:
		return true
	}
	return false
}

// Insert creates a membership. The partial unique indexes make this the
// single point where a duplicate active membership or a reused payment
// reference is rejected, even under concurrent requests.
func (s *Store) Insert(ctx context.Context, m models.Membership) (models.Membership, error) {
	if !isValidStatus(m.Status) {
		return models.Membership{}, errBadStatus
	}
	m.ID = primitive.NewObjectID()
	if m.JoinedAt.IsZero() {
		m.JoinedAt = time.Now().UTC()
	}

	if _, err := s.c.InsertOne(ctx, m); err != nil {
		if wafflemongo.IsDup(err) {
			if strings.Contains(err.Error(), IndexPaymentRef) {
				return models.Membership{}, ErrPaymentRefUsed
			}
			return models.Membership{}, ErrDuplicateActive
		}
		return models.Membership{}, err
	}
	return m, nil
}

// GetByID loads a membership. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Membership, error) {
	var m models.Membership
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// HasActive reports whether the user has an active membership in the club.
func (s *Store) HasActive(ctx context.Context, userEmail string, clubID primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{
		"user_email": userEmail,
		"club_id":    clubID,
		"status":     models.MembershipActive,
	}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// PaymentRefUsed reports whether any membership, in any status, references ref.
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

// Cancel moves a pendingPayment or active membership to cancelled. It
// returns mongo.ErrNoDocuments when no cancellable membership has that id;
// the caller decides whether that means absent or already cancelled.
func (s *Store) Cancel(ctx context.Context, id primitive.ObjectID, at time.Time) (*models.Membership, error) {
	var m models.Membership
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{
			"_id":    id,
			"status": bson.M{"$in": bson.A{models.MembershipPendingPayment, models.MembershipActive}},
		},
		bson.M{"$set": bson.M{"status": models.MembershipCancelled, "cancelled_at": at}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&m)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListByUser returns a user's memberships in any status, newest first.
func (s *Store) ListByUser(ctx context.Context, userEmail string) ([]models.Membership, error) {
	return s.find(ctx, bson.M{"user_email": userEmail})
}

// List returns all memberships, newest first.
func (s *Store) List(ctx context.Context) ([]models.Membership, error) {
	return s.find(ctx, bson.M{})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Membership, error) {
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "joined_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Membership{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CountActiveByClub returns the number of active members of a club.
func (s *Store) CountActiveByClub(ctx context.Context, clubID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"club_id": clubID, "status": models.MembershipActive})
}
