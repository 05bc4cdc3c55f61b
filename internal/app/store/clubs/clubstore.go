package clubstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/clubsphere/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("clubs")}
}

var (
	errBadStatus    = errors.New(`status must be "pending"|"approved"|"rejected"`)
	errNegativeFee  = errors.New("fee must not be negative")
	errNameRequired = errors.New("name is required")
)

// Create inserts a club. A blank status defaults to pending.
func (s *Store) Create(ctx context.Context, c models.Club) (models.Club, error) {
	if c.Name == "" {
		return models.Club{}, errNameRequired
	}
	if c.FeeCents < 0 {
		return models.Club{}, errNegativeFee
	}
	if c.Status == "" {
		c.Status = models.ClubPending
	}
	if !models.IsValidClubStatus(c.Status) {
		return models.Club{}, errBadStatus
	}

	c.ID = primitive.NewObjectID()
	c.NameCI = text.Fold(c.Name)
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.Club{}, err
	}
	return c, nil
}

// GetByID loads a club. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Club, error) {
	var c models.Club
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Update holds the owner-editable club fields. Status and manager are not
// part of it.
type Update struct {
	Name        string
	Description string
	Category    string
	Location    string
	FeeCents    int64
}

// Update replaces the editable fields and returns the updated club.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) (*models.Club, error) {
	if upd.Name == "" {
		return nil, errNameRequired
	}
	if upd.FeeCents < 0 {
		return nil, errNegativeFee
	}
	var c models.Club
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"name":        upd.Name,
			"name_ci":     text.Fold(upd.Name),
			"description": upd.Description,
			"category":    upd.Category,
			"location":    upd.Location,
			"fee_cents":   upd.FeeCents,
			"updated_at":  time.Now().UTC(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// SetStatus moves the club to status and returns the updated club.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Club, error) {
	if !models.IsValidClubStatus(status) {
		return nil, errBadStatus
	}
	var c models.Club
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
