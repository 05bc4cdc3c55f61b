package eventstore

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
	return &Store{c: db.Collection("events")}
}

var (
	errTitleRequired   = errors.New("title is required")
	errClubRequired    = errors.New("club_id is required")
	errNegativeFee     = errors.New("fee must not be negative")
	errBadMaxAttendees = errors.New("max attendees must be positive")
)

// validate enforces the stored shape of an event: an unpaid event carries
// no fee.
func validate(e *models.Event) error {
	if e.Title == "" {
		return errTitleRequired
	}
	if e.FeeCents < 0 {
		return errNegativeFee
	}
	if e.MaxAttendees != nil && *e.MaxAttendees <= 0 {
		return errBadMaxAttendees
	}
	if !e.IsPaid {
		e.FeeCents = 0
	}
	return nil
}

// Create inserts an event. Club approval is checked by the caller.
func (s *Store) Create(ctx context.Context, e models.Event) (models.Event, error) {
	if e.ClubID.IsZero() {
		return models.Event{}, errClubRequired
	}
	if err := validate(&e); err != nil {
		return models.Event{}, err
	}

	e.ID = primitive.NewObjectID()
	e.TitleCI = text.Fold(e.Title)
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, e); err != nil {
		return models.Event{}, err
	}
	return e, nil
}

// GetByID loads an event. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	var e models.Event
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Update holds the editable event fields. The owning club never changes.
type Update struct {
	Title        string
	Description  string
	EventDate    time.Time
	Location     string
	IsPaid       bool
	FeeCents     int64
	MaxAttendees *int64
}

// Update replaces the editable fields and returns the updated event.
// A nil MaxAttendees removes the capacity bound.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) (*models.Event, error) {
	probe := models.Event{Title: upd.Title, IsPaid: upd.IsPaid, FeeCents: upd.FeeCents, MaxAttendees: upd.MaxAttendees}
	if err := validate(&probe); err != nil {
		return nil, err
	}

	set := bson.M{
		"title":       upd.Title,
		"title_ci":    text.Fold(upd.Title),
		"description": upd.Description,
		"event_date":  upd.EventDate,
		"location":    upd.Location,
		"is_paid":     upd.IsPaid,
		"fee_cents":   probe.FeeCents,
		"updated_at":  time.Now().UTC(),
	}
	update := bson.M{"$set": set}
	if upd.MaxAttendees != nil {
		set["max_attendees"] = *upd.MaxAttendees
	} else {
		update["$unset"] = bson.M{"max_attendees": ""}
	}

	var e models.Event
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&e)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// CountByClub returns the number of events hosted by a club.
func (s *Store) CountByClub(ctx context.Context, clubID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"club_id": clubID})
}
