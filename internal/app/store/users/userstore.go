package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/clubsphere/internal/app/system/normalize"
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
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateEmail is returned when a user with the same email already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	errEmailRequired  = errors.New("email is required")
	errRoleRequired   = errors.New("role is required")
)

// GetByEmail looks up a user by exact email. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user. The caller chooses the role; the store only
// requires that one is set.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.Email = normalize.Email(u.Email)
	u.Name = normalize.Name(u.Name)
	if u.Email == "" {
		return models.User{}, errEmailRequired
	}
	if u.Role == "" {
		return models.User{}, errRoleRequired
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// SetRole changes the stored role of the user with the given email.
// Returns mongo.ErrNoDocuments if no such user exists.
func (s *Store) SetRole(ctx context.Context, email, role string) (*models.User, error) {
	var u models.User
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"email": normalize.Email(email)},
		bson.M{"$set": bson.M{"role": role, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// EnsureRole sets the role of the user with the given email, creating the
// user if it does not exist. created reports whether an insert happened.
func (s *Store) EnsureRole(ctx context.Context, email, role string) (created bool, err error) {
	email = normalize.Email(email)
	if email == "" {
		return false, errEmailRequired
	}
	now := time.Now().UTC()
	res, err := s.c.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{
			"$set":         bson.M{"role": role, "updated_at": now},
			"$setOnInsert": bson.M{"name": "", "created_at": now},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, err
	}
	return res.UpsertedCount > 0, nil
}

// List returns all users, newest first.
func (s *Store) List(ctx context.Context) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
