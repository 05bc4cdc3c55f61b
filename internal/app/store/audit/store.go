package audit

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Event categories
const (
	CategoryMembership   = "membership"
	CategoryRegistration = "registration"
	CategoryPayment      = "payment"
	CategoryAdmin        = "admin"
)

// Membership and registration event types
const (
	EventMembershipJoined       = "membership_joined"
	EventMembershipJoinRejected = "membership_join_rejected"
	EventMembershipCancelled    = "membership_cancelled"
	EventRegistrationCreated    = "registration_created"
	EventRegistrationRejected   = "registration_rejected"
	EventRegistrationCancelled  = "registration_cancelled"
)

// Payment event types
const (
	EventPaymentIntentCreated = "payment_intent_created"
	EventPaymentConfirmed     = "payment_confirmed"
	EventPaymentFailed        = "payment_failed"
	EventPaymentExpired       = "payment_expired"
)

// Admin event types
const (
	EventRoleChanged       = "role_changed"
	EventClubStatusChanged = "club_status_changed"
	EventBootstrapAdmin    = "bootstrap_admin"
)

// Event represents an audit event.
type Event struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`

	Category  string `bson:"category" json:"category"`
	EventType string `bson:"event_type" json:"eventType"`

	// ActorEmail performed the action; SubjectEmail is the affected user
	// when that differs (role changes).
	ActorEmail   string `bson:"actor_email,omitempty" json:"actorEmail,omitempty"`
	SubjectEmail string `bson:"subject_email,omitempty" json:"subjectEmail,omitempty"`

	// TargetID is the club, event, membership, registration or payment
	// the event is about, as hex or processor reference.
	TargetID string `bson:"target_id,omitempty" json:"targetId,omitempty"`

	IP        string `bson:"ip,omitempty" json:"ip,omitempty"`
	UserAgent string `bson:"user_agent,omitempty" json:"userAgent,omitempty"`

	Success       bool   `bson:"success" json:"success"`
	FailureReason string `bson:"failure_reason,omitempty" json:"failureReason,omitempty"`

	Details map[string]string `bson:"details,omitempty" json:"details,omitempty"`
}

// QueryFilter defines filters for querying audit events.
type QueryFilter struct {
	ActorEmail string
	Category   string
	EventType  string
	TargetID   string
	StartTime  *time.Time
	EndTime    *time.Time
	Limit      int64
	Offset     int64
}

// Store manages audit event records.
type Store struct {
	c *mongo.Collection
}

// New creates a new audit Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("audit_events")}
}

// Log records an audit event.
func (s *Store) Log(ctx context.Context, event Event) error {
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, event)
	return err
}

func (f QueryFilter) bson() bson.M {
	query := bson.M{}
	if f.ActorEmail != "" {
		query["actor_email"] = f.ActorEmail
	}
	if f.Category != "" {
		query["category"] = f.Category
	}
	if f.EventType != "" {
		query["event_type"] = f.EventType
	}
	if f.TargetID != "" {
		query["target_id"] = f.TargetID
	}
	if f.StartTime != nil || f.EndTime != nil {
		timeQuery := bson.M{}
		if f.StartTime != nil {
			timeQuery["$gte"] = *f.StartTime
		}
		if f.EndTime != nil {
			timeQuery["$lte"] = *f.EndTime
		}
		query["timestamp"] = timeQuery
	}
	return query
}

// Query retrieves audit events matching the filter, newest first.
// A zero Limit means 100.
func (s *Store) Query(ctx context.Context, filter QueryFilter) ([]Event, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit).
		SetSkip(filter.Offset)

	cursor, err := s.c.Find(ctx, filter.bson(), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	events := []Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// CountByFilter returns the count of events matching the filter.
func (s *Store) CountByFilter(ctx context.Context, filter QueryFilter) (int64, error) {
	return s.c.CountDocuments(ctx, filter.bson())
}
