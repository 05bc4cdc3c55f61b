// internal/domain/models/event.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event belongs to a club and is owned transitively by the club's manager.
// FeeCents is always 0 when IsPaid is false. A nil MaxAttendees means the
// event has no capacity bound.
type Event struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClubID       primitive.ObjectID `bson:"club_id" json:"clubId"`
	Title        string             `bson:"title" json:"title"`
	TitleCI      string             `bson:"title_ci" json:"-"`
	Description  string             `bson:"description" json:"description"`
	EventDate    time.Time          `bson:"event_date" json:"eventDate"`
	Location     string             `bson:"location" json:"location"`
	IsPaid       bool               `bson:"is_paid" json:"isPaid"`
	FeeCents     int64              `bson:"fee_cents" json:"feeCents"`
	MaxAttendees *int64             `bson:"max_attendees,omitempty" json:"maxAttendees,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}

// RequiresPayment reports whether registering needs a completed payment.
func (e Event) RequiresPayment() bool {
	return e.IsPaid && e.FeeCents > 0
}
