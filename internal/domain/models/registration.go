// internal/domain/models/registration.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Registration status values. At most one RegistrationRegistered row exists
// per (user_email, event_id).
const (
	RegistrationRegistered = "registered"
	RegistrationCancelled  = "cancelled"
)

// EventRegistration links a user to an event. ClubID is copied from the
// event at creation time so ownership checks need not load the event.
type EventRegistration struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserEmail    string             `bson:"user_email" json:"userEmail"`
	EventID      primitive.ObjectID `bson:"event_id" json:"eventId"`
	ClubID       primitive.ObjectID `bson:"club_id" json:"clubId"`
	Status       string             `bson:"status" json:"status"`
	PaymentRef   *string            `bson:"payment_ref,omitempty" json:"paymentRef,omitempty"`
	RegisteredAt time.Time          `bson:"registered_at" json:"registeredAt"`
	CancelledAt  *time.Time         `bson:"cancelled_at,omitempty" json:"cancelledAt,omitempty"`
}
