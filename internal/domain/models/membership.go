// internal/domain/models/membership.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Membership status values.
//
// At most one membership per (user_email, club_id) may be MembershipActive;
// the store enforces this with a partial unique index. Cancelled and expired
// rows are kept as history and never block a new join.
const (
	MembershipPendingPayment = "pendingPayment"
	MembershipActive         = "active"
	MembershipCancelled      = "cancelled"
	MembershipExpired        = "expired"
)

// Membership links a user to a club. PaymentRef, when set, is the processor
// reference of the completed payment that activated it.
type Membership struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserEmail   string             `bson:"user_email" json:"userEmail"`
	ClubID      primitive.ObjectID `bson:"club_id" json:"clubId"`
	Status      string             `bson:"status" json:"status"`
	PaymentRef  *string            `bson:"payment_ref,omitempty" json:"paymentRef,omitempty"`
	JoinedAt    time.Time          `bson:"joined_at" json:"joinedAt"`
	CancelledAt *time.Time         `bson:"cancelled_at,omitempty" json:"cancelledAt,omitempty"`
}
