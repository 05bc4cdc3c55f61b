// internal/domain/models/payment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment types.
const (
	PaymentTypeMembership = "membership"
	PaymentTypeEvent      = "event"
)

// Payment status values. A payment moves pending -> completed (or
// pending -> failed) and is never deleted.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

// IsValidPaymentType reports whether t names a payable resource kind.
func IsValidPaymentType(t string) bool {
	return t == PaymentTypeMembership || t == PaymentTypeEvent
}

// Payment records one payment intent. TargetID is a club ID for membership
// payments and an event ID for event payments. Amount is in minor units of
// Currency. ProcessorRef is the processor's intent id and is unique.
type Payment struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserEmail    string             `bson:"user_email" json:"userEmail"`
	Type         string             `bson:"type" json:"type"`
	TargetID     primitive.ObjectID `bson:"target_id" json:"targetId"`
	Amount       int64              `bson:"amount" json:"amount"`
	Currency     string             `bson:"currency" json:"currency"`
	ProcessorRef string             `bson:"processor_ref" json:"processorRef"`
	Status       string             `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	CompletedAt  *time.Time         `bson:"completed_at,omitempty" json:"completedAt,omitempty"`
	FailedAt     *time.Time         `bson:"failed_at,omitempty" json:"failedAt,omitempty"`
}
