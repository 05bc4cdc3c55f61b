// internal/domain/models/club.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Club status values. Only an admin moves a club between them.
const (
	ClubPending  = "pending"
	ClubApproved = "approved"
	ClubRejected = "rejected"
)

// IsValidClubStatus reports whether s is one of the enumerated club statuses.
func IsValidClubStatus(s string) bool {
	switch s {
	case ClubPending, ClubApproved, ClubRejected:
		return true
	}
	return false
}

// Club is owned by the club manager whose email is ManagerEmail.
// FeeCents is the membership fee in minor units of the settlement currency.
type Club struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	NameCI       string             `bson:"name_ci" json:"-"`
	Description  string             `bson:"description" json:"description"`
	Category     string             `bson:"category" json:"category"`
	Location     string             `bson:"location" json:"location"`
	FeeCents     int64              `bson:"fee_cents" json:"feeCents"`
	ManagerEmail string             `bson:"manager_email" json:"managerEmail"`
	Status       string             `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}

// IsApproved reports whether the club may currently be joined or host events.
func (c Club) IsApproved() bool {
	return c.Status == ClubApproved
}
