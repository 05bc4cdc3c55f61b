// internal/app/features/clubs/handler.go
package clubs

import (
	clubstore "github.com/dalemusser/clubsphere/internal/app/store/clubs"
	eventstore "github.com/dalemusser/clubsphere/internal/app/store/events"
	membershipstore "github.com/dalemusser/clubsphere/internal/app/store/memberships"
	"github.com/dalemusser/clubsphere/internal/app/system/auditlog"
	"go.uber.org/zap"
)

// Handler serves the club endpoints.
type Handler struct {
	Clubs       *clubstore.Store
	Events      *eventstore.Store
	Memberships *membershipstore.Store
	AuditLog    *auditlog.Logger
	Log         *zap.Logger
}

// NewHandler constructs a clubs Handler.
func NewHandler(clubs *clubstore.Store, events *eventstore.Store, memberships *membershipstore.Store, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Clubs:       clubs,
		Events:      events,
		Memberships: memberships,
		AuditLog:    audit,
		Log:         logger,
	}
}
