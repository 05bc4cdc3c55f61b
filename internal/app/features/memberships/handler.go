// internal/app/features/memberships/handler.go
package memberships

import (
	membershipstore "github.com/dalemusser/clubsphere/internal/app/store/memberships"
	"github.com/dalemusser/clubsphere/internal/app/system/auditlog"
	"github.com/dalemusser/clubsphere/internal/app/system/lifecycle"
	"go.uber.org/zap"
)

// Handler serves the membership endpoints.
type Handler struct {
	Engine      *lifecycle.Engine
	Memberships *membershipstore.Store
	AuditLog    *auditlog.Logger
	Log         *zap.Logger
}

// NewHandler constructs a memberships Handler.
func NewHandler(engine *lifecycle.Engine, memberships *membershipstore.Store, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Engine:      engine,
		Memberships: memberships,
		AuditLog:    audit,
		Log:         logger,
	}
}
