// internal/app/features/registrations/handler.go
package registrations

import (
	registrationstore "github.com/dalemusser/clubsphere/internal/app/store/registrations"
	"github.com/dalemusser/clubsphere/internal/app/system/auditlog"
	"github.com/dalemusser/clubsphere/internal/app/system/lifecycle"
	"go.uber.org/zap"
)

// Handler serves the event registration endpoints.
type Handler struct {
	Engine        *lifecycle.Engine
	Registrations *registrationstore.Store
	AuditLog      *auditlog.Logger
	Log           *zap.Logger
}

// NewHandler constructs a registrations Handler.
func NewHandler(engine *lifecycle.Engine, regs *registrationstore.Store, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Engine:        engine,
		Registrations: regs,
		AuditLog:      audit,
		Log:           logger,
	}
}
