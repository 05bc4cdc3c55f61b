// internal/app/features/auditlog/handler.go
package auditlog

import (
	"github.com/dalemusser/clubsphere/internal/app/store/audit"
	"go.uber.org/zap"
)

type Handler struct {
	Audit *audit.Store
	Log   *zap.Logger
}

// NewHandler constructs an Audit Log feature handler bound to
// the audit event store and logger.
func NewHandler(store *audit.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Audit: store,
		Log:   logger,
	}
}
