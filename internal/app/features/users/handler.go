// internal/app/features/users/handler.go
package users

import (
	userstore "github.com/dalemusser/clubsphere/internal/app/store/users"
	"github.com/dalemusser/clubsphere/internal/app/system/auditlog"
	"github.com/dalemusser/clubsphere/internal/app/system/authz"
	"go.uber.org/zap"
)

// Handler serves the user account endpoints.
type Handler struct {
	Users     *userstore.Store
	Authority *authz.Authority
	AuditLog  *auditlog.Logger
	Log       *zap.Logger
}

// NewHandler constructs a users Handler.
func NewHandler(users *userstore.Store, authority *authz.Authority, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:     users,
		Authority: authority,
		AuditLog:  audit,
		Log:       logger,
	}
}
