// internal/app/features/users/role.go
package users

import (
	"net/http"

	"github.com/dalemusser/clubsphere/internal/app/system/apperr"
	"github.com/dalemusser/clubsphere/internal/app/system/auth"
	"github.com/dalemusser/clubsphere/internal/app/system/respond"
	"github.com/dalemusser/clubsphere/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
)

type roleRequest struct {
	Role string `json:"role"`
}

// HandleSetRole handles PATCH /role/{email}. Authority.SetRole enforces the
// admin requirement and forbids changing one's own role.
func (h *Handler) HandleSetRole(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.CurrentPrincipal(r)
	if !ok {
		respond.Error(w, r, h.Log, apperr.New(apperr.Unauthenticated, "authentication required"))
		return
	}

	var req roleRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	target := chi.URLParam(r, "email")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	oldRole := ""
	if before, err := h.Users.GetByEmail(ctx, target); err == nil {
		oldRole = before.Role
	}

	u, err := h.Authority.SetRole(ctx, p, target, req.Role)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	h.AuditLog.RoleChanged(ctx, r, p.Email, u.Email, oldRole, u.Role)
	respond.JSON(w, http.StatusOK, u)
}
