// internal/app/features/clubs/edit.go
package clubs

import (
	"net/http"

	clubstore "github.com/dalemusser/clubsphere/internal/app/store/clubs"
	"github.com/dalemusser/clubsphere/internal/app/system/apperr"
	"github.com/dalemusser/clubsphere/internal/app/system/auth"
	"github.com/dalemusser/clubsphere/internal/app/system/authz"
	"github.com/dalemusser/clubsphere/internal/app/system/gates"
	"github.com/dalemusser/clubsphere/internal/app/system/normalize"
	"github.com/dalemusser/clubsphere/internal/app/system/respond"
	"github.com/dalemusser/clubsphere/internal/app/system/timeouts"
	"github.com/dalemusser/clubsphere/internal/domain/models"
)

// HandleUpdate handles PATCH /{id}. Only the club's manager or an admin may
// edit it, and the status is never changed here.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.CurrentPrincipal(r)
	if !ok {
		respond.Error(w, r, h.Log, apperr.New(apperr.Unauthenticated, "authentication required"))
		return
	}
	role, _ := authz.RoleFrom(r)

	id, err := clubIDParam(r)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	var in clubInput
	if err := respond.DecodeJSON(r, &in); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	if err := in.clean(); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	c, err := h.loadClub(ctx, id)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	if err := gates.RequireOwnedOrAdmin(p, role, c.ManagerEmail); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	updated, err := h.Clubs.Update(ctx, id, clubstore.Update{
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Location:    in.Location,
		FeeCents:    in.FeeCents,
	})
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, updated)
}

type statusRequest struct {
	Status string `json:"status"`
}

// HandleSetStatus handles PATCH /admin/{id}/status (admin only).
func (h *Handler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.CurrentPrincipal(r)
	if !ok {
		respond.Error(w, r, h.Log, apperr.New(apperr.Unauthenticated, "authentication required"))
		return
	}

	id, err := clubIDParam(r)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	var req statusRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	status := normalize.Status(req.Status)
	if !models.IsValidClubStatus(status) {
		respond.Error(w, r, h.Log, apperr.Newf(apperr.InvalidInput, "invalid club status %q", req.Status))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	before, err := h.loadClub(ctx, id)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	updated, err := h.Clubs.SetStatus(ctx, id, status)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	h.AuditLog.ClubStatusChanged(ctx, r, p.Email, updated, before.Status)
	respond.JSON(w, http.StatusOK, updated)
}
