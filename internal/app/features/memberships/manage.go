// internal/app/features/memberships/manage.go
package memberships

import (
	"net/http"

	"github.com/dalemusser/clubsphere/internal/app/system/apperr"
	"github.com/dalemusser/clubsphere/internal/app/system/auth"
	"github.com/dalemusser/clubsphere/internal/app/system/normalize"
	"github.com/dalemusser/clubsphere/internal/app/system/respond"
	"github.com/dalemusser/clubsphere/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
)

// ServeCheck handles GET /check/{clubId}.
func (h *Handler) ServeCheck(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.CurrentPrincipal(r)
	if !ok {
		respond.Error(w, r, h.Log, apperr.New(apperr.Unauthenticated, "authentication required"))
		return
	}
	clubID, ok := normalize.ObjectID(chi.URLParam(r, "clubId"))
	if !ok {
		respond.Error(w, r, h.Log, apperr.New(apperr.InvalidInput, "invalid club id"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	isMember, err := h.Engine.IsMember(ctx, p.Email, clubID)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]bool{"isMember": isMember})
}

// HandleCancel handles DELETE /{id}. Only the membership's own user may
// cancel it; repeating the call is a no-op.
func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.CurrentPrincipal(r)
	if !ok {
		respond.Error(w, r, h.Log, apperr.New(apperr.Unauthenticated, "authentication required"))
		return
	}
	id, ok := normalize.ObjectID(chi.URLParam(r, "id"))
	if !ok {
		respond.Error(w, r, h.Log, apperr.New(apperr.InvalidInput, "invalid membership id"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	m, changed, err := h.Engine.CancelMembership(ctx, p.Email, id)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	if changed {
		h.AuditLog.MembershipCancelled(ctx, r, m)
	}
	respond.JSON(w, http.StatusOK, m)
}

// ServeMine handles GET /my-memberships: the caller's memberships in any
// status, newest first.
func (h *Handler) ServeMine(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.CurrentPrincipal(r)
	if !ok {
		respond.Error(w, r, h.Log, apperr.New(apperr.Unauthenticated, "authentication required"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	list, err := h.Memberships.ListByUser(ctx, p.Email)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, list)
}

// ServeList handles GET / (admin): every membership.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	list, err := h.Memberships.List(ctx)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, list)
}
