// internal/app/features/registrations/manage.go
package registrations

import (
	"net/http"

	"github.com/dalemusser/clubsphere/internal/app/system/apperr"
	"github.com/dalemusser/clubsphere/internal/app/system/auth"
	"github.com/dalemusser/clubsphere/internal/app/system/normalize"
	"github.com/dalemusser/clubsphere/internal/app/system/respond"
	"github.com/dalemusser/clubsphere/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
)

// ServeCheck handles GET /check/{eventId}.
func (h *Handler) ServeCheck(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.CurrentPrincipal(r)
	if !ok {
		respond.Error(w, r, h.Log, apperr.New(apperr.Unauthenticated, "authentication required"))
		return
	}
	eventID, ok := normalize.ObjectID(chi.URLParam(r, "eventId"))
	if !ok {
		respond.Error(w, r, h.Log, apperr.New(apperr.InvalidInput, "invalid event id"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	registered, err := h.Engine.IsRegistered(ctx, p.Email, eventID)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]bool{"isRegistered": registered})
}

// HandleCancel handles DELETE /{id} for the caller's own registration.
func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.CurrentPrincipal(r)
	if !ok {
		respond.Error(w, r, h.Log, apperr.New(apperr.Unauthenticated, "authentication required"))
		return
	}
	id, ok := normalize.ObjectID(chi.URLParam(r, "id"))
	if !ok {
		respond.Error(w, r, h.Log, apperr.New(apperr.InvalidInput, "invalid registration id"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	reg, changed, err := h.Engine.CancelRegistration(ctx, p.Email, id)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	if changed {
		h.AuditLog.RegistrationCancelled(ctx, r, reg)
	}
	respond.JSON(w, http.StatusOK, reg)
}

// ServeMine handles GET /my-registrations.
func (h *Handler) ServeMine(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.CurrentPrincipal(r)
	if !ok {
		respond.Error(w, r, h.Log, apperr.New(apperr.Unauthenticated, "authentication required"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	list, err := h.Registrations.ListByUser(ctx, p.Email)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, list)
}
