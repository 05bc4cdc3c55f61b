// internal/app/features/events/edit.go
package events

import (
	"net/http"

	eventstore "github.com/dalemusser/clubsphere/internal/app/store/events"
	"github.com/dalemusser/clubsphere/internal/app/system/apperr"
	"github.com/dalemusser/clubsphere/internal/app/system/auth"
	"github.com/dalemusser/clubsphere/internal/app/system/authz"
	"github.com/dalemusser/clubsphere/internal/app/system/gates"
	"github.com/dalemusser/clubsphere/internal/app/system/respond"
	"github.com/dalemusser/clubsphere/internal/app/system/timeouts"
)

// HandleUpdate handles PATCH /{id}. The owner of the event's club or an
// admin may edit it.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.CurrentPrincipal(r)
	if !ok {
		respond.Error(w, r, h.Log, apperr.New(apperr.Unauthenticated, "authentication required"))
		return
	}
	role, _ := authz.RoleFrom(r)

	id, err := eventIDParam(r)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	var in eventInput
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

	ev, err := h.Gate.Event(ctx, id)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	owner, err := h.Gate.EventOwner(ctx, ev)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	if err := gates.RequireOwnedOrAdmin(p, role, owner); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	updated, err := h.Events.Update(ctx, id, eventstore.Update{
		Title:        in.Title,
		Description:  in.Description,
		EventDate:    in.EventDate,
		Location:     in.Location,
		IsPaid:       in.IsPaid,
		FeeCents:     in.FeeCents,
		MaxAttendees: in.MaxAttendees,
	})
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, updated)
}
