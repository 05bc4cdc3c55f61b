// internal/app/features/events/create.go
package events

import (
	"net/http"

	"github.com/dalemusser/clubsphere/internal/app/system/apperr"
	"github.com/dalemusser/clubsphere/internal/app/system/auth"
	"github.com/dalemusser/clubsphere/internal/app/system/authz"
	"github.com/dalemusser/clubsphere/internal/app/system/gates"
	"github.com/dalemusser/clubsphere/internal/app/system/normalize"
	"github.com/dalemusser/clubsphere/internal/app/system/respond"
	"github.com/dalemusser/clubsphere/internal/app/system/timeouts"
	"github.com/dalemusser/clubsphere/internal/domain/models"
	"go.uber.org/zap"
)

// HandleCreate handles POST /. The caller must own the club or be an admin,
// and the club must be approved.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.CurrentPrincipal(r)
	if !ok {
		respond.Error(w, r, h.Log, apperr.New(apperr.Unauthenticated, "authentication required"))
		return
	}
	role, _ := authz.RoleFrom(r)

	var in eventInput
	if err := respond.DecodeJSON(r, &in); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	clubID, ok := normalize.ObjectID(in.ClubID)
	if !ok {
		respond.Error(w, r, h.Log, apperr.New(apperr.InvalidInput, "invalid clubId"))
		return
	}
	if err := in.clean(); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	club, err := h.Gate.Club(ctx, clubID)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	if err := gates.RequireOwnedOrAdmin(p, role, club.ManagerEmail); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	if !club.IsApproved() {
		respond.Error(w, r, h.Log, apperr.New(apperr.Unapproved, "club is not approved"))
		return
	}

	ev, err := h.Events.Create(ctx, models.Event{
		ClubID:       clubID,
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

	h.Log.Info("event created", zap.String("event_id", ev.ID.Hex()), zap.String("club_id", clubID.Hex()))
	respond.JSON(w, http.StatusCreated, ev)
}
