// internal/app/features/events/view.go
package events

import (
	"net/http"

	"github.com/dalemusser/clubsphere/internal/app/system/respond"
	"github.com/dalemusser/clubsphere/internal/app/system/timeouts"
	"github.com/dalemusser/clubsphere/internal/domain/models"
)

// eventView is an event with its on-demand registration count.
type eventView struct {
	*models.Event
	RegistrationCount int64 `json:"registrationCount"`
}

// ServeGet handles GET /{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id, err := eventIDParam(r)
	if err != nil {
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
	n, err := h.Registrations.CountRegistered(ctx, id)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, eventView{Event: ev, RegistrationCount: n})
}
