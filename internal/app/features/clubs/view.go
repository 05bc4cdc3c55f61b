// internal/app/features/clubs/view.go
package clubs

import (
	"net/http"

	"github.com/dalemusser/clubsphere/internal/app/system/respond"
	"github.com/dalemusser/clubsphere/internal/app/system/timeouts"
	"github.com/dalemusser/clubsphere/internal/domain/models"
)

// clubView is a club with its on-demand counts.
type clubView struct {
	*models.Club
	MemberCount int64 `json:"memberCount"`
	EventCount  int64 `json:"eventCount"`
}

// ServeGet handles GET /{id}. Counts are computed per request.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id, err := clubIDParam(r)
	if err != nil {
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
	members, err := h.Memberships.CountActiveByClub(ctx, id)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	events, err := h.Events.CountByClub(ctx, id)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	respond.JSON(w, http.StatusOK, clubView{Club: c, MemberCount: members, EventCount: events})
}
