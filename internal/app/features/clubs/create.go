// internal/app/features/clubs/create.go
package clubs

import (
	"net/http"

	"github.com/dalemusser/clubsphere/internal/app/system/apperr"
	"github.com/dalemusser/clubsphere/internal/app/system/auth"
	"github.com/dalemusser/clubsphere/internal/app/system/respond"
	"github.com/dalemusser/clubsphere/internal/app/system/timeouts"
	"github.com/dalemusser/clubsphere/internal/domain/models"
	"go.uber.org/zap"
)

// HandleCreate handles POST /. The caller becomes the club's manager and the
// club starts out pending approval.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.CurrentPrincipal(r)
	if !ok {
		respond.Error(w, r, h.Log, apperr.New(apperr.Unauthenticated, "authentication required"))
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

	c, err := h.Clubs.Create(ctx, models.Club{
		Name:         in.Name,
		Description:  in.Description,
		Category:     in.Category,
		Location:     in.Location,
		FeeCents:     in.FeeCents,
		ManagerEmail: p.Email,
		Status:       models.ClubPending,
	})
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	h.Log.Info("club created", zap.String("club_id", c.ID.Hex()), zap.String("manager", p.Email))
	respond.JSON(w, http.StatusCreated, c)
}
