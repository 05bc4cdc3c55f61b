// internal/app/features/memberships/join.go
package memberships

import (
	"net/http"
	"strings"

	"github.com/dalemusser/clubsphere/internal/app/system/apperr"
	"github.com/dalemusser/clubsphere/internal/app/system/auth"
	"github.com/dalemusser/clubsphere/internal/app/system/normalize"
	"github.com/dalemusser/clubsphere/internal/app/system/respond"
	"github.com/dalemusser/clubsphere/internal/app/system/timeouts"
)

type joinRequest struct {
	ClubID     string `json:"clubId"`
	PaymentRef string `json:"paymentRef"`
}

type joinResponse struct {
	MembershipID string `json:"membershipId"`
	Status       string `json:"status"`
}

// HandleJoin handles POST /join. A paid club needs paymentRef to name the
// caller's completed membership payment for that club.
func (h *Handler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.CurrentPrincipal(r)
	if !ok {
		respond.Error(w, r, h.Log, apperr.New(apperr.Unauthenticated, "authentication required"))
		return
	}

	var req joinRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	clubID, ok := normalize.ObjectID(req.ClubID)
	if !ok {
		respond.Error(w, r, h.Log, apperr.New(apperr.InvalidInput, "invalid clubId"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	m, err := h.Engine.Join(ctx, p.Email, clubID, strings.TrimSpace(req.PaymentRef))
	if err != nil {
		h.AuditLog.MembershipJoinRejected(ctx, r, p.Email, clubID.Hex(), err)
		respond.Error(w, r, h.Log, err)
		return
	}

	h.AuditLog.MembershipJoined(ctx, r, m)
	respond.JSON(w, http.StatusCreated, joinResponse{MembershipID: m.ID.Hex(), Status: m.Status})
}
