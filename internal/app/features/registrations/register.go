// internal/app/features/registrations/register.go
package registrations

import (
	"net/http"
	"strings"

	"github.com/dalemusser/clubsphere/internal/app/system/apperr"
	"github.com/dalemusser/clubsphere/internal/app/system/auth"
	"github.com/dalemusser/clubsphere/internal/app/system/normalize"
	"github.com/dalemusser/clubsphere/internal/app/system/respond"
	"github.com/dalemusser/clubsphere/internal/app/system/timeouts"
)

type registerRequest struct {
	EventID    string `json:"eventId"`
	PaymentRef string `json:"paymentRef"`
}

type registerResponse struct {
	RegistrationID string `json:"registrationId"`
	Status         string `json:"status"`
}

// HandleRegister handles POST /register.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.CurrentPrincipal(r)
	if !ok {
		respond.Error(w, r, h.Log, apperr.New(apperr.Unauthenticated, "authentication required"))
		return
	}

	var req registerRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	eventID, ok := normalize.ObjectID(req.EventID)
	if !ok {
		respond.Error(w, r, h.Log, apperr.New(apperr.InvalidInput, "invalid eventId"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	reg, err := h.Engine.Register(ctx, p.Email, eventID, strings.TrimSpace(req.PaymentRef))
	if err != nil {
		h.AuditLog.RegistrationRejected(ctx, r, p.Email, eventID.Hex(), err)
		respond.Error(w, r, h.Log, err)
		return
	}

	h.AuditLog.RegistrationCreated(ctx, r, reg)
	respond.JSON(w, http.StatusCreated, registerResponse{RegistrationID: reg.ID.Hex(), Status: reg.Status})
}
