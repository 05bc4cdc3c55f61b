// internal/app/features/payments/list.go
package payments

import (
	"net/http"

	"github.com/dalemusser/clubsphere/internal/app/system/apperr"
	"github.com/dalemusser/clubsphere/internal/app/system/auth"
	"github.com/dalemusser/clubsphere/internal/app/system/respond"
	"github.com/dalemusser/clubsphere/internal/app/system/timeouts"
)

// ServeMine handles GET /my-payments, newest first.
func (h *Handler) ServeMine(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.CurrentPrincipal(r)
	if !ok {
		respond.Error(w, r, h.Log, apperr.New(apperr.Unauthenticated, "authentication required"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	list, err := h.Ledger.ListByUser(ctx, p.Email)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, list)
}

// ServeAll handles GET /all (admin).
func (h *Handler) ServeAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	list, err := h.Ledger.List(ctx)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, list)
}

type configResponse struct {
	PublishableKey string `json:"publishableKey"`
	Currency       string `json:"currency"`
}

// ServeConfig handles GET /config.
func (h *Handler) ServeConfig(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, configResponse{
		PublishableKey: h.PublishableKey,
		Currency:       h.Ledger.Currency(),
	})
}
