// internal/app/features/users/profile.go
package users

import (
	"errors"
	"net/http"

	"github.com/dalemusser/clubsphere/internal/app/system/apperr"
	"github.com/dalemusser/clubsphere/internal/app/system/auth"
	"github.com/dalemusser/clubsphere/internal/app/system/respond"
	"github.com/dalemusser/clubsphere/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
)

// ServeProfile handles GET /profile: the caller's own user record.
func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.CurrentPrincipal(r)
	if !ok {
		respond.Error(w, r, h.Log, apperr.New(apperr.Unauthenticated, "authentication required"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, p.Email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		respond.Error(w, r, h.Log, apperr.New(apperr.NotFound, "user not registered"))
		return
	}
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, u)
}

// ServeList handles GET / (admin): every user, newest first.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	list, err := h.Users.List(ctx)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, list)
}
