// internal/app/features/users/register.go
package users

import (
	"errors"
	"net/http"
	"strings"

	userstore "github.com/dalemusser/clubsphere/internal/app/store/users"
	"github.com/dalemusser/clubsphere/internal/app/system/apperr"
	"github.com/dalemusser/clubsphere/internal/app/system/auth"
	"github.com/dalemusser/clubsphere/internal/app/system/authz"
	"github.com/dalemusser/clubsphere/internal/app/system/htmlsanitize"
	"github.com/dalemusser/clubsphere/internal/app/system/respond"
	"github.com/dalemusser/clubsphere/internal/app/system/timeouts"
	"github.com/dalemusser/clubsphere/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type registerRequest struct {
	Name     string `json:"name"`
	PhotoURL string `json:"photoUrl"`
}

// HandleRegister handles POST /register. The first call for a principal
// creates a member account (201); later calls return the stored user (200).
// The email always comes from the verified principal.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.CurrentPrincipal(r)
	if !ok {
		respond.Error(w, r, h.Log, apperr.New(apperr.Unauthenticated, "authentication required"))
		return
	}

	var req registerRequest
	if r.ContentLength != 0 {
		if err := respond.DecodeJSON(r, &req); err != nil {
			respond.Error(w, r, h.Log, err)
			return
		}
	}
	name := htmlsanitize.PlainText(strings.TrimSpace(req.Name))
	if name == "" {
		name = htmlsanitize.PlainText(p.DisplayName)
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	existing, err := h.Users.GetByEmail(ctx, p.Email)
	if err == nil {
		respond.JSON(w, http.StatusOK, existing)
		return
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		respond.Error(w, r, h.Log, err)
		return
	}

	u, err := h.Users.Create(ctx, models.User{
		Email:    p.Email,
		Name:     name,
		PhotoURL: strings.TrimSpace(req.PhotoURL),
		Role:     string(authz.RoleMember),
	})
	if errors.Is(err, userstore.ErrDuplicateEmail) {
		// A concurrent register for the same principal won the insert.
		existing, err := h.Users.GetByEmail(ctx, p.Email)
		if err != nil {
			respond.Error(w, r, h.Log, err)
			return
		}
		respond.JSON(w, http.StatusOK, existing)
		return
	}
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	h.Log.Info("user registered", zap.String("email", u.Email))
	respond.JSON(w, http.StatusCreated, u)
}
