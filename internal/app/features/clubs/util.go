// internal/app/features/clubs/util.go
package clubs

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/clubsphere/internal/app/system/apperr"
	"github.com/dalemusser/clubsphere/internal/app/system/htmlsanitize"
	"github.com/dalemusser/clubsphere/internal/app/system/normalize"
	"github.com/dalemusser/clubsphere/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// clubInput is the JSON body for create and update.
type clubInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Location    string `json:"location"`
	FeeCents    int64  `json:"feeCents"`
}

// clean sanitizes the free-text fields and validates the rest.
func (in *clubInput) clean() error {
	in.Name = htmlsanitize.PlainText(normalize.Name(in.Name))
	in.Description = htmlsanitize.Sanitize(in.Description)
	in.Category = htmlsanitize.PlainText(strings.TrimSpace(in.Category))
	in.Location = htmlsanitize.PlainText(strings.TrimSpace(in.Location))
	if in.Name == "" {
		return apperr.New(apperr.InvalidInput, "name is required")
	}
	if in.FeeCents < 0 {
		return apperr.New(apperr.InvalidInput, "feeCents must not be negative")
	}
	return nil
}

// clubIDParam parses the {id} URL parameter.
func clubIDParam(r *http.Request) (primitive.ObjectID, error) {
	id, ok := normalize.ObjectID(chi.URLParam(r, "id"))
	if !ok {
		return primitive.NilObjectID, apperr.New(apperr.InvalidInput, "invalid club id")
	}
	return id, nil
}

// loadClub returns the club or a NotFound error.
func (h *Handler) loadClub(ctx context.Context, id primitive.ObjectID) (*models.Club, error) {
	c, err := h.Clubs.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.New(apperr.NotFound, "club not found")
	}
	return c, err
}
