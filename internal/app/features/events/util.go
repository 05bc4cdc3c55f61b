// internal/app/features/events/util.go
package events

import (
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/clubsphere/internal/app/system/apperr"
	"github.com/dalemusser/clubsphere/internal/app/system/htmlsanitize"
	"github.com/dalemusser/clubsphere/internal/app/system/normalize"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// eventInput is the JSON body for create and update. ClubID is ignored on
// update: an event never moves between clubs.
type eventInput struct {
	ClubID       string    `json:"clubId"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	EventDate    time.Time `json:"eventDate"`
	Location     string    `json:"location"`
	IsPaid       bool      `json:"isPaid"`
	FeeCents     int64     `json:"feeCents"`
	MaxAttendees *int64    `json:"maxAttendees"`
}

// clean sanitizes the text fields and validates the fee and capacity. An
// unpaid event always carries a zero fee.
func (in *eventInput) clean() error {
	in.Title = htmlsanitize.PlainText(normalize.Name(in.Title))
	in.Description = htmlsanitize.Sanitize(in.Description)
	in.Location = htmlsanitize.PlainText(strings.TrimSpace(in.Location))
	if in.Title == "" {
		return apperr.New(apperr.InvalidInput, "title is required")
	}
	if in.IsPaid && in.FeeCents <= 0 {
		return apperr.New(apperr.InvalidAmount, "a paid event needs a positive feeCents")
	}
	if !in.IsPaid {
		in.FeeCents = 0
	}
	if in.MaxAttendees != nil && *in.MaxAttendees <= 0 {
		return apperr.New(apperr.InvalidInput, "maxAttendees must be positive")
	}
	if !in.EventDate.IsZero() {
		in.EventDate = in.EventDate.UTC()
	}
	return nil
}

func eventIDParam(r *http.Request) (primitive.ObjectID, error) {
	id, ok := normalize.ObjectID(chi.URLParam(r, "id"))
	if !ok {
		return primitive.NilObjectID, apperr.New(apperr.InvalidInput, "invalid event id")
	}
	return id, nil
}
