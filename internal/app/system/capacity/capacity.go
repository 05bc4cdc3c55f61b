// Package capacity bounds admission to events with a maximum attendee count.
//
// The count and the later insert are separate operations. Registrations that
// race at the boundary may overbook an event by the number of concurrent
// requests; once the bound is reached every sequential attempt is refused.
package capacity

import (
	"context"

	"github.com/dalemusser/clubsphere/internal/app/system/apperr"
	"github.com/dalemusser/clubsphere/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Counter counts active registrations for an event.
type Counter interface {
	CountRegistered(ctx context.Context, eventID primitive.ObjectID) (int64, error)
}

// Enforcer checks event capacity.
type Enforcer struct {
	regs Counter
}

// New returns an Enforcer counting with regs.
func New(regs Counter) *Enforcer {
	return &Enforcer{regs: regs}
}

// CheckAndReserve fails EventFull when the event already holds MaxAttendees
// registered attendees. Events without a bound always pass.
func (e *Enforcer) CheckAndReserve(ctx context.Context, ev *models.Event) error {
	if ev.MaxAttendees == nil {
		return nil
	}
	n, err := e.regs.CountRegistered(ctx, ev.ID)
	if err != nil {
		return err
	}
	if n >= *ev.MaxAttendees {
		return apperr.New(apperr.EventFull, "event is full")
	}
	return nil
}

// Remaining returns the number of open places, or nil when unbounded.
func (e *Enforcer) Remaining(ctx context.Context, ev *models.Event) (*int64, error) {
	if ev.MaxAttendees == nil {
		return nil, nil
	}
	n, err := e.regs.CountRegistered(ctx, ev.ID)
	if err != nil {
		return nil, err
	}
	left := *ev.MaxAttendees - n
	if left < 0 {
		left = 0
	}
	return &left, nil
}
