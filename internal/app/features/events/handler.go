// internal/app/features/events/handler.go
package events

import (
	eventstore "github.com/dalemusser/clubsphere/internal/app/store/events"
	registrationstore "github.com/dalemusser/clubsphere/internal/app/store/registrations"
	"github.com/dalemusser/clubsphere/internal/app/system/gates"
	"go.uber.org/zap"
)

// Handler serves the event endpoints.
type Handler struct {
	Gate          *gates.Gate
	Events        *eventstore.Store
	Registrations *registrationstore.Store
	Log           *zap.Logger
}

// NewHandler constructs an events Handler.
func NewHandler(gate *gates.Gate, events *eventstore.Store, regs *registrationstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Gate:          gate,
		Events:        events,
		Registrations: regs,
		Log:           logger,
	}
}
