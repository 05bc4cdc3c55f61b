// internal/app/features/payments/handler.go
package payments

import (
	"github.com/dalemusser/clubsphere/internal/app/system/auditlog"
	"github.com/dalemusser/clubsphere/internal/app/system/gates"
	"github.com/dalemusser/clubsphere/internal/app/system/ledger"
	"github.com/dalemusser/clubsphere/internal/app/system/processor"
	"go.uber.org/zap"
)

// Handler serves the payment endpoints and the processor webhook.
type Handler struct {
	Ledger         *ledger.Ledger
	Gate           *gates.Gate
	Processor      processor.Processor
	PublishableKey string
	AuditLog       *auditlog.Logger
	Log            *zap.Logger
}

// NewHandler constructs a payments Handler. publishableKey is handed to
// clients so they can complete intents with the processor directly.
func NewHandler(l *ledger.Ledger, gate *gates.Gate, proc processor.Processor, publishableKey string, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Ledger:         l,
		Gate:           gate,
		Processor:      proc,
		PublishableKey: publishableKey,
		AuditLog:       audit,
		Log:            logger,
	}
}
