// internal/app/features/payments/webhook.go
package payments

import (
	"errors"
	"io"
	"net/http"

	"github.com/dalemusser/clubsphere/internal/app/system/processor"
	"github.com/dalemusser/clubsphere/internal/app/system/respond"
	"github.com/dalemusser/clubsphere/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// maxWebhookBytes bounds a processor delivery.
const maxWebhookBytes = 64 << 10

// HandleWebhook handles POST /webhook. Once the signature verifies, every
// delivery is acknowledged with 200, including duplicates, unknown payment
// references and event types that carry no outcome. Only a storage failure
// answers 500, so the processor redelivers.
func (h *Handler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBytes))
	if err != nil {
		h.Log.Warn("webhook: read body failed", zap.Error(err))
		respond.JSON(w, http.StatusBadRequest, map[string]string{"error": "InvalidPayload", "message": "unreadable body"})
		return
	}

	n, err := h.Processor.ParseWebhook(payload, r.Header.Get(processor.SignatureHeader))
	if err != nil {
		if errors.Is(err, processor.ErrInvalidSignature) {
			h.Log.Warn("webhook: signature verification failed", zap.Error(err))
			respond.JSON(w, http.StatusBadRequest, map[string]string{"error": "InvalidSignature", "message": "signature verification failed"})
			return
		}
		h.Log.Warn("webhook: malformed delivery", zap.Error(err))
		respond.JSON(w, http.StatusBadRequest, map[string]string{"error": "InvalidPayload", "message": "malformed delivery"})
		return
	}
	if n == nil {
		respond.JSON(w, http.StatusOK, map[string]bool{"received": true})
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	payment, changed, err := h.Ledger.Apply(ctx, *n)
	if err != nil {
		h.Log.Error("webhook: apply notification failed",
			zap.String("ref", n.Ref),
			zap.String("event_id", n.EventID),
			zap.Error(err))
		respond.JSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal", "message": "internal server error"})
		return
	}
	if changed {
		h.AuditLog.PaymentSettled(ctx, r, payment, "webhook")
	}
	respond.JSON(w, http.StatusOK, map[string]bool{"received": true})
}
