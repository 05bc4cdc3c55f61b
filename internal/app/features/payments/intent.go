// internal/app/features/payments/intent.go
package payments

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/clubsphere/internal/app/system/apperr"
	"github.com/dalemusser/clubsphere/internal/app/system/auth"
	"github.com/dalemusser/clubsphere/internal/app/system/normalize"
	"github.com/dalemusser/clubsphere/internal/app/system/respond"
	"github.com/dalemusser/clubsphere/internal/app/system/timeouts"
	"github.com/dalemusser/clubsphere/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type intentRequest struct {
	Type     string `json:"type"`
	TargetID string `json:"targetId"`
}

type intentResponse struct {
	ProcessorRef string `json:"processorRef"`
	ClientSecret string `json:"clientSecret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

// amountFor reads the fee of the club or event being paid for. The target
// must belong to an approved club.
func (h *Handler) amountFor(ctx context.Context, typ string, targetID primitive.ObjectID) (int64, error) {
	switch typ {
	case models.PaymentTypeMembership:
		c, err := h.Gate.RequireApprovedClub(ctx, targetID)
		if err != nil {
			return 0, err
		}
		return c.FeeCents, nil
	case models.PaymentTypeEvent:
		ev, _, err := h.Gate.RequireEventInApprovedClub(ctx, targetID)
		if err != nil {
			return 0, err
		}
		if !ev.IsPaid {
			return 0, nil
		}
		return ev.FeeCents, nil
	default:
		return 0, apperr.Newf(apperr.InvalidInput, "invalid payment type %q", typ)
	}
}

// HandleCreateIntent handles POST /create-intent. The amount always comes
// from the stored club or event fee, never from the request.
func (h *Handler) HandleCreateIntent(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.CurrentPrincipal(r)
	if !ok {
		respond.Error(w, r, h.Log, apperr.New(apperr.Unauthenticated, "authentication required"))
		return
	}

	var req intentRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	typ := strings.TrimSpace(req.Type)
	targetID, ok := normalize.ObjectID(req.TargetID)
	if !ok {
		respond.Error(w, r, h.Log, apperr.New(apperr.InvalidInput, "invalid targetId"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	amount, err := h.amountFor(ctx, typ, targetID)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	intent, err := h.Ledger.CreateIntent(ctx, p.Email, typ, targetID, amount)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	h.AuditLog.PaymentIntentCreated(ctx, r, &intent.Payment)
	respond.JSON(w, http.StatusOK, intentResponse{
		ProcessorRef: intent.Payment.ProcessorRef,
		ClientSecret: intent.ClientSecret,
		Amount:       intent.Payment.Amount,
		Currency:     intent.Payment.Currency,
	})
}

type confirmRequest struct {
	ProcessorRef string `json:"processorRef"`
}

// HandleConfirm handles POST /confirm: the poll confirmation channel. The
// ledger asks the processor for the intent's outcome and records it.
func (h *Handler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.CurrentPrincipal(r)
	if !ok {
		respond.Error(w, r, h.Log, apperr.New(apperr.Unauthenticated, "authentication required"))
		return
	}

	var req confirmRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	ref := strings.TrimSpace(req.ProcessorRef)
	if ref == "" {
		respond.Error(w, r, h.Log, apperr.New(apperr.InvalidInput, "processorRef is required"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	payment, changed, err := h.Ledger.Poll(ctx, ref, p.Email)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	if changed {
		h.AuditLog.PaymentSettled(ctx, r, payment, "poll")
	}
	respond.JSON(w, http.StatusOK, payment)
}
