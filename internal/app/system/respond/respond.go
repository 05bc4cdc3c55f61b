// Package respond writes JSON responses for the API features and maps the
// apperr taxonomy onto HTTP status codes.
package respond

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dalemusser/clubsphere/internal/app/system/apperr"
	"go.uber.org/zap"
)

// maxBodyBytes bounds request bodies decoded by DecodeJSON.
const maxBodyBytes = 1 << 20

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// JSON writes v as a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// StatusFor returns the HTTP status for a business error kind.
func StatusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.Unauthenticated:
		return http.StatusUnauthorized
	case apperr.Forbidden, apperr.Unapproved:
		return http.StatusForbidden
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.InvalidInput, apperr.InvalidAmount, apperr.AlreadyExists,
		apperr.PaymentRequired, apperr.EventFull:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Error writes err as a JSON error response.
//
// Business errors are reported with their kind and message. Anything else is
// logged with its cause and answered with a generic 500; the cause is never
// sent to the client.
func Error(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	var e *apperr.Error
	if errors.As(err, &e) {
		status := StatusFor(e.Kind)
		if logger != nil {
			logger.Info("request rejected",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("kind", string(e.Kind)),
				zap.String("message", e.Message))
		}
		JSON(w, status, errorBody{Error: string(e.Kind), Message: e.Message})
		return
	}

	if logger != nil {
		logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}
	JSON(w, http.StatusInternalServerError, errorBody{Error: "Internal", Message: "internal server error"})
}

// DecodeJSON decodes the request body into dst. A missing, oversized or
// malformed body is reported as apperr.InvalidInput.
func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return apperr.New(apperr.InvalidInput, "request body is required")
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.New(apperr.InvalidInput, "request body is required")
		}
		return apperr.Wrap(apperr.InvalidInput, "malformed request body", err)
	}
	return nil
}
