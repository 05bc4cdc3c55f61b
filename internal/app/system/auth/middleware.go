// internal/app/system/auth/middleware.go
package auth

import (
	"net/http"
	"strings"

	"github.com/dalemusser/clubsphere/internal/app/system/apperr"
	"github.com/dalemusser/clubsphere/internal/app/system/respond"
	"go.uber.org/zap"
)

// Middleware resolves the request principal with a Verifier.
type Middleware struct {
	verifier Verifier
	log      *zap.Logger
}

// NewMiddleware returns principal-resolving middleware backed by v.
func NewMiddleware(v Verifier, logger *zap.Logger) *Middleware {
	return &Middleware{verifier: v, log: logger}
}

// bearerToken extracts the credential from "Authorization: Bearer <token>".
func bearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}

// RequirePrincipal verifies the bearer token and stores the principal in the
// request context. Requests without a valid token get 401.
func (m *Middleware) RequirePrincipal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentPrincipal(r); ok {
			next.ServeHTTP(w, r)
			return
		}

		token := bearerToken(r)
		if token == "" {
			respond.Error(w, r, m.log, apperr.New(apperr.Unauthenticated, "missing bearer token"))
			return
		}

		p, err := m.verifier.Verify(r.Context(), token)
		if err != nil {
			m.log.Debug("token verification failed", zap.Error(err))
			if !apperr.Is(err, apperr.Unauthenticated) {
				err = apperr.Wrap(apperr.Unauthenticated, "invalid or expired token", err)
			}
			respond.Error(w, r, m.log, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
	})
}
