// internal/app/system/auth/principal.go
package auth

import (
	"context"
	"net/http"
	"time"
)

// Principal is the verified identity behind one request. It is produced by a
// Verifier and never persisted.
type Principal struct {
	Email       string
	SubjectID   string
	DisplayName string
	VerifiedAt  time.Time
}

type ctxKey string

const principalKey ctxKey = "principal"

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFrom returns the principal stored in ctx, if any.
func PrincipalFrom(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey).(*Principal)
	return p, ok && p != nil
}

// CurrentPrincipal returns the request's verified principal. ok is false
// when the request did not pass through RequirePrincipal.
func CurrentPrincipal(r *http.Request) (*Principal, bool) {
	return PrincipalFrom(r.Context())
}

// WithTestPrincipal injects a principal into r, bypassing token
// verification. For handler tests.
func WithTestPrincipal(r *http.Request, p *Principal) *http.Request {
	return r.WithContext(WithPrincipal(r.Context(), p))
}
