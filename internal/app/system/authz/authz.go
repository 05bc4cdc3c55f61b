// internal/app/system/authz/authz.go
package authz

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/clubsphere/internal/app/system/apperr"
	"github.com/dalemusser/clubsphere/internal/app/system/auth"
	"github.com/dalemusser/clubsphere/internal/app/system/normalize"
	"github.com/dalemusser/clubsphere/internal/app/system/respond"
	"github.com/dalemusser/clubsphere/internal/app/system/timeouts"
	"github.com/dalemusser/clubsphere/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// UserStore is the slice of the user store the Authority needs.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	SetRole(ctx context.Context, email, role string) (*models.User, error)
}

// Authority loads stored roles and answers capability checks.
type Authority struct {
	users UserStore
	log   *zap.Logger
}

// NewAuthority returns an Authority backed by users.
func NewAuthority(users UserStore, logger *zap.Logger) *Authority {
	return &Authority{users: users, log: logger}
}

// RoleOf returns the stored role of the principal. It fails NotFound when
// the principal never registered.
func (a *Authority) RoleOf(ctx context.Context, p *auth.Principal) (Role, error) {
	if p == nil {
		return "", apperr.New(apperr.Unauthenticated, "no principal")
	}
	u, err := a.users.GetByEmail(ctx, p.Email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", apperr.New(apperr.NotFound, "user is not registered")
	}
	if err != nil {
		return "", err
	}
	return Role(u.Role), nil
}

// Authorize loads the principal's role and checks it against required.
func (a *Authority) Authorize(ctx context.Context, p *auth.Principal, required Role) (Role, error) {
	role, err := a.RoleOf(ctx, p)
	if err != nil {
		return "", err
	}
	if !role.Satisfies(required) {
		return role, apperr.Newf(apperr.Forbidden, "%s role required", required)
	}
	return role, nil
}

// SetRole changes targetEmail's role on behalf of caller. The caller must be
// an admin and may not target their own account; requested must name one of
// the enumerated roles.
func (a *Authority) SetRole(ctx context.Context, caller *auth.Principal, targetEmail, requested string) (*models.User, error) {
	if _, err := a.Authorize(ctx, caller, RoleAdmin); err != nil {
		return nil, err
	}
	targetEmail = normalize.Email(targetEmail)
	if targetEmail == caller.Email {
		return nil, apperr.New(apperr.Forbidden, "admins cannot change their own role")
	}
	role, ok := ParseRole(normalize.Role(requested))
	if !ok {
		return nil, apperr.Newf(apperr.InvalidInput, "invalid role %q", requested)
	}

	u, err := a.users.SetRole(ctx, targetEmail, string(role))
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.New(apperr.NotFound, "user not found")
	}
	if err != nil {
		return nil, err
	}
	a.log.Info("role changed",
		zap.String("actor", caller.Email),
		zap.String("target", targetEmail),
		zap.String("role", string(role)))
	return u, nil
}

type ctxKey string

const roleKey ctxKey = "role"

// WithRole returns a copy of ctx carrying the caller's resolved role.
func WithRole(ctx context.Context, role Role) context.Context {
	return context.WithValue(ctx, roleKey, role)
}

// RoleFrom returns the role resolved by Require for this request.
func RoleFrom(r *http.Request) (Role, bool) {
	role, ok := r.Context().Value(roleKey).(Role)
	return role, ok
}

// Require returns middleware that admits only principals whose stored role
// satisfies required, and records that role in the request context. It must
// run after auth.RequirePrincipal.
func (a *Authority) Require(required Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := auth.CurrentPrincipal(r)
			if !ok {
				respond.Error(w, r, a.log, apperr.New(apperr.Unauthenticated, "authentication required"))
				return
			}
			ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
			role, err := a.Authorize(ctx, p, required)
			cancel()
			if err != nil {
				respond.Error(w, r, a.log, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithRole(r.Context(), role)))
		})
	}
}
