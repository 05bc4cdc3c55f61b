// internal/app/features/memberships/routes.go
package memberships

import (
	"github.com/dalemusser/clubsphere/internal/app/system/auth"
	"github.com/dalemusser/clubsphere/internal/app/system/authz"
	"github.com/dalemusser/clubsphere/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the membership endpoints. Typically:
// r.Mount("/api/memberships", memberships.Routes(...))
//
// Joining is rate limited per principal.
func Routes(h *Handler, am *auth.Middleware, az *authz.Authority, limiter *ratelimit.Limiter) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(am.RequirePrincipal)
		pr.Use(az.Require(authz.RoleMember))

		pr.With(limiter.Middleware).Post("/join", h.HandleJoin)
		pr.Get("/check/{clubId}", h.ServeCheck)
		pr.Get("/my-memberships", h.ServeMine)
		pr.Delete("/{id}", h.HandleCancel)

		pr.With(az.Require(authz.RoleAdmin)).Get("/", h.ServeList)
	})

	return r
}
