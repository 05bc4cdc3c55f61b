// internal/app/features/clubs/routes.go
package clubs

import (
	"github.com/dalemusser/clubsphere/internal/app/system/auth"
	"github.com/dalemusser/clubsphere/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the club endpoints. Typically: r.Mount("/api/clubs", clubs.Routes(...))
func Routes(h *Handler, am *auth.Middleware, az *authz.Authority) chi.Router {
	r := chi.NewRouter()

	// Public
	r.Get("/{id}", h.ServeGet)

	r.Group(func(pr chi.Router) {
		pr.Use(am.RequirePrincipal)

		pr.With(az.Require(authz.RoleClubManager)).Post("/", h.HandleCreate)
		// Ownership is checked inside the handler.
		pr.With(az.Require(authz.RoleMember)).Patch("/{id}", h.HandleUpdate)
		pr.With(az.Require(authz.RoleAdmin)).Patch("/admin/{id}/status", h.HandleSetStatus)
	})

	return r
}
