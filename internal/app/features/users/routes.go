// internal/app/features/users/routes.go
package users

import (
	"github.com/dalemusser/clubsphere/internal/app/system/auth"
	"github.com/dalemusser/clubsphere/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the user endpoints. Typically: r.Mount("/api/users", users.Routes(...))
//
// Registration and profile only need a verified principal; the user list and
// role changes are admin-only.
func Routes(h *Handler, am *auth.Middleware, az *authz.Authority) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(am.RequirePrincipal)

		pr.Post("/register", h.HandleRegister)
		pr.Get("/profile", h.ServeProfile)

		pr.Group(func(ar chi.Router) {
			ar.Use(az.Require(authz.RoleAdmin))
			ar.Get("/", h.ServeList)
			ar.Patch("/role/{email}", h.HandleSetRole)
		})
	})

	return r
}
