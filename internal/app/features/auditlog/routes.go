// internal/app/features/auditlog/routes.go
package auditlog

import (
	"github.com/dalemusser/clubsphere/internal/app/system/auth"
	"github.com/dalemusser/clubsphere/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all audit log routes under the path where this
// router is mounted (typically "/api/audit" from bootstrap).
//
// Access is restricted to admins.
func Routes(h *Handler, am *auth.Middleware, az *authz.Authority) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(am.RequirePrincipal)
		pr.Use(az.Require(authz.RoleAdmin))

		pr.Get("/", h.ServeList)
	})

	return r
}
