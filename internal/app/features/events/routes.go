// internal/app/features/events/routes.go
package events

import (
	"github.com/dalemusser/clubsphere/internal/app/system/auth"
	"github.com/dalemusser/clubsphere/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the event endpoints. Typically: r.Mount("/api/events", events.Routes(...))
//
// Creating and editing an event requires owning its club (or being an
// admin); that check happens in the handlers once the club is loaded.
func Routes(h *Handler, am *auth.Middleware, az *authz.Authority) chi.Router {
	r := chi.NewRouter()

	r.Get("/{id}", h.ServeGet)

	r.Group(func(pr chi.Router) {
		pr.Use(am.RequirePrincipal)
		pr.Use(az.Require(authz.RoleMember))

		pr.Post("/", h.HandleCreate)
		pr.Patch("/{id}", h.HandleUpdate)
	})

	return r
}
