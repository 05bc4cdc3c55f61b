// internal/app/features/registrations/routes.go
package registrations

import (
	"github.com/dalemusser/clubsphere/internal/app/system/auth"
	"github.com/dalemusser/clubsphere/internal/app/system/authz"
	"github.com/dalemusser/clubsphere/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the registration endpoints. Typically:
// r.Mount("/api/event-registrations", registrations.Routes(...))
func Routes(h *Handler, am *auth.Middleware, az *authz.Authority, limiter *ratelimit.Limiter) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(am.RequirePrincipal)
		pr.Use(az.Require(authz.RoleMember))

		pr.With(limiter.Middleware).Post("/register", h.HandleRegister)
		pr.Get("/check/{eventId}", h.ServeCheck)
		pr.Get("/my-registrations", h.ServeMine)
		pr.Delete("/{id}", h.HandleCancel)
	})

	return r
}
