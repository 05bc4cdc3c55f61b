// internal/app/features/payments/routes.go
package payments

import (
	"github.com/dalemusser/clubsphere/internal/app/system/auth"
	"github.com/dalemusser/clubsphere/internal/app/system/authz"
	"github.com/dalemusser/clubsphere/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the payment endpoints. Typically:
// r.Mount("/api/payments", payments.Routes(...))
//
// The webhook is authenticated by the processor's signature, not by a
// bearer token.
func Routes(h *Handler, am *auth.Middleware, az *authz.Authority, limiter *ratelimit.Limiter) chi.Router {
	r := chi.NewRouter()

	r.Post("/webhook", h.HandleWebhook)
	r.Get("/config", h.ServeConfig)

	r.Group(func(pr chi.Router) {
		pr.Use(am.RequirePrincipal)
		pr.Use(az.Require(authz.RoleMember))

		pr.With(limiter.Middleware).Post("/create-intent", h.HandleCreateIntent)
		pr.With(limiter.Middleware).Post("/confirm", h.HandleConfirm)
		pr.Get("/my-payments", h.ServeMine)

		pr.With(az.Require(authz.RoleAdmin)).Get("/all", h.ServeAll)
	})

	return r
}
