// internal/app/bootstrap/routes.go
package bootstrap

import (
	"errors"
	"net/http"

	auditfeature "github.com/dalemusser/clubsphere/internal/app/features/auditlog"
	clubsfeature "github.com/dalemusser/clubsphere/internal/app/features/clubs"
	eventsfeature "github.com/dalemusser/clubsphere/internal/app/features/events"
	healthfeature "github.com/dalemusser/clubsphere/internal/app/features/health"
	membershipsfeature "github.com/dalemusser/clubsphere/internal/app/features/memberships"
	paymentsfeature "github.com/dalemusser/clubsphere/internal/app/features/payments"
	registrationsfeature "github.com/dalemusser/clubsphere/internal/app/features/registrations"
	usersfeature "github.com/dalemusser/clubsphere/internal/app/features/users"
	"github.com/dalemusser/clubsphere/internal/app/store/audit"
	clubstore "github.com/dalemusser/clubsphere/internal/app/store/clubs"
	eventstore "github.com/dalemusser/clubsphere/internal/app/store/events"
	membershipstore "github.com/dalemusser/clubsphere/internal/app/store/memberships"
	paymentstore "github.com/dalemusser/clubsphere/internal/app/store/payments"
	registrationstore "github.com/dalemusser/clubsphere/internal/app/store/registrations"
	userstore "github.com/dalemusser/clubsphere/internal/app/store/users"
	"github.com/dalemusser/clubsphere/internal/app/system/apperr"
	"github.com/dalemusser/clubsphere/internal/app/system/auditlog"
	"github.com/dalemusser/clubsphere/internal/app/system/auth"
	"github.com/dalemusser/clubsphere/internal/app/system/authz"
	"github.com/dalemusser/clubsphere/internal/app/system/capacity"
	"github.com/dalemusser/clubsphere/internal/app/system/gates"
	"github.com/dalemusser/clubsphere/internal/app/system/ledger"
	"github.com/dalemusser/clubsphere/internal/app/system/lifecycle"
	"github.com/dalemusser/clubsphere/internal/app/system/processor"
	"github.com/dalemusser/clubsphere/internal/app/system/ratelimit"
	"github.com/dalemusser/clubsphere/internal/app/system/respond"
	"github.com/dalemusser/clubsphere/internal/app/system/tasks"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. ClubSphere builds its stores and the
// lifecycle engine once, starts the payment expiry job, and mounts one JSON
// router per resource under /api.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	if deps.Runtime == nil || deps.Runtime.Verifier == nil {
		return nil, errors.New("build handler: identity verifier not initialised")
	}
	db := deps.MongoDatabase

	// Stores
	users := userstore.New(db)
	clubs := clubstore.New(db)
	events := eventstore.New(db)
	memberships := membershipstore.New(db)
	regs := registrationstore.New(db)
	auditStore := audit.New(db)

	auditLog := auditlog.New(auditStore, logger, auditlog.Config{
		Lifecycle: appCfg.AuditLogLifecycle,
		Payment:   appCfg.AuditLogPayment,
		Admin:     appCfg.AuditLogAdmin,
	})

	// Domain services
	authority := authz.NewAuthority(users, logger)
	gate := gates.New(clubs, events)
	proc := processor.NewStripe(appCfg.StripeSecretKey, appCfg.StripeWebhookSecret, nil)
	payLedger := ledger.New(paymentstore.New(db), proc, appCfg.Currency, logger)
	engine := lifecycle.New(lifecycle.Deps{
		Gate:          gate,
		Ledger:        payLedger,
		Capacity:      capacity.New(regs),
		Memberships:   memberships,
		Registrations: regs,
	}, logger)

	// Background jobs
	runner := tasks.NewRunner(logger,
		tasks.PaymentExpiryJob(payLedger, auditLog, logger, appCfg.PaymentSweepInterval, appCfg.PaymentPendingTTL),
	)
	runner.Start()
	deps.Runtime.runner = runner

	limiter := ratelimit.New(appCfg.WriteRatePerMinute, appCfg.WriteBurst)
	deps.Runtime.limiter = limiter

	am := auth.NewMiddleware(deps.Runtime.Verifier, logger)

	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: appCfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		ExposedHeaders: []string{"Retry-After"},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respond.Error(w, r, logger, apperr.New(apperr.NotFound, "route not found"))
	})

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Route("/api", func(api chi.Router) {
		// Users and roles
		usersHandler := usersfeature.NewHandler(users, authority, auditLog, logger)
		api.Mount("/users", usersfeature.Routes(usersHandler, am, authority))

		// Clubs and events
		clubsHandler := clubsfeature.NewHandler(clubs, events, memberships, auditLog, logger)
		api.Mount("/clubs", clubsfeature.Routes(clubsHandler, am, authority))

		eventsHandler := eventsfeature.NewHandler(gate, events, regs, logger)
		api.Mount("/events", eventsfeature.Routes(eventsHandler, am, authority))

		// Membership and registration lifecycle
		membershipsHandler := membershipsfeature.NewHandler(engine, memberships, auditLog, logger)
		api.Mount("/memberships", membershipsfeature.Routes(membershipsHandler, am, authority, limiter))

		regsHandler := registrationsfeature.NewHandler(engine, regs, auditLog, logger)
		api.Mount("/event-registrations", registrationsfeature.Routes(regsHandler, am, authority, limiter))

		// Payments, including the processor webhook
		paymentsHandler := paymentsfeature.NewHandler(payLedger, gate, proc, appCfg.StripePublishableKey, auditLog, logger)
		api.Mount("/payments", paymentsfeature.Routes(paymentsHandler, am, authority, limiter))

		// Audit trail (admin)
		auditHandler := auditfeature.NewHandler(auditStore, logger)
		api.Mount("/audit", auditfeature.Routes(auditHandler, am, authority))
	})

	logger.Info("routes mounted",
		zap.String("env", coreCfg.Env),
		zap.Strings("cors_origins", appCfg.CORSAllowedOrigins),
	)
	return r, nil
}
