// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"

	"github.com/dalemusser/clubsphere/internal/app/store/audit"
	userstore "github.com/dalemusser/clubsphere/internal/app/store/users"
	"github.com/dalemusser/clubsphere/internal/app/system/auditlog"
	"github.com/dalemusser/clubsphere/internal/app/system/auth"
	"github.com/dalemusser/clubsphere/internal/app/system/authz"
	"github.com/dalemusser/clubsphere/internal/app/system/timeouts"
	"github.com/dalemusser/clubsphere/internal/app/system/tracing"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
//
// It applies timeout overrides, starts tracing, fetches the identity
// provider's signing keys and promotes the bootstrap admin.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.Runtime == nil {
		return errors.New("startup: runtime not initialised")
	}

	timeouts.Configure(timeouts.Config{
		Short:  appCfg.TimeoutShort,
		Medium: appCfg.TimeoutMedium,
		Long:   appCfg.TimeoutLong,
	})
	cur := timeouts.Current()
	logger.Info("storage timeouts",
		zap.Duration("short", cur.Short),
		zap.Duration("medium", cur.Medium),
		zap.Duration("long", cur.Long),
	)

	shutdownTracing, err := tracing.Setup(ctx, appCfg.OTELEndpoint, "clubsphere")
	if err != nil {
		logger.Error("tracing setup failed", zap.Error(err))
		return err
	}
	deps.Runtime.shutdownTracing = shutdownTracing
	if appCfg.OTELEndpoint != "" {
		logger.Info("tracing enabled", zap.String("endpoint", appCfg.OTELEndpoint))
	}

	// The key refresher outlives Startup's context, so it gets its own.
	verifier, stop, err := auth.NewFirebaseVerifier(context.Background(), appCfg.FirebaseProjectID, appCfg.IdentityJWKSURL, logger)
	if err != nil {
		logger.Error("identity verifier init failed", zap.Error(err))
		return err
	}
	deps.Runtime.Verifier = verifier
	deps.Runtime.stopJWKS = stop

	al := auditlog.New(audit.New(deps.MongoDatabase), logger, auditlog.Config{
		Lifecycle: appCfg.AuditLogLifecycle,
		Payment:   appCfg.AuditLogPayment,
		Admin:     appCfg.AuditLogAdmin,
	})
	return ensureBootstrapAdmin(ctx, userstore.New(deps.MongoDatabase), al, appCfg.BootstrapAdminEmail, logger)
}

// ensureBootstrapAdmin gives email the admin role, creating the user when
// needed. A blank email is a no-op.
func ensureBootstrapAdmin(ctx context.Context, users *userstore.Store, al *auditlog.Logger, email string, logger *zap.Logger) error {
	if email == "" {
		return nil
	}
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Short)
	defer cancel()

	created, err := users.EnsureRole(ctx, email, string(authz.RoleAdmin))
	if err != nil {
		logger.Error("bootstrap admin failed", zap.String("email", email), zap.Error(err))
		return err
	}
	al.BootstrapAdmin(ctx, email, created)
	logger.Info("bootstrap admin ensured", zap.String("email", email), zap.Bool("created", created))
	return nil
}
