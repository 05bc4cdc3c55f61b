// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/clubsphere/internal/app/system/auditlog"
	"github.com/dalemusser/clubsphere/internal/app/system/normalize"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for ClubSphere.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, stripe_secret_key, etc.
//   - Environment variables: CLUBSPHERE_MONGO_URI, CLUBSPHERE_STRIPE_SECRET_KEY, etc.
//   - Command-line flags: --mongo_uri, --stripe_secret_key, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "clubsphere", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},
	{Name: "mongo_connect_timeout", Default: "10s", Desc: "Timeout for the initial MongoDB connect and ping"},

	// Identity provider
	{Name: "firebase_project_id", Default: "", Desc: "Firebase project id (token audience)"},
	{Name: "identity_jwks_url", Default: "", Desc: "JWKS URL for ID token signing keys (blank: Google's published set)"},

	// Stripe
	{Name: "stripe_secret_key", Default: "", Desc: "Stripe secret API key"},
	{Name: "stripe_publishable_key", Default: "", Desc: "Stripe publishable key returned to clients"},
	{Name: "stripe_webhook_secret", Default: "", Desc: "Stripe webhook signing secret"},
	{Name: "currency", Default: "usd", Desc: "Settlement currency (ISO 4217)"},

	// Pending payment expiry
	{Name: "payment_pending_ttl", Default: "24h", Desc: "Pending payments older than this are marked failed"},
	{Name: "payment_sweep_interval", Default: "15m", Desc: "How often stale pending payments are swept"},

	// Admin bootstrap
	{Name: "bootstrap_admin_email", Default: "", Desc: "Email promoted (or created) as admin on startup"},

	// HTTP surface
	{Name: "cors_allowed_origins", Default: "*", Desc: "Comma-separated list of allowed CORS origins"},
	{Name: "write_rate_per_minute", Default: 30, Desc: "Per-user rate for join/register/payment writes"},
	{Name: "write_burst", Default: 10, Desc: "Burst allowance for rate-limited writes"},

	// Storage timeouts
	{Name: "timeout_short", Default: "", Desc: "Timeout for single-document operations (blank: 5s)"},
	{Name: "timeout_medium", Default: "", Desc: "Timeout for multi-step operations (blank: 10s)"},
	{Name: "timeout_long", Default: "", Desc: "Timeout for listings and reports (blank: 30s)"},

	// Audit logging settings
	{Name: "audit_log", Default: "all", Desc: "Default audit destination: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_lifecycle", Default: "", Desc: "Membership/registration audit destination (blank: audit_log)"},
	{Name: "audit_log_payment", Default: "", Desc: "Payment audit destination (blank: audit_log)"},
	{Name: "audit_log_admin", Default: "", Desc: "Admin audit destination (blank: audit_log)"},

	// Tracing
	{Name: "otel_endpoint", Default: "", Desc: "OTLP/HTTP trace endpoint URL (blank disables tracing)"},
}

// splitList parses a comma-separated config value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// orDefault returns v, or def when v is blank.
func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, CLUBSPHERE_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "CLUBSPHERE", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	auditDefault := orDefault(appValues.String("audit_log"), auditlog.ModeAll)

	appCfg := AppConfig{
		MongoURI:            appValues.String("mongo_uri"),
		MongoDatabase:       appValues.String("mongo_database"),
		MongoMaxPoolSize:    uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize:    uint64(appValues.Int("mongo_min_pool_size")),
		MongoConnectTimeout: appValues.Duration("mongo_connect_timeout", 10*time.Second),

		FirebaseProjectID: strings.TrimSpace(appValues.String("firebase_project_id")),
		IdentityJWKSURL:   strings.TrimSpace(appValues.String("identity_jwks_url")),

		StripeSecretKey:      appValues.String("stripe_secret_key"),
		StripePublishableKey: appValues.String("stripe_publishable_key"),
		StripeWebhookSecret:  appValues.String("stripe_webhook_secret"),
		Currency:             normalize.Currency(appValues.String("currency")),

		PaymentPendingTTL:    appValues.Duration("payment_pending_ttl", 24*time.Hour),
		PaymentSweepInterval: appValues.Duration("payment_sweep_interval", 15*time.Minute),

		BootstrapAdminEmail: strings.TrimSpace(appValues.String("bootstrap_admin_email")),

		CORSAllowedOrigins: splitList(appValues.String("cors_allowed_origins")),
		WriteRatePerMinute: appValues.Int("write_rate_per_minute"),
		WriteBurst:         appValues.Int("write_burst"),

		TimeoutShort:  appValues.Duration("timeout_short", 0),
		TimeoutMedium: appValues.Duration("timeout_medium", 0),
		TimeoutLong:   appValues.Duration("timeout_long", 0),

		AuditLogLifecycle: orDefault(appValues.String("audit_log_lifecycle"), auditDefault),
		AuditLogPayment:   orDefault(appValues.String("audit_log_payment"), auditDefault),
		AuditLogAdmin:     orDefault(appValues.String("audit_log_admin"), auditDefault),

		OTELEndpoint: strings.TrimSpace(appValues.String("otel_endpoint")),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// Every problem found is reported, not just the first.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	var errs []error

	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		errs = append(errs, fmt.Errorf("invalid MongoDB URI: %w", err))
	}
	if appCfg.MongoDatabase == "" {
		errs = append(errs, errors.New("mongo_database is required"))
	}
	if appCfg.MongoMinPoolSize > appCfg.MongoMaxPoolSize {
		errs = append(errs, errors.New("mongo_min_pool_size must not exceed mongo_max_pool_size"))
	}
	if appCfg.MongoConnectTimeout <= 0 {
		errs = append(errs, errors.New("mongo_connect_timeout must be positive"))
	}
	if appCfg.FirebaseProjectID == "" {
		errs = append(errs, errors.New("firebase_project_id is required"))
	}
	if appCfg.StripeSecretKey == "" {
		errs = append(errs, errors.New("stripe_secret_key is required"))
	}
	if appCfg.StripeWebhookSecret == "" {
		errs = append(errs, errors.New("stripe_webhook_secret is required"))
	}
	if !validCurrency(appCfg.Currency) {
		errs = append(errs, fmt.Errorf("currency %q is not a three-letter ISO 4217 code", appCfg.Currency))
	}
	if appCfg.PaymentPendingTTL <= 0 {
		errs = append(errs, errors.New("payment_pending_ttl must be positive"))
	}
	if appCfg.PaymentSweepInterval <= 0 {
		errs = append(errs, errors.New("payment_sweep_interval must be positive"))
	}
	if appCfg.WriteRatePerMinute <= 0 || appCfg.WriteBurst <= 0 {
		errs = append(errs, errors.New("write_rate_per_minute and write_burst must be positive"))
	}
	if len(appCfg.CORSAllowedOrigins) == 0 {
		errs = append(errs, errors.New("cors_allowed_origins must list at least one origin"))
	}
	for name, mode := range map[string]string{
		"audit_log_lifecycle": appCfg.AuditLogLifecycle,
		"audit_log_payment":   appCfg.AuditLogPayment,
		"audit_log_admin":     appCfg.AuditLogAdmin,
	} {
		if !auditlog.ValidMode(mode) {
			errs = append(errs, fmt.Errorf("%s must be one of all|db|log|off, got %q", name, mode))
		}
	}

	return errors.Join(errs...)
}

func validCurrency(c string) bool {
	if len(c) != 3 {
		return false
	}
	for _, r := range c {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
