// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP ports, TLS,
// logging level and request body limits. Everything specific to ClubSphere
// lives here and is passed to every lifecycle hook.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI            string        // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase       string        // Database name within MongoDB
	MongoMaxPoolSize    uint64        // Upper bound on pooled connections
	MongoMinPoolSize    uint64        // Connections kept warm
	MongoConnectTimeout time.Duration // Bound on the initial connect + ping

	// Identity provider (Firebase ID tokens)
	FirebaseProjectID string // Expected audience; issuer is derived from it
	IdentityJWKSURL   string // Override for the signing key set (blank means Google's published set)

	// Payment processor (Stripe)
	StripeSecretKey      string
	StripePublishableKey string // Handed to clients by GET /api/payments/config
	StripeWebhookSecret  string // Verifies webhook signatures
	Currency             string // Single settlement currency, ISO 4217 lowercase

	// Pending payment expiry
	PaymentPendingTTL    time.Duration // Pending payments older than this are marked failed
	PaymentSweepInterval time.Duration // How often the expiry job runs

	// Promoted (or created) as admin on every startup when set
	BootstrapAdminEmail string

	// HTTP surface
	CORSAllowedOrigins []string
	WriteRatePerMinute int // Per-principal budget for join/register/create-intent/confirm
	WriteBurst         int

	// Storage operation timeouts (zero keeps the built-in defaults)
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration
	TimeoutLong   time.Duration

	// Audit logging: 'all' (db+log), 'db', 'log', or 'off', per category
	AuditLogLifecycle string
	AuditLogPayment   string
	AuditLogAdmin     string

	// OTLP/HTTP trace endpoint; blank disables tracing
	OTELEndpoint string
}
