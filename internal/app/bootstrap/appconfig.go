// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for CapstoneHub.
//
// WAFFLE's CoreConfig handles framework-level settings (HTTP ports, TLS,
// logging level, shutdown timeouts). AppConfig carries everything
// specific to this portal: database, auth tokens, object storage, the
// superadmin bootstrap account, and the deadline reminder worker.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Auth token configuration
	TokenSecret string        // HMAC signing secret (must be strong in production)
	TokenCookie string        // cookie name the token travels in
	TokenTTL    time.Duration // token lifetime

	// Front-end origin allowed by CORS (cookies require an exact origin)
	FrontendURL string

	// MinIO object storage for submission documents. Leaving the
	// endpoint blank disables uploads; submission endpoints return 503.
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioRegion    string
	MinioUseSSL    bool

	// SuperAdmin bootstrap account, created on startup when missing
	SuperAdminName     string
	SuperAdminEmail    string
	SuperAdminPassword string

	// Deadline reminder worker
	ReminderInterval time.Duration // how often to scan for due deadlines
	ReminderWindow   time.Duration // how far ahead a deadline triggers a reminder
}
