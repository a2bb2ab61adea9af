// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for CapstoneHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, token_secret, etc.
//   - Environment variables: CAPSTONEHUB_MONGO_URI, CAPSTONEHUB_TOKEN_SECRET, etc.
//   - Command-line flags: --mongo_uri, --token_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "capstone_hub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	{Name: "token_secret", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "JWT signing secret (must be strong in production)"},
	{Name: "token_cookie", Default: "capstonehub-token", Desc: "Auth token cookie name"},
	{Name: "token_ttl", Default: "24h", Desc: "Auth token lifetime (e.g., 24h, 8h)"},

	{Name: "frontend_url", Default: "http://localhost:3000", Desc: "Front-end origin allowed by CORS"},

	// Object storage for submission documents
	{Name: "minio_endpoint", Default: "", Desc: "MinIO endpoint (blank disables document uploads)"},
	{Name: "minio_access_key", Default: "", Desc: "MinIO access key"},
	{Name: "minio_secret_key", Default: "", Desc: "MinIO secret key"},
	{Name: "minio_bucket", Default: "capstonehub-submissions", Desc: "MinIO bucket for submission documents"},
	{Name: "minio_region", Default: "", Desc: "MinIO region"},
	{Name: "minio_use_ssl", Default: true, Desc: "Use TLS for MinIO connections"},

	// SuperAdmin bootstrap
	{Name: "superadmin_name", Default: "Portal Administrator", Desc: "Display name for the bootstrap superadmin"},
	{Name: "superadmin_email", Default: "", Desc: "Email of the bootstrap superadmin (created on startup if missing)"},
	{Name: "superadmin_password", Default: "", Desc: "Initial password for the bootstrap superadmin"},

	// Deadline reminder worker
	{Name: "reminder_interval", Default: "1h", Desc: "How often the reminder worker scans deadlines"},
	{Name: "reminder_window", Default: "48h", Desc: "How far ahead a deadline triggers reminders"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config
// files, environment variables (WAFFLE_* for core, CAPSTONEHUB_* for
// app), and command-line flags, merging with precedence
// flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "CAPSTONEHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		TokenSecret: appValues.String("token_secret"),
		TokenCookie: appValues.String("token_cookie"),
		TokenTTL:    appValues.Duration("token_ttl", 24*time.Hour),

		FrontendURL: appValues.String("frontend_url"),

		MinioEndpoint:  appValues.String("minio_endpoint"),
		MinioAccessKey: appValues.String("minio_access_key"),
		MinioSecretKey: appValues.String("minio_secret_key"),
		MinioBucket:    appValues.String("minio_bucket"),
		MinioRegion:    appValues.String("minio_region"),
		MinioUseSSL:    appValues.Bool("minio_use_ssl"),

		SuperAdminName:     appValues.String("superadmin_name"),
		SuperAdminEmail:    appValues.String("superadmin_email"),
		SuperAdminPassword: appValues.String("superadmin_password"),

		ReminderInterval: appValues.Duration("reminder_interval", time.Hour),
		ReminderWindow:   appValues.Duration("reminder_window", 48*time.Hour),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation before any
// connections are attempted.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if len(appCfg.TokenSecret) < 32 {
		return fmt.Errorf("token_secret must be at least 32 characters")
	}
	if coreCfg.Env == "prod" && appCfg.TokenSecret == "dev-only-change-me-please-0123456789ABCDEF" {
		return fmt.Errorf("token_secret must be changed from the default in production")
	}

	// Superadmin bootstrap is all-or-nothing: a half-configured account
	// would silently never be created.
	if (appCfg.SuperAdminEmail == "") != (appCfg.SuperAdminPassword == "") {
		return fmt.Errorf("superadmin_email and superadmin_password must be set together")
	}

	if appCfg.ReminderInterval <= 0 || appCfg.ReminderWindow <= 0 {
		return fmt.Errorf("reminder_interval and reminder_window must be positive")
	}

	return nil
}
