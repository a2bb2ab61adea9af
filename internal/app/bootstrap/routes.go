// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	adminfeature "github.com/capstonehub/capstonehub/internal/app/features/admin"
	authnfeature "github.com/capstonehub/capstonehub/internal/app/features/authn"
	healthfeature "github.com/capstonehub/capstonehub/internal/app/features/health"
	studentfeature "github.com/capstonehub/capstonehub/internal/app/features/student"
	supervisorfeature "github.com/capstonehub/capstonehub/internal/app/features/supervisor"
	"github.com/capstonehub/capstonehub/internal/app/system/auth"
	"github.com/capstonehub/capstonehub/internal/app/system/objstore"
)

// BuildHandler constructs the root HTTP handler for the portal.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and Startup have completed. The router mounts one feature router per
// role area plus the public auth and health endpoints.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.CapstoneHubMongoDatabase

	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	tokens, err := auth.NewTokenManager(appCfg.TokenSecret, appCfg.TokenCookie, appCfg.TokenTTL, secure, logger)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}

	// Object storage is optional: without it the portal runs but
	// submission uploads answer 503.
	var files *objstore.Store
	if appCfg.MinioEndpoint != "" {
		files, err = objstore.New(context.Background(), objstore.Config{
			Endpoint:  appCfg.MinioEndpoint,
			AccessKey: appCfg.MinioAccessKey,
			SecretKey: appCfg.MinioSecretKey,
			Bucket:    appCfg.MinioBucket,
			Region:    appCfg.MinioRegion,
			UseSSL:    appCfg.MinioUseSSL,
		}, logger)
		if err != nil {
			logger.Error("object store init failed", zap.Error(err))
			return nil, err
		}
	} else {
		logger.Warn("minio_endpoint not set; submission uploads are disabled")
	}

	r := chi.NewRouter()

	// The SPA sends the auth cookie cross-origin, so CORS must name the
	// exact front-end origin and allow credentials.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{appCfg.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Global auth middleware: loads the token user into context so
	// handlers can use auth.CurrentUser(r) and the role middleware works.
	r.Use(tokens.LoadTokenUser)

	healthHandler := healthfeature.NewHandler(deps.CapstoneHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	authnHandler := authnfeature.NewHandler(db, tokens, logger)
	r.Mount("/auth", authnfeature.Routes(authnHandler))

	studentHandler := studentfeature.NewHandler(db, files, logger)
	r.Mount("/student", studentfeature.Routes(studentHandler))

	supervisorHandler := supervisorfeature.NewHandler(db, logger)
	r.Mount("/supervisor", supervisorfeature.Routes(supervisorHandler))

	adminHandler := adminfeature.NewHandler(db, logger)
	r.Mount("/admin", adminfeature.Routes(adminHandler))

	return r, nil
}
