// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/capstonehub/capstonehub/internal/app/system/indexes"
)

// EnsureSchema creates the collection indexes the portal's invariants
// depend on: unique emails and roll numbers, the global project title,
// one deadline per kind, one viva per group.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := indexes.EnsureAll(ctx, deps.CapstoneHubMongoDatabase); err != nil {
		logger.Error("ensure indexes failed", zap.Error(err))
		return err
	}
	logger.Info("database indexes ensured")
	return nil
}
