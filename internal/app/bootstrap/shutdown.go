// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown stops the background worker and tears down DB connections.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if reminder != nil {
		logger.Info("stopping deadline reminder worker")
		reminder.Stop()
	}

	if deps.CapstoneHubMongoClient != nil {
		logger.Info("disconnecting CapstoneHub MongoDB client")
		if err := deps.CapstoneHubMongoClient.Disconnect(ctx); err != nil {
			logger.Error("MongoDB disconnect failed", zap.Error(err))
			return err
		}
	}
	return nil
}
