// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	adminstore "github.com/capstonehub/capstonehub/internal/app/store/admins"
	deadlinestore "github.com/capstonehub/capstonehub/internal/app/store/deadlines"
	studentstore "github.com/capstonehub/capstonehub/internal/app/store/students"
	supervisorstore "github.com/capstonehub/capstonehub/internal/app/store/supervisors"
	"github.com/capstonehub/capstonehub/internal/app/system/normalize"
	"github.com/capstonehub/capstonehub/internal/app/system/workers"
)

// bcryptCost matches the cost used at registration.
const bcryptCost = 12

// reminder is the background deadline worker, started here and stopped
// in Shutdown.
var reminder *workers.DeadlineReminder

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
// It seeds the superadmin account when configured and launches the
// deadline reminder worker.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.CapstoneHubMongoDatabase

	if appCfg.SuperAdminEmail != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(appCfg.SuperAdminPassword), bcryptCost)
		if err != nil {
			return err
		}
		_, created, err := adminstore.New(db).EnsureSuperAdmin(ctx,
			appCfg.SuperAdminName, normalize.Email(appCfg.SuperAdminEmail), string(hash))
		if err != nil {
			logger.Error("superadmin bootstrap failed", zap.Error(err))
			return err
		}
		if created {
			logger.Info("superadmin account created",
				zap.String("email", normalize.Email(appCfg.SuperAdminEmail)))
		}
	}

	reminder = workers.NewDeadlineReminder(
		deadlinestore.New(db),
		studentstore.New(db),
		supervisorstore.New(db),
		logger,
		appCfg.ReminderInterval,
		appCfg.ReminderWindow,
	)
	reminder.Start()
	logger.Info("deadline reminder worker started",
		zap.Duration("interval", appCfg.ReminderInterval),
		zap.Duration("window", appCfg.ReminderWindow))

	return nil
}
