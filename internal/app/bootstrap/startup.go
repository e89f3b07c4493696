// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"strings"

	"github.com/dalemusser/glowsite/internal/app/system/seeding"
	"github.com/dalemusser/glowsite/internal/app/system/tasks"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs once after DB connections and schema/index setup are complete,
// but before the HTTP handler is built and requests are served.
//
// This is the place for one-time initialization that depends on having live
// database connections and fully loaded configuration:
//   - Seed admin accounts for allow-listed emails
//   - Run the initial content sync so the first request already serves
//     database-backed content instead of compiled-in defaults
//   - Start the background task runner
//
// Returning a non-nil error will abort startup and prevent the server from
// starting.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	// Seed admin accounts for allow-listed emails that have no user record
	// yet. A missing initial password disables seeding.
	if err := seeding.SeedAdmins(ctx, deps.MongoDatabase, appCfg.AdminEmails, appCfg.AdminInitialPassword, logger); err != nil {
		logger.Error("failed to seed admin accounts", zap.Error(err))
		return err
	}

	// Initial content sync. Failure is not fatal: the aggregator keeps
	// serving defaults and the refresh job retries.
	if err := deps.Content.Refresh(ctx); err != nil {
		logger.Warn("initial content sync aborted", zap.Error(err))
	} else {
		state, _ := deps.Content.State()
		logger.Info("initial content sync complete", zap.String("state", state))
	}

	startTaskRunner(deps, appCfg, logger)

	return nil
}

// taskRunner is the global task runner instance, used for graceful shutdown.
var taskRunner *tasks.Runner

// startTaskRunner initializes and starts the background task runner.
func startTaskRunner(deps DBDeps, appCfg AppConfig, logger *zap.Logger) {
	taskRunner = tasks.New(logger)

	taskRunner.Register(tasks.ContentRefreshJob(deps.Content, appCfg.ContentRefreshInterval, logger))
	taskRunner.Register(tasks.PasswordResetCleanupJob(deps.MongoDatabase, logger))
	taskRunner.Register(tasks.RateLimitCleanupJob(deps.MongoDatabase, logger))
	if strings.HasPrefix(appCfg.BaseURL, "https://") {
		taskRunner.Register(tasks.CertExpiryJob(appCfg.BaseURL, logger))
	}

	taskRunner.Start()
}
