// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	campaignstore "github.com/dalemusser/alumnihub/internal/app/store/campaigns"
	userstore "github.com/dalemusser/alumnihub/internal/app/store/users"
	"github.com/dalemusser/alumnihub/internal/app/system/tasks"
	"github.com/dalemusser/alumnihub/internal/app/system/timeouts"
	"github.com/dalemusser/alumnihub/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup applies store deadlines, promotes the configured super admin and
// starts any background maintenance that has been switched on.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Short:  appCfg.TimeoutShort,
		Medium: appCfg.TimeoutMedium,
		Long:   appCfg.TimeoutLong,
	})

	if appCfg.SuperAdminEmail != "" {
		if err := ensureSuperAdmin(ctx, deps, appCfg.SuperAdminEmail, logger); err != nil {
			return err
		}
	}

	if jobs := maintenanceJobs(appCfg, deps, logger); len(jobs) > 0 {
		sched := workers.NewScheduler(logger, timeouts.Long(), jobs...)
		sched.Start()
		onShutdown(sched.Stop)
	}
	return nil
}

// maintenanceJobs returns the jobs with a positive interval. With the
// default config it returns none and no goroutines are started.
func maintenanceJobs(appCfg AppConfig, deps DBDeps, logger *zap.Logger) []tasks.Job {
	var jobs []tasks.Job
	if appCfg.ReconcileInterval > 0 {
		jobs = append(jobs, tasks.CampaignReconcileJob(campaignstore.New(deps.MongoDatabase), logger, appCfg.ReconcileInterval))
	}
	if appCfg.TokenCleanupInterval > 0 {
		jobs = append(jobs, tasks.ResetTokenCleanupJob(userstore.New(deps.MongoDatabase), logger, appCfg.TokenCleanupInterval))
	}
	return jobs
}

// ensureSuperAdmin makes the account registered under email an active
// super admin. A missing account is logged, not created: the person
// registers first and is promoted on the next start.
func ensureSuperAdmin(ctx context.Context, deps DBDeps, email string, logger *zap.Logger) error {
	found, err := userstore.New(deps.MongoDatabase).PromoteSuperAdmin(ctx, email)
	if err != nil {
		logger.Error("super admin promotion failed", zap.String("email", email), zap.Error(err))
		return err
	}
	if !found {
		logger.Warn("superadmin_email has no account yet; register it and restart", zap.String("email", email))
		return nil
	}
	logger.Info("super admin ensured", zap.String("email", email))
	return nil
}
