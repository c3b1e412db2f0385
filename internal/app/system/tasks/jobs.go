// internal/app/system/tasks/jobs.go
package tasks

import (
	"context"
	"time"

	campaignstore "github.com/dalemusser/alumnihub/internal/app/store/campaigns"
	userstore "github.com/dalemusser/alumnihub/internal/app/store/users"
	"go.uber.org/zap"
)

// Job is a unit of periodic maintenance.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// CampaignReconcileJob recomputes every campaign's collected amount from
// its received donations. Writes already keep totals current; this repairs
// drift left by failed recomputes or manual database edits.
func CampaignReconcileJob(campaigns *campaignstore.Store, logger *zap.Logger, every time.Duration) Job {
	return Job{
		Name:     "campaign-reconcile",
		Interval: every,
		Run: func(ctx context.Context) error {
			n, err := campaigns.RecalcAll(ctx)
			if err != nil {
				return err
			}
			logger.Debug("campaign totals reconciled", zap.Int("campaigns", n))
			return nil
		},
	}
}

// ResetTokenCleanupJob strips expired password reset tokens. Expired tokens
// are already refused at reset time; this only tidies the documents.
func ResetTokenCleanupJob(users *userstore.Store, logger *zap.Logger, every time.Duration) Job {
	return Job{
		Name:     "reset-token-cleanup",
		Interval: every,
		Run: func(ctx context.Context) error {
			n, err := users.ClearExpiredResetTokens(ctx)
			if err != nil {
				return err
			}
			if n > 0 {
				logger.Info("cleared expired reset tokens", zap.Int64("count", n))
			}
			return nil
		},
	}
}
