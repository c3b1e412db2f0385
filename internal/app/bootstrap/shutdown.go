// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"
	"sync"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// stoppers end background work started by Startup (job scheduler) and
// BuildHandler (rate limiter sweeps).
var (
	stopMu   sync.Mutex
	stoppers []func()
)

func onShutdown(f func()) {
	stopMu.Lock()
	stoppers = append(stoppers, f)
	stopMu.Unlock()
}

// Shutdown stops background helpers, then closes the MongoDB client.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	stopMu.Lock()
	for _, stop := range stoppers {
		stop()
	}
	stoppers = nil
	stopMu.Unlock()

	if deps.MongoClient != nil {
		logger.Info("disconnecting MongoDB client")
		if err := deps.MongoClient.Disconnect(ctx); err != nil {
			logger.Error("MongoDB disconnect failed", zap.Error(err))
			return err
		}
	}
	return nil
}
