// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"
	"errors"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown stops background work, flushes traces and disconnects MongoDB.
// Every step runs even if an earlier one fails.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	var errs []error

	if rt := deps.Runtime; rt != nil {
		if rt.runner != nil {
			logger.Info("stopping background jobs")
			rt.runner.Stop()
		}
		if rt.limiter != nil {
			rt.limiter.Stop()
		}
		if rt.stopJWKS != nil {
			rt.stopJWKS()
		}
		if rt.shutdownTracing != nil {
			if err := rt.shutdownTracing(ctx); err != nil {
				logger.Error("tracing shutdown failed", zap.Error(err))
				errs = append(errs, err)
			}
		}
	}

	if deps.MongoClient != nil {
		logger.Info("disconnecting MongoDB client")
		if err := deps.MongoClient.Disconnect(ctx); err != nil {
			logger.Error("MongoDB disconnect failed", zap.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
