// internal/app/system/tasks/jobs.go
package tasks

import (
	"context"
	"time"

	"github.com/dalemusser/clubsphere/internal/app/system/auditlog"
	"github.com/dalemusser/clubsphere/internal/app/system/ledger"
	"go.uber.org/zap"
)

// PaymentExpiryJob creates a job that marks payments pending longer than
// ttl as failed. Expired payments stay in the ledger for audit.
func PaymentExpiryJob(l *ledger.Ledger, audit *auditlog.Logger, logger *zap.Logger, interval, ttl time.Duration) Job {
	return Job{
		Name:     "payment-expiry",
		Interval: interval,
		Run: func(ctx context.Context) error {
			count, err := l.ExpirePending(ctx, ttl)
			if err != nil {
				return err
			}
			if count > 0 {
				logger.Info("expired pending payments",
					zap.Int64("count", count),
					zap.Duration("ttl", ttl))
				audit.PaymentsExpired(ctx, count)
			}
			return nil
		},
	}
}
