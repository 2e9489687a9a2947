package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/AlibekovAA/account-hub/internal/common/constants"
	"github.com/AlibekovAA/account-hub/internal/observability/metrics"
)

// StartPoolMetrics publishes pool statistics until ctx is cancelled.
func StartPoolMetrics(ctx context.Context, pool *pgxpool.Pool, interval time.Duration) {
	if interval <= 0 {
		interval = constants.DBPoolMetricsInterval
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				stats := pool.Stat()
				metrics.DBPoolAcquiredConnections.Set(float64(stats.AcquiredConns()))
				metrics.DBPoolIdleConnections.Set(float64(stats.IdleConns()))
				metrics.DBPoolMaxConnections.Set(float64(stats.MaxConns()))
				metrics.DBPoolTotalConnections.Set(float64(stats.TotalConns()))
			}
		}
	}()
}
