package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/jackc/pgx/v4/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/AlibekovAA/account-hub/internal/common/logger"
	"github.com/AlibekovAA/account-hub/internal/migrations"
	"github.com/AlibekovAA/account-hub/internal/observability/metrics"
)

type gooseLogger struct {
	log *logger.Logger
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.log.Infof(format, v...)
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Fatalf(format, v...)
}

// Migrate applies the embedded schema migrations through a database/sql handle
// opened on the pool's connection config.
func Migrate(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger) error {
	sqlDB := stdlib.OpenDB(*pool.Config().ConnConfig)
	defer sqlDB.Close()

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(gooseLogger{log: log})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if err := goose.UpContext(ctx, sqlDB, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, sqlDB)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	metrics.DBMigrationsApplied.Set(float64(version))
	log.Infof("database schema at version %d", version)

	return nil
}
