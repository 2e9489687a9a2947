package db

import (
	"context"

	"github.com/jackc/pgconn"
	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/AlibekovAA/account-hub/internal/common/constants"
	"github.com/AlibekovAA/account-hub/internal/common/logger"
	"github.com/AlibekovAA/account-hub/internal/observability/metrics"
)

// Querier is the subset of pgx shared by *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// TxManager runs fn as one unit of work. Repositories pick the transaction up
// from the context passed to fn.
type TxManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type txKey struct{}

// QuerierFrom returns the transaction bound to ctx, or fallback outside one.
func QuerierFrom(ctx context.Context, fallback Querier) Querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return fallback
}

type PgTxManager struct {
	pool  *pgxpool.Pool
	log   *logger.Logger
	retry RetryConfig
}

func NewPgTxManager(pool *pgxpool.Pool, log *logger.Logger) *PgTxManager {
	return &PgTxManager{pool: pool, log: log, retry: DefaultRetryConfig}
}

func (m *PgTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	return RetryWithBackoff(ctx, m.log, m.retry, func() error {
		return m.runTx(ctx, fn)
	})
}

func (m *PgTxManager) runTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	txCtx, cancel := context.WithTimeout(ctx, constants.DBQueryTimeout)
	defer cancel()

	tx, err := m.pool.BeginTx(txCtx, pgx.TxOptions{})
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(txCtx)
			metrics.DBTransactionsTotal.WithLabelValues("rollback").Inc()
			panic(p)
		}
	}()

	if err = fn(context.WithValue(txCtx, txKey{}, tx)); err != nil {
		_ = tx.Rollback(txCtx)
		metrics.DBTransactionsTotal.WithLabelValues("rollback").Inc()
		return err
	}

	if err = tx.Commit(txCtx); err != nil {
		metrics.DBTransactionsTotal.WithLabelValues("commit_failed").Inc()
		return err
	}

	metrics.DBTransactionsTotal.WithLabelValues("commit").Inc()
	return nil
}

// NoopTxManager runs fn directly. Used with in-memory repositories.
type NoopTxManager struct{}

func (NoopTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
