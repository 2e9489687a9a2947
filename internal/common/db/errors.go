package db

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgconn"
	pgx "github.com/jackc/pgx/v4"

	"github.com/AlibekovAA/account-hub/internal/observability/metrics"
)

const uniqueViolationCode = "23505"

func extractTableFromOperation(operation string) string {
	operation = strings.ToLower(operation)
	if strings.Contains(operation, "post") {
		return "posts"
	}
	if strings.Contains(operation, "user") {
		return "users"
	}
	return "unknown"
}

// HandleQueryError records query metrics and maps pgx.ErrNoRows to notFoundErr.
func HandleQueryError(err error, notFoundErr error, operation string, startTime time.Time) error {
	table := extractTableFromOperation(operation)
	metrics.DBQueryDurationSeconds.WithLabelValues(operation, table).Observe(time.Since(startTime).Seconds())

	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return notFoundErr
	}
	metrics.DBQueryErrors.WithLabelValues(operation, table, fmt.Sprintf("%T", err)).Inc()
	return fmt.Errorf("failed to %s: %w", operation, err)
}

func HandleExecError(err error, operation string, startTime time.Time) error {
	table := extractTableFromOperation(operation)
	metrics.DBQueryDurationSeconds.WithLabelValues(operation, table).Observe(time.Since(startTime).Seconds())

	if err == nil {
		return nil
	}
	metrics.DBQueryErrors.WithLabelValues(operation, table, fmt.Sprintf("%T", err)).Inc()
	return fmt.Errorf("failed to %s: %w", operation, err)
}

func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolationCode {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
