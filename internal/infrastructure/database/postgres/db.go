package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"repayment-engine/internal/infrastructure/monitoring"
	"repayment-engine/internal/pkg/apperrors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DBPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
	Close()
}

var _ DBPool = (*pgxpool.Pool)(nil)

var errMsgFormat = "%w: %w"

const (
	sqlStateUniqueViolation     = "23505"
	sqlStateCheckViolation      = "23514"
	sqlStateSerializationFailed = "40001"
	sqlStateDeadlockDetected    = "40P01"
	sqlStateLockNotAvailable    = "55P03"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func translateDBError(err error, contextLogger *slog.Logger) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case sqlStateUniqueViolation:
			contextLogger.Warn("Database unique constraint violation", "detail", pgErr.Detail, "constraint", pgErr.ConstraintName)
			return fmt.Errorf("%w: %s", apperrors.ErrAlreadyExists, pgErr.ConstraintName)
		case sqlStateCheckViolation:
			contextLogger.Error("Database check constraint violation", "constraint", pgErr.ConstraintName, "table", pgErr.TableName)
			return fmt.Errorf("%w: constraint %s", apperrors.ErrInvariantViolation, pgErr.ConstraintName)
		case sqlStateSerializationFailed, sqlStateDeadlockDetected, sqlStateLockNotAvailable:
			contextLogger.Warn("Transaction conflict", "code", pgErr.Code, "message", pgErr.Message)
			return fmt.Errorf("%w: db error code %s", apperrors.ErrConcurrencyConflict, pgErr.Code)
		}

		contextLogger.Error("PostgreSQL specific error", "code", pgErr.Code, "message", pgErr.Message, "detail", pgErr.Detail)
		return fmt.Errorf("%w: db error code %s", apperrors.ErrDatabase, pgErr.Code)
	}

	contextLogger.Error("Generic database error", "error", err)
	return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
}

func observe(queryName string, start time.Time, err error) {
	status := "success"
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		status = "error"
	}
	monitoring.RecordDBQuery(queryName, status, time.Since(start))
}
