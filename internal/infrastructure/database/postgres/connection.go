package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"repayment-engine/internal/config"
	"repayment-engine/internal/pkg/apperrors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	applicationName = "repayment-engine"

	defaultMaxConns          = 10
	defaultMaxConnIdleTime   = 5 * time.Minute
	defaultHealthCheckPeriod = time.Minute
	defaultPingTimeout       = 5 * time.Second
)

type pinger interface {
	Ping(ctx context.Context) error
}

// newPool is swapped in tests that must not dial a server.
var newPool = pgxpool.NewWithConfig

// NewConnectionPool opens the pool shared by the repositories and returns it
// only once the server has answered a ping.
func NewConnectionPool(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*pgxpool.Pool, error) {
	if cfg.URL == "" {
		return nil, errors.New("database URL is empty in configuration")
	}

	poolConfig, err := buildPoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	log := logger.With("component", "postgres",
		"host", poolConfig.ConnConfig.Host,
		"database", poolConfig.ConnConfig.Database)
	log.Info("Opening PostgreSQL pool", "max_conns", poolConfig.MaxConns, "min_conns", poolConfig.MinConns)

	pool, err := newPool(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to create connection pool: %w", apperrors.ErrDatabase, err)
	}

	if err := pingWithin(ctx, pool, pingTimeout(cfg)); err != nil {
		log.Error("PostgreSQL did not answer ping", "error", err)
		pool.Close()
		return nil, err
	}

	log.Info("PostgreSQL pool ready")
	return pool, nil
}

// buildPoolConfig applies pool sizing and the session settings every
// connection needs. A lock_timeout makes blocked FOR UPDATE reads fail with
// 55P03, which the repayment service treats as a retryable conflict.
func buildPoolConfig(cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config from URL: %w", err)
	}

	poolConfig.MaxConns = orDefault(cfg.MaxConns, defaultMaxConns)
	poolConfig.MinConns = cfg.MinConns
	poolConfig.MaxConnIdleTime = orDefault(cfg.MaxConnIdleTime, defaultMaxConnIdleTime)
	poolConfig.HealthCheckPeriod = orDefault(cfg.HealthCheckPeriod, defaultHealthCheckPeriod)

	params := poolConfig.ConnConfig.RuntimeParams
	if _, ok := params["application_name"]; !ok {
		params["application_name"] = applicationName
	}
	if cfg.LockTimeout > 0 {
		params["lock_timeout"] = fmt.Sprintf("%dms", cfg.LockTimeout.Milliseconds())
	}

	return poolConfig, nil
}

func pingWithin(ctx context.Context, db pinger, timeout time.Duration) error {
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.Ping(pingCtx); err != nil {
		return fmt.Errorf("%w: failed to ping database on connect: %w", apperrors.ErrDatabase, err)
	}
	return nil
}

func pingTimeout(cfg config.DatabaseConfig) time.Duration {
	return orDefault(cfg.PingTimeout, defaultPingTimeout)
}

func orDefault[T int32 | time.Duration](v, fallback T) T {
	if v > 0 {
		return v
	}
	return fallback
}
