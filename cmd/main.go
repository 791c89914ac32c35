package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"repayment-engine/internal/api"
	"repayment-engine/internal/batch"
	"repayment-engine/internal/config"
	"repayment-engine/internal/domain/loan"
	"repayment-engine/internal/domain/user"
	"repayment-engine/internal/event"
	"repayment-engine/internal/infrastructure/database/postgres"
	"repayment-engine/internal/infrastructure/logging"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

const (
	defaultReconcileSchedule = "0 3 * * *"
	rabbitMQConnectAttempts  = 5
)

// @title Repayment Engine API
// @version 1.0
// @description Installment loans: disbursement, monthly repayment schedules and repayment allocation.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, logger := initializeApp()

	rootCtx, cancelRoot := context.WithCancel(context.Background())
	defer cancelRoot()

	dbPool := initializeDatabase(rootCtx, cfg, logger)
	defer closeDatabase(dbPool, logger)

	redisClient := initializeRedisClient(cfg, logger)
	defer closeRedisClient(redisClient, logger)

	publisher, amqpConn := initializePublisher(cfg, logger)
	defer closeRabbitMQ(amqpConn, logger)

	loanService, userService, loanRepo := initializeServices(cfg, dbPool, publisher, logger)

	reconcileJob := batch.NewReconcileJob(loanRepo, 0, logger)
	cronScheduler := startBatchJobs(cfg, logger, reconcileJob)

	router := api.SetupRouter(rootCtx, loanService, userService, cfg, redisClient, logger)

	srv, serverErrors, shutdownChan := startServer(cfg, router, logger)
	handleShutdown(srv, cronScheduler, shutdownChan, serverErrors, logger)
}

func initializeApp() (*config.Config, *slog.Logger) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.Logger)
	slog.SetDefault(logger)
	logger.Info("Application starting...", "port", cfg.Server.Port, "redis", cfg.Redis.Enabled, "rabbitmq", cfg.RabbitMQ.Enabled)

	return cfg, logger
}

func initializeDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) *pgxpool.Pool {
	logger.Info("Initializing database connection pool...")
	dbPool, err := postgres.NewConnectionPool(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("Failed to initialize database connection pool", "error", err)
		os.Exit(1)
	}
	return dbPool
}

func closeDatabase(dbPool *pgxpool.Pool, logger *slog.Logger) {
	logger.Info("Closing database connection pool...")
	dbPool.Close()
}

func initializeServices(cfg *config.Config, dbPool *pgxpool.Pool, publisher event.EventPublisher, logger *slog.Logger) (loan.LoanService, user.UserService, *postgres.LoanRepository) {
	logger.Info("Initializing application components...")
	loanRepo := postgres.NewLoanRepository(dbPool, logger)
	userRepo := postgres.NewUserRepository(dbPool, logger)
	userService := user.NewUserService(userRepo, logger)
	retry := loan.RetryConfig{
		MaxRetries: cfg.Repayment.MaxRetries,
		Backoff:    cfg.Repayment.RetryBackoff,
	}
	return loan.NewLoanService(loanRepo, userService, publisher, retry, logger), userService, loanRepo
}

// initializeRedisClient returns nil when Redis is disabled; rate limiting then
// stays in process.
func initializeRedisClient(cfg *config.Config, logger *slog.Logger) *redis.Client {
	if !cfg.Redis.Enabled {
		logger.Info("Redis disabled, using in-process rate limiting.")
		return nil
	}

	logger.Info("Initializing Redis client...", "addr", cfg.Redis.Addr)
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if status := rdb.Ping(ctx); status.Err() != nil {
		logger.Error("Failed to connect to Redis", "error", status.Err(), "addr", cfg.Redis.Addr)
		_ = rdb.Close()
		os.Exit(1)
	}

	logger.Info("Redis client connected successfully.", "addr", cfg.Redis.Addr, "db", cfg.Redis.DB)
	return rdb
}

func closeRedisClient(redisClient *redis.Client, logger *slog.Logger) {
	if redisClient == nil {
		return
	}
	logger.Info("Closing Redis client connection...")
	if err := redisClient.Close(); err != nil {
		logger.Error("Failed to close Redis client connection gracefully", "error", err)
	}
}

func initializePublisher(cfg *config.Config, logger *slog.Logger) (event.EventPublisher, *amqp.Connection) {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("RabbitMQ disabled, ledger events will not be published.")
		return event.NoopPublisher{}, nil
	}

	conn, err := connectRabbitMQ(cfg.RabbitMQ.URL(), rabbitMQConnectAttempts, 2*time.Second, logger)
	if err != nil {
		logger.Error("Failed to connect to RabbitMQ", "error", err)
		os.Exit(1)
	}

	publisher, err := event.NewRabbitMQEventPublisher(conn, cfg.RabbitMQ.ExchangeName, logger)
	if err != nil {
		logger.Error("Failed to create RabbitMQ event publisher", "error", err)
		_ = conn.Close()
		os.Exit(1)
	}
	return publisher, conn
}

func connectRabbitMQ(uri string, attempts int, backoff time.Duration, logger *slog.Logger) (*amqp.Connection, error) {
	var conn *amqp.Connection
	var err error
	for i := 1; i <= attempts; i++ {
		conn, err = amqp.Dial(uri)
		if err == nil {
			logger.Info("Successfully connected to RabbitMQ")

			go func() {
				blockChan := conn.NotifyBlocked(make(chan amqp.Blocking))
				closeChan := conn.NotifyClose(make(chan *amqp.Error, 1))

				select {
				case b := <-blockChan:
					logger.Warn("RabbitMQ Connection Blocked", "reason", b.Reason)
				case e := <-closeChan:
					if e != nil {
						logger.Error("RabbitMQ Connection Closed", slog.Any("error", e))
					}
				}
			}()

			return conn, nil
		}
		logger.Warn("Failed to connect to RabbitMQ, retrying...",
			slog.Int("attempt", i),
			slog.Int("max_attempts", attempts),
			slog.Any("error", err),
		)
		if i < attempts {
			time.Sleep(time.Duration(i) * backoff)
		}
	}
	return nil, fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", attempts, err)
}

func closeRabbitMQ(conn *amqp.Connection, logger *slog.Logger) {
	if conn == nil || conn.IsClosed() {
		return
	}
	logger.Info("Closing RabbitMQ connection...")
	if err := conn.Close(); err != nil {
		logger.Error("Failed to close RabbitMQ connection gracefully", "error", err)
	}
}

func startServer(cfg *config.Config, router http.Handler, logger *slog.Logger) (*http.Server, <-chan error, <-chan os.Signal) {
	logger.Info("Setting up HTTP server...", "port", cfg.Server.Port)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Server listening on port %d", cfg.Server.Port))
		err := srv.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			serverErrors <- err
		} else {
			logger.Info("Server closed gracefully.")
			serverErrors <- nil
		}
	}()
	return srv, serverErrors, shutdownChan
}

func handleShutdown(srv *http.Server, cronScheduler *cron.Cron, shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) {
	logger.Info("Shutdown handler started. Waiting for signal or server error...")

	var triggerReason string
	select {
	case sig := <-shutdownChan:
		triggerReason = "signal: " + sig.String()
		logger.Info("Shutdown signal received.", "signal", sig.String())
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server exited unexpectedly before signal", "error", err)
			os.Exit(1)
		}
		triggerReason = "server exited"
		logger.Info("Server goroutine finished before signal.", "error", err)
	}

	logger.Info("Starting graceful shutdown...", "trigger", triggerReason)

	logger.Info("Stopping cron scheduler...")
	cronCtx := cronScheduler.Stop()
	select {
	case <-cronCtx.Done():
		logger.Info("Cron scheduler stopped gracefully.")
	case <-time.After(15 * time.Second):
		logger.Warn("Cron scheduler shutdown timed out.")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	logger.Info("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", "error", err)
		if err := srv.Close(); err != nil {
			logger.Error("HTTP server forced close failed", "error", err)
		}
	} else {
		logger.Info("HTTP server gracefully stopped.")
	}

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("Server goroutine exited with unexpected error after shutdown", "error", err)
		}
	case <-time.After(5 * time.Second):
		logger.Warn("Timed out waiting for server goroutine confirmation.")
	}

	logger.Info("Application shutdown process complete.")
}

// reconcileRunner is the part of batch.ReconcileJob the scheduler drives.
type reconcileRunner interface {
	Run(ctx context.Context) error
}

func startBatchJobs(cfg *config.Config, logger *slog.Logger, job reconcileRunner) *cron.Cron {
	logger.Info("Initializing batch job scheduler...")
	c := cron.New()

	scheduleSpec := cfg.Batch.ReconcileSchedule
	if scheduleSpec == "" {
		scheduleSpec = defaultReconcileSchedule
		logger.Warn("Reconciliation schedule not configured, using default", "schedule", scheduleSpec)
	}
	jobTimeout := cfg.Batch.ReconcileTimeout
	if jobTimeout <= 0 {
		jobTimeout = 5 * time.Minute
	} else {
		jobTimeout = jobTimeout * time.Second
	}

	jobID, err := c.AddJob(scheduleSpec, cron.FuncJob(func() {
		jobLogger := logger.With("job_name", "ReconcileLedger")
		jobLogger.Info("Cron triggered: Running ledger reconciliation job.")

		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		if runErr := job.Run(ctx); runErr != nil {
			jobLogger.Error("Ledger reconciliation job finished with error", slog.Any("error", runErr))
		} else {
			jobLogger.Info("Ledger reconciliation job finished successfully.")
		}
	}))

	if err != nil {
		logger.Error("Failed to schedule ledger reconciliation job", "schedule", scheduleSpec, slog.Any("error", err))
	} else {
		logger.Info("Scheduled ledger reconciliation job", "schedule", scheduleSpec, "job_id", jobID)
	}

	c.Start()
	logger.Info("Cron scheduler started.")
	return c
}
