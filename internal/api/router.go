package api

import (
	"context"
	"log/slog"
	"net/http"
	"repayment-engine/internal/api/handler"
	mw "repayment-engine/internal/api/middleware"
	"repayment-engine/internal/config"
	"repayment-engine/internal/domain/loan"
	"repayment-engine/internal/domain/user"
	"time"

	_ "repayment-engine/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/traceid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// SetupRouter wires every HTTP route. redisClient may be nil, in which case
// rate limiting falls back to per-process buckets. ctx bounds background work
// started by the middleware.
func SetupRouter(ctx context.Context, loanService loan.LoanService, userService user.UserService, cfg *config.Config, redisClient *redis.Client, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()

	setupMiddleware(ctx, router, cfg, redisClient, logger)
	setupMetricsEndpoint(router, cfg, logger)
	setupAuthRoutes(router, cfg, logger)
	setupUserRoutes(router, cfg, userService, logger)
	setupLoanRoutes(router, cfg, loanService, logger)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	setupSwaggerEndpoint(router, logger)

	return router
}

func setupMiddleware(ctx context.Context, router *chi.Mux, cfg *config.Config, redisClient *redis.Client, logger *slog.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(traceid.Middleware)
	router.Use(mw.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	if origins := cfg.Server.CORS.AllowedOrigins; len(origins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
			MaxAge:         300,
		}))
	}
	router.Use(middleware.Compress(5))
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(mw.NewRateLimiterMiddleware(ctx, cfg.Server.RateLimit, redisClient, logger).Middleware)
	router.Use(mw.MetricsMiddleware())
}

func setupMetricsEndpoint(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	logger.Info("Setting up Prometheus metrics endpoint", "path", metricsPath)
	router.Handle(metricsPath, promhttp.Handler())
}

func setupSwaggerEndpoint(router *chi.Mux, logger *slog.Logger) {
	logger.Info("Setting up Swagger UI endpoint", "path", "/swagger/")
	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
}

func setupAuthRoutes(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	authHandler := handler.NewAuthHandler(cfg.Server.Auth, logger)
	router.Route("/auth", func(r chi.Router) {
		r.Post("/token", authHandler.GenerateBearerToken)
	})
}

func setupUserRoutes(router *chi.Mux, cfg *config.Config, userService user.UserService, logger *slog.Logger) {
	h := handler.NewUserHandler(userService, logger)

	router.Route("/users", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Post("/", h.CreateUser)
		r.Get("/{userID}", h.GetUser)
	})
}

func setupLoanRoutes(router *chi.Mux, cfg *config.Config, loanService loan.LoanService, logger *slog.Logger) {
	h := handler.NewLoanHandler(loanService, logger)

	router.Route("/loans", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Post("/", h.CreateLoan)
		r.Route("/{loanID}", func(r chi.Router) {
			r.Get("/", h.GetLoan)
			r.Get("/schedule", h.GetSchedule)
			r.Get("/outstanding", h.GetOutstanding)
			r.Get("/repayments", h.ListRepayments)
			r.Post("/repayments", h.RepayLoan)
		})
	})
}
