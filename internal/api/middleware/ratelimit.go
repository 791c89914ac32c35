package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"repayment-engine/internal/config"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

const unknownClientIP = "unknown"

// limiter decides whether one more request from key fits the budget.
type limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type RateLimiterMiddleware struct {
	limiter limiter
	cfg     config.RateLimitConfig
	logger  *slog.Logger
}

// NewRateLimiterMiddleware uses a shared Redis window when a client is given,
// so every replica enforces the same budget, and per-process token buckets
// otherwise. ctx bounds the background cleanup of the local buckets.
func NewRateLimiterMiddleware(ctx context.Context, cfg config.RateLimitConfig, redisClient *redis.Client, logger *slog.Logger) *RateLimiterMiddleware {
	logger = logger.With("component", "RateLimiter")
	rl := &RateLimiterMiddleware{cfg: cfg, logger: logger}

	switch {
	case !cfg.Enabled:
		logger.Info("Rate limiting is disabled via configuration.")
	case redisClient != nil:
		logger.Info("Rate limiter using Redis fixed window", "rps", cfg.RPS, "window", time.Second)
		rl.limiter = &redisWindowLimiter{client: redisClient, limit: int64(cfg.RPS), window: time.Second}
	default:
		logger.Info("Rate limiter using local token buckets", "rps", cfg.RPS, "burst", cfg.Burst)
		local := newLocalLimiter(rate.Limit(cfg.RPS), cfg.Burst)
		go local.cleanup(ctx, 10*time.Minute)
		rl.limiter = local
	}
	return rl
}

func (rl *RateLimiterMiddleware) IsEnabled() bool {
	return rl.cfg.Enabled && rl.limiter != nil
}

func (rl *RateLimiterMiddleware) Middleware(next http.Handler) http.Handler {
	if !rl.IsEnabled() {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := rl.extractIP(r)
		if ip == unknownClientIP {
			rl.logger.ErrorContext(r.Context(), "Blocking request due to unknown client IP for rate limiting")
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		allowed, err := rl.limiter.Allow(r.Context(), ip)
		if err != nil {
			// fail open: the limiter store being down must not take the API with it
			rl.logger.ErrorContext(r.Context(), "Rate limiter check failed", "error", err, "ip", ip)
			next.ServeHTTP(w, r)
			return
		}
		if !allowed {
			rl.logger.WarnContext(r.Context(), "Rate limit exceeded", "ip", ip, "limit", rl.cfg.RPS)
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]string{
					"message": fmt.Sprintf("Rate limit exceeded. Limit is %g requests per second.", rl.cfg.RPS),
				},
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiterMiddleware) extractIP(r *http.Request) string {
	xff := r.Header.Get("X-Forwarded-For")
	if xff != "" {
		ip := strings.TrimSpace(strings.Split(xff, ",")[0])
		if net.ParseIP(ip) != nil {
			return ip
		}
	}

	if xRealIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); xRealIP != "" {
		if net.ParseIP(xRealIP) != nil {
			return xRealIP
		}
	}

	if ip, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return ip
	}
	if parsed := net.ParseIP(r.RemoteAddr); parsed != nil {
		return parsed.String()
	}

	rl.logger.Warn("Could not determine client IP for rate limiting", "remoteAddr", r.RemoteAddr, "x-forwarded-for", xff)
	return unknownClientIP
}

type localLimiter struct {
	limiters sync.Map
	limit    rate.Limit
	burst    int
	now      func() time.Time
}

func newLocalLimiter(limit rate.Limit, burst int) *localLimiter {
	return &localLimiter{limit: limit, burst: burst, now: time.Now}
}

func (l *localLimiter) Allow(_ context.Context, key string) (bool, error) {
	v, _ := l.limiters.LoadOrStore(key, rate.NewLimiter(l.limit, l.burst))
	return v.(*rate.Limiter).AllowN(l.now(), 1), nil
}

func (l *localLimiter) cleanup(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.sweep()
		}
	}
}

// sweep drops buckets that have refilled completely; they carry no state.
func (l *localLimiter) sweep() {
	now := l.now()
	l.limiters.Range(func(key, value any) bool {
		if value.(*rate.Limiter).TokensAt(now) >= float64(l.burst) {
			l.limiters.Delete(key)
		}
		return true
	})
}

type redisWindowLimiter struct {
	client redis.Cmdable
	limit  int64
	window time.Duration
}

func (l *redisWindowLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := "ratelimit:" + key

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.ExpireNX(ctx, redisKey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("redis rate limit pipeline: %w", err)
	}
	return incr.Val() <= l.limit, nil
}
