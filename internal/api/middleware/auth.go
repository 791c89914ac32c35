package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"repayment-engine/internal/config"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type subjectKey struct{}

func AuthMiddleware(cfg config.AuthConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	if !cfg.Enabled {
		return func(next http.Handler) http.Handler {
			return next
		}
	}
	if cfg.JWTSecret == "" {
		logger.Error("AuthMiddleware: auth enabled with an empty JWT secret, rejecting every request")
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeUnauthorized(w)
			})
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := validateJWT(r, cfg.JWTSecret, logger)
			if !ok {
				writeUnauthorized(w)
				return
			}
			ctx := context.WithValue(r.Context(), subjectKey{}, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":{"message":"Unauthorized"}}`))
}

// SubjectFromContext returns the authenticated username, if any.
func SubjectFromContext(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(subjectKey{}).(string)
	return s, ok && s != ""
}

func validateJWT(r *http.Request, secret string, logger *slog.Logger) (*jwt.RegisteredClaims, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		logger.WarnContext(r.Context(), "AuthMiddleware: Missing Authorization header")
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		logger.WarnContext(r.Context(), "AuthMiddleware: Invalid Authorization header format")
		return nil, false
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		logger.WarnContext(r.Context(), "AuthMiddleware: Invalid token", "error", err)
		return nil, false
	}

	logger.DebugContext(r.Context(), "AuthMiddleware: Authenticated request", "subject", claims.Subject, "jti", claims.ID)
	return claims, true
}
