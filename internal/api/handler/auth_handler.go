package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"repayment-engine/internal/api/handler/dto"
	"repayment-engine/internal/config"
	"repayment-engine/internal/pkg/apperrors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenTTL = 24 * time.Hour

type AuthHandler struct {
	cfg    config.AuthConfig
	logger *slog.Logger
	now    func() time.Time
}

func NewAuthHandler(cfg config.AuthConfig, l *slog.Logger) *AuthHandler {
	return &AuthHandler{
		cfg:    cfg,
		logger: l.With("component", "AuthHandler"),
		now:    time.Now,
	}
}

// GenerateBearerToken issues an HS256 token for the given username.
//
// @Summary Generate a JWT bearer token
// @Description Issues a bearer token valid for 24 hours, signed with the configured secret.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.TokenRequest true "username"
// @Success 200 {object} dto.TokenResponse "Token successfully generated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request parameters"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/token [post]
func (h *AuthHandler) GenerateBearerToken(w http.ResponseWriter, r *http.Request) {
	var req dto.TokenRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", "error", err)
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		h.logger.WarnContext(r.Context(), "Token request validation failed", "error", err)
		respondError(w, err)
		return
	}

	if h.cfg.JWTSecret == "" {
		h.logger.ErrorContext(r.Context(), "Refusing to sign token with an empty secret")
		respondError(w, fmt.Errorf("%w: signing secret is not configured", apperrors.ErrInternalServer))
		return
	}

	now := h.now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   req.Username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.cfg.JWTSecret))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to sign token", "error", err)
		respondError(w, fmt.Errorf("%w: could not sign token", apperrors.ErrInternalServer))
		return
	}

	h.logger.InfoContext(r.Context(), "Issued bearer token", "subject", req.Username, "jti", claims.ID)
	respondJSON(w, http.StatusOK, dto.TokenResponse{Token: "Bearer " + tokenString})
}
