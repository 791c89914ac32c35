package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"repayment-engine/internal/api/handler/dto"
	"repayment-engine/internal/domain/user"
	"repayment-engine/internal/pkg/apperrors"
)

type UserHandler struct {
	service user.UserService
	logger  *slog.Logger
}

func NewUserHandler(s user.UserService, l *slog.Logger) *UserHandler {
	if s == nil {
		panic("user service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &UserHandler{
		service: s,
		logger:  l.With("component", "UserHandler"),
	}
}

// CreateUser handles POST /users
// @Summary Create a new user
// @Description Creates an active borrower that loans can be disbursed to.
// @Tags Users
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "User creation request"
// @Success 201 {object} dto.UserResponse "User successfully created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users [post]
// @Security BearerAuth
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", "error", err)
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, err)
		return
	}

	created, err := h.service.CreateUser(r.Context(), req.Name)
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to create user", "error", err)
		respondError(w, err)
		return
	}

	resp := dto.NewUserResponse(created)
	h.logger.InfoContext(r.Context(), "User created successfully", "userID", resp.ID)
	respondJSON(w, http.StatusCreated, resp)
}

// GetUser handles GET /users/{userID}
// @Summary Retrieve user details
// @Tags Users
// @Produce json
// @Param userID path int true "User ID" Minimum(1)
// @Success 200 {object} dto.UserResponse "User details retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID format"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/{userID} [get]
// @Security BearerAuth
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := idFromURL(r, "userID")
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get user ID from URL", "error", err)
		respondError(w, err)
		return
	}

	u, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to get user", "userID", userID, "error", err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewUserResponse(u))
}
