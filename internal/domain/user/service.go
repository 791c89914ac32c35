package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"repayment-engine/internal/pkg/apperrors"
)

type UserService interface {
	CreateUser(ctx context.Context, name string) (*User, error)
	GetUser(ctx context.Context, userID int64) (*User, error)
}

var _ UserService = (*userService)(nil)

type userService struct {
	repo   UserRepository
	logger *slog.Logger
}

func NewUserService(repo UserRepository, logger *slog.Logger) UserService {
	if repo == nil {
		panic("user repository cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewUserService, using default stderr handler")
	}
	return &userService{
		repo:   repo,
		logger: logger.With(slog.String("component", "userService")),
	}
}

func (s *userService) CreateUser(ctx context.Context, name string) (*User, error) {
	u := NewUser(name)
	if u.Name == "" {
		s.logger.WarnContext(ctx, "Validation failed: name is empty")
		return nil, apperrors.NewValidationError("name", "must not be empty")
	}

	if err := s.repo.Save(ctx, u); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save new user", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save new user: %w", err)
	}

	s.logger.InfoContext(ctx, "Created user", slog.Int64("userID", u.ID))
	return u, nil
}

func (s *userService) GetUser(ctx context.Context, userID int64) (*User, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: user id must be positive", apperrors.ErrInvalidArgument)
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "User not found", slog.Int64("userID", userID))
			return nil, fmt.Errorf("%w: user %d", apperrors.ErrNotFound, userID)
		}
		s.logger.ErrorContext(ctx, "Repository error finding user", slog.Int64("userID", userID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}
	return u, nil
}
