package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"repayment-engine/internal/domain/user"
	"repayment-engine/internal/pkg/apperrors"
	"time"

	"github.com/jackc/pgx/v5"
)

const (
	insertUserSQL = `
        INSERT INTO users (name, active, created_at, updated_at)
        VALUES ($1, $2, NOW(), NOW())
        RETURNING id, created_at, updated_at`

	updateUserSQL = `
        UPDATE users
        SET name = $1, active = $2, updated_at = NOW()
        WHERE id = $3`

	selectUserByIDSQL = `
        SELECT id, name, active, created_at, updated_at
        FROM users
        WHERE id = $1`
)

type UserRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ user.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db DBPool, logger *slog.Logger) *UserRepository {
	return &UserRepository{db: db, logger: logger.With("component", "UserRepository")}
}

func (r *UserRepository) Save(ctx context.Context, u *user.User) error {
	if u.ID == 0 {
		return r.createUser(ctx, u)
	}
	return r.updateUser(ctx, u)
}

func (r *UserRepository) createUser(ctx context.Context, u *user.User) error {
	start := time.Now()
	err := r.db.QueryRow(ctx, insertUserSQL, u.Name, u.Active).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	observe("CreateUser", start, err)
	if err != nil {
		translated := translateDBError(err, r.logger)
		if errors.Is(translated, apperrors.ErrAlreadyExists) {
			return translated
		}
		r.logger.ErrorContext(ctx, "Failed to insert user", slog.Any("error", err))
		return fmt.Errorf("%w: failed to insert user: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "User inserted successfully", slog.Int64("userID", u.ID))
	return nil
}

func (r *UserRepository) updateUser(ctx context.Context, u *user.User) error {
	start := time.Now()
	cmdTag, err := r.db.Exec(ctx, updateUserSQL, u.Name, u.Active, u.ID)
	observe("UpdateUser", start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update user", slog.Int64("userID", u.ID), slog.Any("error", err))
		return translateDBError(err, r.logger)
	}
	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Update affected zero rows, user likely not found", slog.Int64("userID", u.ID))
		return user.ErrNotFound
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, userID int64) (*user.User, error) {
	start := time.Now()
	var u user.User
	err := r.db.QueryRow(ctx, selectUserByIDSQL, userID).Scan(&u.ID, &u.Name, &u.Active, &u.CreatedAt, &u.UpdatedAt)
	observe("FindUserByID", start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to find user by ID", slog.Int64("userID", userID), slog.Any("error", err))
		return nil, translateDBError(err, r.logger)
	}
	return &u, nil
}
