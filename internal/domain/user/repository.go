package user

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("user not found")

type UserRepository interface {
	Save(ctx context.Context, user *User) error

	FindByID(ctx context.Context, userID int64) (*User, error)
}
