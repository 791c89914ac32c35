package dto

import (
	"errors"
	"repayment-engine/internal/domain/user"
	"repayment-engine/internal/pkg/apperrors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUserResponse(t *testing.T) {
	now := time.Now()
	resp := NewUserResponse(&user.User{ID: 42, Name: "Ana", Active: true, CreatedAt: now, UpdatedAt: now})

	assert.Equal(t, "42", resp.ID)
	assert.Equal(t, "Ana", resp.Name)
	assert.True(t, resp.Active)
	assert.Equal(t, now, resp.CreatedAt)

	assert.Equal(t, UserResponse{}, NewUserResponse(nil))
}

func TestCreateUserRequestValidate(t *testing.T) {
	assert.NoError(t, (&CreateUserRequest{Name: "Ana"}).Validate())

	err := (&CreateUserRequest{}).Validate()
	var vErr *apperrors.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "name", vErr.Field)

	err = (&CreateUserRequest{Name: strings.Repeat("x", 256)}).Validate()
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "must be at most 255 characters", vErr.Message)
}

func TestTokenRequestValidate(t *testing.T) {
	assert.NoError(t, (&TokenRequest{Username: "ops"}).Validate())
	assert.ErrorIs(t, (&TokenRequest{}).Validate(), apperrors.ErrValidation)
}
