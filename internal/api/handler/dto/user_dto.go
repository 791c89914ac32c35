package dto

import (
	"repayment-engine/internal/domain/user"
	"strconv"
	"time"
)

type CreateUserRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

func (r *CreateUserRequest) Validate() error {
	return validateStruct(r)
}

type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewUserResponse(u *user.User) UserResponse {
	if u == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:        strconv.FormatInt(u.ID, 10),
		Name:      u.Name,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
