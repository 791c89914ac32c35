package user

import (
	"strings"
	"time"
)

// User is the borrower a loan is disbursed to.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewUser(name string) *User {
	now := time.Now()
	return &User{
		Name:      strings.TrimSpace(name),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (u *User) Deactivate() {
	if u.Active {
		u.Active = false
		u.UpdatedAt = time.Now()
	}
}
