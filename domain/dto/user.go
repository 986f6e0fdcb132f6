package dto

import (
	"time"

	"github.com/google/uuid"
)

// UserResponse is the outward shape of an operator account. The password
// hash never leaves the service layer.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse carries the bearer token together with the account.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
