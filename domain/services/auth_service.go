package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"faceattend/domain/models"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("incorrect username or password")
)

// AuthService handles operator accounts and session tokens.
type AuthService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)

	// Login verifies the password and returns a signed bearer token.
	Login(ctx context.Context, username, password string) (token string, user *models.User, err error)

	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, username, password string) (*models.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}
