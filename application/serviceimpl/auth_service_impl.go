package serviceimpl

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"faceattend/domain/models"
	"faceattend/domain/repositories"
	"faceattend/domain/services"
	"faceattend/pkg/logger"
	"faceattend/pkg/utils"
)

type AuthServiceImpl struct {
	userRepo  repositories.UserRepository
	jwtSecret string
}

func NewAuthService(userRepo repositories.UserRepository, jwtSecret string) services.AuthService {
	return &AuthServiceImpl{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
	}
}

func (s *AuthServiceImpl) Register(ctx context.Context, username, password string) (*models.User, error) {
	_, err := s.userRepo.GetByUsername(ctx, username)
	if err == nil {
		return nil, services.ErrUsernameTaken
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up username: %w", err)
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:       username,
		HashedPassword: hashed,
		IsActive:       true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.Auth("register", "User registered", map[string]interface{}{
		"user_id":  user.ID.String(),
		"username": username,
	})

	return user, nil
}

// Login verifies credentials and issues a bearer token. Wrong username and
// wrong password are indistinguishable to the caller.
func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", nil, services.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.IsActive || !utils.CheckPassword(password, user.HashedPassword) {
		return "", nil, services.ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID, user.Username, s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	logger.Auth("login", "User logged in", map[string]interface{}{
		"user_id":  user.ID.String(),
		"username": username,
	})

	return token, user, nil
}

func (s *AuthServiceImpl) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, services.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *AuthServiceImpl) UpdateUser(ctx context.Context, id uuid.UUID, username, password string) (*models.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if username != "" && username != user.Username {
		if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
			return nil, services.ErrUsernameTaken
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up username: %w", err)
		}
		user.Username = username
	}

	if password != "" {
		hashed, err := utils.HashPassword(password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.HashedPassword = hashed
	}

	if err := s.userRepo.Update(ctx, id, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

func (s *AuthServiceImpl) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetUser(ctx, id); err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	logger.Auth("delete_user", "User deleted", map[string]interface{}{
		"user_id": id.String(),
	})
	return nil
}
