package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"faceattend/domain/dto"
	"faceattend/domain/services"
	"faceattend/pkg/utils"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type updateUserRequest struct {
	Username string `json:"username" validate:"omitempty,min=3,max=64"`
	Password string `json:"password" validate:"omitempty,min=8,max=128"`
}

// Register creates a new operator account
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	user, err := h.authService.Register(c.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			return utils.ConflictResponse(c, "Username already taken")
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to register user", err)
	}

	return utils.CreatedResponse(c, "User registered successfully", dto.UserToUserResponse(user))
}

// Login verifies credentials and returns a bearer token
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	token, user, err := h.authService.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return utils.UnauthorizedResponse(c, "Incorrect username or password")
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to log in", err)
	}

	return utils.SuccessResponse(c, "Logged in successfully", dto.LoginResponse{
		Token: token,
		User:  dto.UserToUserResponse(user),
	})
}

// Me returns the account behind the presented token
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userCtx, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "Not authenticated")
	}

	user, err := h.authService.GetUser(c.Context(), userCtx.ID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return utils.NotFoundResponse(c, "User not found")
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to get user", err)
	}

	return utils.SuccessResponse(c, "User retrieved successfully", dto.UserToUserResponse(user))
}

func (h *AuthHandler) GetUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid user id")
	}

	user, err := h.authService.GetUser(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return utils.NotFoundResponse(c, "User not found")
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to get user", err)
	}

	return utils.SuccessResponse(c, "User retrieved successfully", dto.UserToUserResponse(user))
}

func (h *AuthHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid user id")
	}

	var req updateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	user, err := h.authService.UpdateUser(c.Context(), id, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return utils.NotFoundResponse(c, "User not found")
		case errors.Is(err, services.ErrUsernameTaken):
			return utils.ConflictResponse(c, "Username already taken")
		default:
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update user", err)
		}
	}

	return utils.SuccessResponse(c, "User updated successfully", dto.UserToUserResponse(user))
}

func (h *AuthHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid user id")
	}

	if err := h.authService.DeleteUser(c.Context(), id); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return utils.NotFoundResponse(c, "User not found")
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete user", err)
	}

	return utils.SuccessResponse(c, "User deleted successfully", nil)
}
