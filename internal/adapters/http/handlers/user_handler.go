package handlers

import (
	"errors"

	"kgtk-simpanse/internal/core/domain"
	"kgtk-simpanse/internal/core/services"
	"kgtk-simpanse/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles staff directory endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List handles listing/searching accounts (SuperAdmin only)
// @Summary List staff accounts
// @Description Optional case-insensitive name or email substring filter
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param search query string false "Name or email substring"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	users := h.userService.List(c.Query("search"))
	return response.Success(c, "Users retrieved successfully", users)
}

// Get handles getting one account (SuperAdmin only)
// @Summary Get staff account by ID
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [get]
func (h *UserHandler) Get(c *fiber.Ctx) error {
	user, err := h.userService.Get(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to get user")
	}
	return response.Success(c, "User retrieved successfully", user)
}

// Create handles creating an account (SuperAdmin only)
// @Summary Create staff account
// @Description Role defaults to Admin; a generated password is mailed when none is supplied
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateUserInput true "Account"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var input services.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.userService.Create(&input)
	if err != nil {
		return userError(c, err, "Failed to create user")
	}
	return response.Created(c, "User created successfully", user)
}

// Update handles updating an account (SuperAdmin only)
// @Summary Update staff account
// @Description Blank password keeps the current credential
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param body body services.UpdateUserInput true "Account"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var input services.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.userService.Update(c.Params("id"), &input)
	if err != nil {
		return userError(c, err, "Failed to update user")
	}
	return response.Success(c, "User updated successfully", user)
}

// Delete handles removing an account (SuperAdmin only)
// @Summary Delete staff account
// @Description Deleting the last SuperAdmin is refused
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.userService.Delete(c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrLastSuperAdmin) {
			return response.Forbidden(c, "At least one SuperAdmin must remain")
		}
		return userError(c, err, "Failed to delete user")
	}
	return response.Success(c, "User deleted successfully", nil)
}

func userError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return response.NotFound(c, "User not found")
	case errors.Is(err, services.ErrUsernameTaken):
		return response.Conflict(c, "Username already exists")
	case errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrEmailRequired),
		errors.Is(err, services.ErrUsernameNeeded),
		errors.Is(err, services.ErrWeakPassword):
		return response.BadRequest(c, err.Error())
	default:
		return response.InternalServerError(c, fallback)
	}
}
