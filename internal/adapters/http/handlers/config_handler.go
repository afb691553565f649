package handlers

import (
	"kgtk-simpanse/internal/core/domain"
	"kgtk-simpanse/internal/core/services"
	"kgtk-simpanse/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ConfigHandler handles system configuration endpoints
type ConfigHandler struct {
	configService *services.ConfigService
}

// NewConfigHandler creates a new config handler
func NewConfigHandler(configService *services.ConfigService) *ConfigHandler {
	return &ConfigHandler{configService: configService}
}

// Get handles reading the system configuration (public, used for branding)
// @Summary Get system configuration
// @Tags Config
// @Produce json
// @Success 200 {object} response.Response
// @Router /config [get]
func (h *ConfigHandler) Get(c *fiber.Ctx) error {
	return response.Success(c, "Configuration retrieved successfully", h.configService.Get())
}

// Update handles replacing the system configuration (SuperAdmin only)
// @Summary Update system configuration
// @Tags Config
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body domain.SystemConfig true "Configuration"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /config [put]
func (h *ConfigHandler) Update(c *fiber.Ctx) error {
	var cfg domain.SystemConfig
	if err := c.BodyParser(&cfg); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	updated, err := h.configService.Update(cfg)
	if err != nil {
		return response.InternalServerError(c, "Failed to update configuration")
	}
	return response.Success(c, "Configuration updated successfully", updated)
}
