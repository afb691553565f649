package handlers

import (
	"errors"

	"kgtk-simpanse/internal/core/domain"
	"kgtk-simpanse/internal/core/services"
	"kgtk-simpanse/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ItemHandler handles catalog endpoints
type ItemHandler struct {
	itemService *services.ItemService
}

// NewItemHandler creates a new item handler
func NewItemHandler(itemService *services.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// List handles listing the catalog (public)
// @Summary List catalog items
// @Tags Items
// @Produce json
// @Success 200 {object} response.Response
// @Router /items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	return response.Success(c, "Items retrieved successfully", h.itemService.List())
}

// Get handles getting one item
// @Summary Get item by ID
// @Tags Items
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /items/{id} [get]
func (h *ItemHandler) Get(c *fiber.Ctx) error {
	item, err := h.itemService.Get(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return response.NotFound(c, "Item not found")
		}
		return response.InternalServerError(c, "Failed to get item")
	}
	return response.Success(c, "Item retrieved successfully", item)
}

// Create handles adding a catalog item
// @Summary Create item
// @Tags Items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.ItemInput true "Item"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var input services.ItemInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	item, err := h.itemService.Create(&input)
	if err != nil {
		return itemError(c, err, "Failed to create item")
	}
	return response.Created(c, "Item created successfully", item)
}

// Update handles updating a catalog item
// @Summary Update item
// @Tags Items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Param body body services.ItemInput true "Item"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var input services.ItemInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	item, err := h.itemService.Update(c.Params("id"), &input)
	if err != nil {
		return itemError(c, err, "Failed to update item")
	}
	return response.Success(c, "Item updated successfully", item)
}

// Delete handles removing a catalog item
// @Summary Delete item
// @Tags Items
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /items/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	if err := h.itemService.Delete(c.Params("id")); err != nil {
		return itemError(c, err, "Failed to delete item")
	}
	return response.Success(c, "Item deleted successfully", nil)
}

func itemError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrItemNotFound):
		return response.NotFound(c, "Item not found")
	case errors.Is(err, services.ErrItemNameRequired),
		errors.Is(err, services.ErrInvalidItemQuantity):
		return response.BadRequest(c, err.Error())
	default:
		return response.InternalServerError(c, fallback)
	}
}
