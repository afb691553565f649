package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"kgtk-simpanse/internal/adapters/persistence/repositories"
	"kgtk-simpanse/internal/core/domain"
)

// Item service errors
var (
	ErrInvalidItemQuantity = errors.New("total quantity must be zero or more")
	ErrItemNameRequired    = errors.New("item name is required")
)

// ItemService handles catalog management business logic
type ItemService struct {
	itemRepo repositories.ItemRepository
}

// NewItemService creates a new item service
func NewItemService(itemRepo repositories.ItemRepository) *ItemService {
	return &ItemService{itemRepo: itemRepo}
}

// ItemInput represents create/update item input
type ItemInput struct {
	Name              string `json:"name" validate:"required"`
	Category          string `json:"category,omitempty"`
	ImageURL          string `json:"image_url,omitempty"`
	TotalQuantity     int    `json:"total_quantity" validate:"gte=0"`
	AvailableQuantity *int   `json:"available_quantity,omitempty"`
}

// List returns the full catalog.
func (s *ItemService) List() []domain.Item {
	return s.itemRepo.List()
}

// Get returns one item by id.
func (s *ItemService) Get(id string) (*domain.Item, error) {
	return s.itemRepo.GetByID(id)
}

// Create adds a new catalog item. Available stock defaults to the total.
func (s *ItemService) Create(input *ItemInput) (*domain.Item, error) {
	if err := validateItemInput(input); err != nil {
		return nil, err
	}

	item := domain.Item{
		ID:                uuid.New().String(),
		Name:              strings.TrimSpace(input.Name),
		Category:          input.Category,
		ImageURL:          input.ImageURL,
		TotalQuantity:     input.TotalQuantity,
		AvailableQuantity: input.TotalQuantity,
	}
	if input.AvailableQuantity != nil {
		item.AvailableQuantity = clamp(*input.AvailableQuantity, 0, item.TotalQuantity)
	}
	item.RecomputeStatus()

	if err := s.itemRepo.Create(item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Update replaces an item's catalog fields. Available stock is clamped to
// the (possibly new) total.
func (s *ItemService) Update(id string, input *ItemInput) (*domain.Item, error) {
	if err := validateItemInput(input); err != nil {
		return nil, err
	}

	item, err := s.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	item.Name = strings.TrimSpace(input.Name)
	item.Category = input.Category
	item.ImageURL = input.ImageURL
	item.TotalQuantity = input.TotalQuantity
	if input.AvailableQuantity != nil {
		item.AvailableQuantity = *input.AvailableQuantity
	}
	item.AvailableQuantity = clamp(item.AvailableQuantity, 0, item.TotalQuantity)
	item.RecomputeStatus()

	if err := s.itemRepo.Update(*item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes an item from the catalog. Existing loans keep their
// denormalized item snapshot.
func (s *ItemService) Delete(id string) error {
	return s.itemRepo.Delete(id)
}

func validateItemInput(input *ItemInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return ErrItemNameRequired
	}
	if input.TotalQuantity < 0 {
		return ErrInvalidItemQuantity
	}
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
