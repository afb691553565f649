package repositories

import (
	"kgtk-simpanse/internal/core/domain"
)

// itemRepository implements ItemRepository over the shared state snapshot.
type itemRepository struct {
	state *State
}

// NewItemRepository creates a new item repository.
func NewItemRepository(state *State) ItemRepository {
	return &itemRepository{state: state}
}

// List returns a copy of the catalog.
func (r *itemRepository) List() []domain.Item {
	var items []domain.Item
	r.state.View(func(d *Data) {
		items = append(items, d.Items...)
	})
	return items
}

// GetByID returns a copy of the item with the given id.
func (r *itemRepository) GetByID(id string) (*domain.Item, error) {
	var found *domain.Item
	r.state.View(func(d *Data) {
		for i := range d.Items {
			if d.Items[i].ID == id {
				item := d.Items[i]
				found = &item
				return
			}
		}
	})
	if found == nil {
		return nil, domain.ErrItemNotFound
	}
	return found, nil
}

// Create appends a new item to the catalog.
func (r *itemRepository) Create(item domain.Item) error {
	return r.state.Update(func(d *Data) error {
		item.RecomputeStatus()
		d.Items = append(d.Items, item)
		return nil
	})
}

// Update replaces the item with the same id.
func (r *itemRepository) Update(item domain.Item) error {
	return r.state.Update(func(d *Data) error {
		for i := range d.Items {
			if d.Items[i].ID == item.ID {
				item.RecomputeStatus()
				d.Items[i] = item
				return nil
			}
		}
		return domain.ErrItemNotFound
	})
}

// Delete removes the item with the given id.
func (r *itemRepository) Delete(id string) error {
	return r.state.Update(func(d *Data) error {
		for i := range d.Items {
			if d.Items[i].ID == id {
				d.Items = append(d.Items[:i], d.Items[i+1:]...)
				return nil
			}
		}
		return domain.ErrItemNotFound
	})
}
