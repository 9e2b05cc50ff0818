package repository

import (
	"context"

	"cueclub/internal/apperr"
	"cueclub/internal/model"
	"cueclub/internal/store"
)

// InventoryRepository handles stock records, stored per-club under
// "inventory:<clubID>".
type InventoryRepository struct {
	store store.Store
}

// NewInventoryRepository creates a new InventoryRepository instance.
func NewInventoryRepository(s store.Store) *InventoryRepository {
	return &InventoryRepository{store: s}
}

// List returns all inventory items for a club.
func (r *InventoryRepository) List(ctx context.Context, clubID string) ([]model.InventoryItem, error) {
	key := store.InventoryKey(clubID)
	var items []model.InventoryItem
	if err := store.GetJSON(ctx, r.store, key, &items); err != nil {
		return nil, apperr.Persistence("get", key, err)
	}
	return items, nil
}

// Insert appends a new inventory item.
func (r *InventoryRepository) Insert(ctx context.Context, clubID string, item model.InventoryItem) error {
	key := store.InventoryKey(clubID)
	err := store.UpdateJSON(ctx, r.store, key, func(items *[]model.InventoryItem) error {
		*items = append(*items, item)
		return nil
	})
	if err != nil {
		return apperr.Persistence("update", key, err)
	}
	return nil
}

// MutateByName atomically applies fn to the item with the given name, if
// present. Missing items are ignored: stock tracking is best-effort and a
// food order for an untracked item still succeeds.
func (r *InventoryRepository) MutateByName(ctx context.Context, clubID, name string, fn func(*model.InventoryItem) error) error {
	key := store.InventoryKey(clubID)
	err := store.UpdateJSON(ctx, r.store, key, func(items *[]model.InventoryItem) error {
		for i := range *items {
			if (*items)[i].Name == name {
				return fn(&(*items)[i])
			}
		}
		return nil
	})
	if err != nil {
		return apperr.Persistence("update", key, err)
	}
	return nil
}

// MutateOne atomically applies fn to the item with the given ID.
func (r *InventoryRepository) MutateOne(ctx context.Context, clubID, itemID string, fn func(*model.InventoryItem) error) (*model.InventoryItem, error) {
	key := store.InventoryKey(clubID)
	var updated model.InventoryItem
	err := store.UpdateJSON(ctx, r.store, key, func(items *[]model.InventoryItem) error {
		for i := range *items {
			if (*items)[i].ID == itemID {
				if err := fn(&(*items)[i]); err != nil {
					return err
				}
				updated = (*items)[i]
				return nil
			}
		}
		return apperr.NotFound("inventory item", itemID)
	})
	if err != nil {
		if apperr.IsNotFound(err) || apperr.IsValidation(err) {
			return nil, err
		}
		return nil, apperr.Persistence("update", key, err)
	}
	return &updated, nil
}
