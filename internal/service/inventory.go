package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"cueclub/internal/apperr"
	"cueclub/internal/model"
	"cueclub/internal/repository"
)

// InventoryService tracks stock for consumables sold at a club.
type InventoryService struct {
	inventoryRepo *repository.InventoryRepository
}

// NewInventoryService creates a new InventoryService instance.
func NewInventoryService(inventoryRepo *repository.InventoryRepository) *InventoryService {
	return &InventoryService{inventoryRepo: inventoryRepo}
}

// InventoryItemInput is the payload for AddItem.
type InventoryItemInput struct {
	Name         string `validate:"required,min=1,max=100"`
	Category     string `validate:"required"`
	CurrentStock int    `validate:"min=0"`
	MinStock     int    `validate:"min=0"`
	Unit         string `validate:"required"`
}

// AddItem registers a stock item.
func (s *InventoryService) AddItem(ctx context.Context, clubID string, in InventoryItemInput) (*model.InventoryItem, error) {
	if err := validate.Struct(in); err != nil {
		return nil, translateValidation(err)
	}
	item := model.InventoryItem{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Category:     in.Category,
		CurrentStock: in.CurrentStock,
		MinStock:     in.MinStock,
		Unit:         in.Unit,
		LastUpdated:  time.Now(),
	}
	if err := s.inventoryRepo.Insert(ctx, clubID, item); err != nil {
		return nil, err
	}
	return &item, nil
}

// ListItems returns all stock items of a club.
func (s *InventoryService) ListItems(ctx context.Context, clubID string) ([]model.InventoryItem, error) {
	return s.inventoryRepo.List(ctx, clubID)
}

// LowStock returns the items at or below their minimum level.
func (s *InventoryService) LowStock(ctx context.Context, clubID string) ([]model.InventoryItem, error) {
	items, err := s.inventoryRepo.List(ctx, clubID)
	if err != nil {
		return nil, err
	}
	return lo.Filter(items, func(item model.InventoryItem, _ int) bool {
		return item.IsLowStock()
	}), nil
}

// AdjustStock changes an item's stock by delta (restock or correction).
// Stock never goes below zero.
func (s *InventoryService) AdjustStock(ctx context.Context, clubID, itemID string, delta int) (*model.InventoryItem, error) {
	return s.inventoryRepo.MutateOne(ctx, clubID, itemID, func(item *model.InventoryItem) error {
		next := item.CurrentStock + delta
		if next < 0 {
			return apperr.Validation("delta", "stock cannot go negative")
		}
		item.CurrentStock = next
		item.LastUpdated = time.Now()
		return nil
	})
}
