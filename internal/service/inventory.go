package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/nugamoto/nugamoto/backend/internal/models"
	"github.com/nugamoto/nugamoto/backend/internal/repository"
	"github.com/nugamoto/nugamoto/backend/internal/types"
	"github.com/nugamoto/nugamoto/backend/internal/validator"
	"gorm.io/gorm"
)

// InventoryService keeps kitchen stock in each food item's base unit
type InventoryService struct {
	items         repository.InventoryRepository
	foods         repository.FoodItemRepository
	conversions   IConversionService
	prompt        *PromptFormatter
	thresholdDays int
	now           func() time.Time
}

// InventoryOption configures an InventoryService
type InventoryOption func(*InventoryService)

// WithClock replaces time.Now, mostly for tests
func WithClock(now func() time.Time) InventoryOption {
	return func(s *InventoryService) {
		s.now = now
	}
}

// NewInventoryService creates a new InventoryService. thresholdDays is the
// window in which items count as expiring soon.
func NewInventoryService(items repository.InventoryRepository, foods repository.FoodItemRepository, conversions IConversionService, thresholdDays int, opts ...InventoryOption) *InventoryService {
	s := &InventoryService{
		items:         items,
		foods:         foods,
		conversions:   conversions,
		thresholdDays: thresholdDays,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.prompt = NewPromptFormatter(conversions, thresholdDays, s.now)
	return s
}

// UpsertItem sets the stock of a food item at a storage location. The amount
// is converted into the food item's base unit first.
func (s *InventoryService) UpsertItem(ctx context.Context, kitchenID uint, req *types.UpsertInventoryItemRequest) (*types.InventoryItemResponse, error) {
	req.StorageLocation = strings.TrimSpace(req.StorageLocation)
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	food, err := s.foods.GetByID(ctx, req.FoodItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get food item: %w", err)
	}
	if food == nil {
		return nil, invalidReference("food item", req.FoodItemID)
	}

	unitID := food.BaseUnitID
	if req.UnitID != nil {
		unitID = *req.UnitID
	}
	quantity, err := s.conversions.ConvertToBaseUnit(ctx, food.ID, req.Amount, unitID)
	if err != nil {
		return nil, err
	}

	var expires *time.Time
	if req.ExpirationDate != nil {
		d, err := time.Parse(types.DateLayout, *req.ExpirationDate)
		if err != nil {
			return nil, validator.FieldErrors{{FailedField: "expiration_date", Tag: "datetime", Value: types.DateLayout}}
		}
		expires = &d
	}

	existing, err := s.items.Find(ctx, kitchenID, food.ID, req.StorageLocation)
	if err != nil {
		return nil, fmt.Errorf("failed to find inventory item: %w", err)
	}

	var id uint
	if existing != nil {
		updates := map[string]interface{}{"quantity": quantity}
		if req.MinQuantity != nil {
			updates["min_quantity"] = *req.MinQuantity
		}
		if expires != nil {
			updates["expiration_date"] = *expires
		}
		if err := s.items.Update(ctx, existing.ID, updates); err != nil {
			return nil, fmt.Errorf("failed to update inventory item: %w", err)
		}
		id = existing.ID
	} else {
		item := &models.InventoryItem{
			KitchenID:       kitchenID,
			FoodItemID:      food.ID,
			StorageLocation: req.StorageLocation,
			Quantity:        quantity,
			MinQuantity:     req.MinQuantity,
			ExpirationDate:  expires,
		}
		if err := s.items.Create(ctx, item); err != nil {
			if errors.Is(err, gorm.ErrForeignKeyViolated) {
				return nil, fmt.Errorf("%w: %v", ErrInvalidReference, err)
			}
			return nil, fmt.Errorf("failed to create inventory item: %w", err)
		}
		id = item.ID
	}

	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}
	if item == nil {
		return nil, ErrInventoryNotFound
	}
	resp := s.toResponse(*item, s.now())
	return &resp, nil
}

// ListItems lists the stock of a kitchen with status flags
func (s *InventoryService) ListItems(ctx context.Context, kitchenID uint) ([]types.InventoryItemResponse, error) {
	items, err := s.items.ListByKitchen(ctx, kitchenID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	now := s.now()
	resp := make([]types.InventoryItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, s.toResponse(item, now))
	}
	return resp, nil
}

// ListExpiring lists expired items and items expiring within the threshold,
// soonest first.
func (s *InventoryService) ListExpiring(ctx context.Context, kitchenID uint) ([]types.InventoryItemResponse, error) {
	all, err := s.ListItems(ctx, kitchenID)
	if err != nil {
		return nil, err
	}
	expiring := make([]types.InventoryItemResponse, 0, len(all))
	for _, item := range all {
		if item.ExpiresSoon {
			expiring = append(expiring, item)
		}
	}
	sort.SliceStable(expiring, func(i, j int) bool {
		return expiring[i].ExpirationDate.Before(*expiring[j].ExpirationDate)
	})
	return expiring, nil
}

// DeleteItem removes an inventory item from a kitchen
func (s *InventoryService) DeleteItem(ctx context.Context, kitchenID, itemID uint) error {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return fmt.Errorf("failed to get inventory item: %w", err)
	}
	if item == nil || item.KitchenID != kitchenID {
		return ErrInventoryNotFound
	}
	if _, err := s.items.Delete(ctx, itemID); err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}
	return nil
}

// PromptLines formats the kitchen stock for the recipe suggestion prompt
func (s *InventoryService) PromptLines(ctx context.Context, kitchenID uint) ([]string, error) {
	items, err := s.items.ListByKitchen(ctx, kitchenID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	return s.prompt.FormatInventoryItems(ctx, items), nil
}

func (s *InventoryService) toResponse(item models.InventoryItem, now time.Time) types.InventoryItemResponse {
	return types.InventoryItemResponse{
		InventoryItem: item,
		IsLowStock:    item.IsLowStock(),
		IsExpired:     item.IsExpired(now),
		ExpiresSoon:   item.ExpiresSoon(now, s.thresholdDays),
	}
}
