package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nugamoto/nugamoto/backend/internal/conversion"
	"github.com/nugamoto/nugamoto/backend/internal/models"
	"github.com/nugamoto/nugamoto/backend/internal/repository"
	"github.com/nugamoto/nugamoto/backend/internal/types"
	"github.com/nugamoto/nugamoto/backend/internal/validator"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

const (
	DefaultFoodItemLimit = 100
	MaxFoodItemLimit     = 1000
)

// FoodService handles food items and their food-specific conversions
type FoodService struct {
	foods    repository.FoodItemRepository
	units    repository.UnitRepository
	resolver *conversion.Resolver
}

// NewFoodService creates a new FoodService instance
func NewFoodService(foods repository.FoodItemRepository, units repository.UnitRepository) *FoodService {
	return &FoodService{
		foods:    foods,
		units:    units,
		resolver: conversion.NewResolver(units, foods),
	}
}

// TitleCase normalizes food names and categories
func TitleCase(s string) string {
	return cases.Title(language.Und).String(strings.TrimSpace(s))
}

func normalizeCategory(category *string) *string {
	if category == nil {
		return nil
	}
	c := TitleCase(*category)
	if c == "" {
		return nil
	}
	return &c
}

// CreateFoodItem creates a new food item measured in BaseUnitID
func (s *FoodService) CreateFoodItem(ctx context.Context, req *types.CreateFoodItemRequest) (*models.FoodItem, error) {
	req.Name = TitleCase(req.Name)
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	if err := s.checkBaseUnit(ctx, req.BaseUnitID); err != nil {
		return nil, err
	}
	if err := s.checkNameFree(ctx, req.Name, 0); err != nil {
		return nil, err
	}

	item := &models.FoodItem{
		Name:       req.Name,
		Category:   normalizeCategory(req.Category),
		BaseUnitID: req.BaseUnitID,
	}
	if err := s.foods.Create(ctx, item); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateFoodItem
		}
		return nil, fmt.Errorf("failed to create food item: %w", err)
	}
	return s.GetFoodItem(ctx, item.ID)
}

func (s *FoodService) checkBaseUnit(ctx context.Context, unitID uint) error {
	unit, err := s.units.GetUnit(ctx, unitID)
	if err != nil {
		return fmt.Errorf("failed to get base unit: %w", err)
	}
	if unit == nil {
		return invalidReference("base unit", unitID)
	}
	return nil
}

func (s *FoodService) checkNameFree(ctx context.Context, name string, selfID uint) error {
	existing, err := s.foods.GetByName(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to check food item name: %w", err)
	}
	if existing != nil && existing.ID != selfID {
		return ErrDuplicateFoodItem
	}
	return nil
}

// GetFoodItem retrieves a food item with its base unit
func (s *FoodService) GetFoodItem(ctx context.Context, id uint) (*models.FoodItem, error) {
	item, err := s.foods.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get food item: %w", err)
	}
	if item == nil {
		return nil, ErrFoodItemNotFound
	}
	return item, nil
}

// GetFoodItemWithConversions retrieves a food item with all its overrides
func (s *FoodService) GetFoodItemWithConversions(ctx context.Context, id uint) (*types.FoodItemWithConversionsResponse, error) {
	item, err := s.foods.GetWithConversions(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get food item: %w", err)
	}
	if item == nil {
		return nil, ErrFoodItemNotFound
	}

	resp := &types.FoodItemWithConversionsResponse{
		FoodItem:        *item,
		UnitConversions: make([]types.FoodItemUnitConversionResponse, 0, len(item.UnitConversions)),
	}
	for _, c := range item.UnitConversions {
		c.FoodItem = item
		resp.UnitConversions = append(resp.UnitConversions, types.NewFoodItemUnitConversionResponse(c))
	}
	return resp, nil
}

// ListFoodItems lists food items ordered by name
func (s *FoodService) ListFoodItems(ctx context.Context, filters models.FoodItemFilters) ([]models.FoodItem, error) {
	if filters.Skip < 0 {
		return nil, validator.FieldErrors{{FailedField: "skip", Tag: "gte", Value: "0"}}
	}
	if filters.Limit == 0 {
		filters.Limit = DefaultFoodItemLimit
	}
	if filters.Limit < 1 || filters.Limit > MaxFoodItemLimit {
		return nil, validator.FieldErrors{{FailedField: "limit", Tag: "max", Value: fmt.Sprint(MaxFoodItemLimit)}}
	}
	filters.Category = TitleCase(filters.Category)

	items, err := s.foods.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list food items: %w", err)
	}
	return items, nil
}

// UpdateFoodItem applies the non-nil fields of req
func (s *FoodService) UpdateFoodItem(ctx context.Context, id uint, req *types.UpdateFoodItemRequest) (*models.FoodItem, error) {
	if req.Name != nil {
		name := TitleCase(*req.Name)
		req.Name = &name
	}
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	item, err := s.GetFoodItem(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil && *req.Name != item.Name {
		if err := s.checkNameFree(ctx, *req.Name, id); err != nil {
			return nil, err
		}
		updates["name"] = *req.Name
	}
	if req.Category != nil {
		updates["category"] = normalizeCategory(req.Category)
	}
	if req.BaseUnitID != nil {
		if err := s.checkBaseUnit(ctx, *req.BaseUnitID); err != nil {
			return nil, err
		}
		updates["base_unit_id"] = *req.BaseUnitID
	}
	if len(updates) == 0 {
		return item, nil
	}

	if err := s.foods.Update(ctx, id, updates); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateFoodItem
		}
		return nil, fmt.Errorf("failed to update food item: %w", err)
	}
	return s.GetFoodItem(ctx, id)
}

// DeleteFoodItem removes a food item and its food-specific conversions
func (s *FoodService) DeleteFoodItem(ctx context.Context, id uint) error {
	deleted, err := s.foods.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return fmt.Errorf("%w: food item %d is still referenced", ErrInvalidReference, id)
		}
		return fmt.Errorf("failed to delete food item: %w", err)
	}
	if !deleted {
		return ErrFoodItemNotFound
	}
	return nil
}

// CreateFoodConversion stores a food-specific rule. The body must name the
// same food item as the path.
func (s *FoodService) CreateFoodConversion(ctx context.Context, foodItemID uint, req *types.CreateFoodItemUnitConversionRequest) (*types.FoodItemUnitConversionResponse, error) {
	if req.FoodItemID != foodItemID {
		return nil, ErrFoodItemMismatch
	}
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	item, err := s.foods.GetByID(ctx, foodItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get food item: %w", err)
	}
	if item == nil {
		return nil, invalidReference("food item", foodItemID)
	}
	from, err := s.unitRef(ctx, req.FromUnitID)
	if err != nil {
		return nil, err
	}
	to, err := s.unitRef(ctx, req.ToUnitID)
	if err != nil {
		return nil, err
	}

	existing, err := s.foods.GetFoodConversion(ctx, foodItemID, req.FromUnitID, req.ToUnitID)
	if err != nil {
		return nil, fmt.Errorf("failed to check food item unit conversion: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateConversion
	}

	conv := &models.FoodItemUnitConversion{
		FoodItemID: foodItemID,
		FromUnitID: req.FromUnitID,
		ToUnitID:   req.ToUnitID,
		Factor:     req.Factor,
	}
	if err := s.foods.CreateConversion(ctx, conv); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateConversion
		}
		return nil, fmt.Errorf("failed to create food item unit conversion: %w", err)
	}

	conv.FoodItem, conv.FromUnit, conv.ToUnit = item, from, to
	resp := types.NewFoodItemUnitConversionResponse(*conv)
	return &resp, nil
}

func (s *FoodService) unitRef(ctx context.Context, id uint) (*models.Unit, error) {
	unit, err := s.units.GetUnit(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get unit: %w", err)
	}
	if unit == nil {
		return nil, invalidReference("unit", id)
	}
	return unit, nil
}

// ListFoodConversions lists the food-specific rules of a food item
func (s *FoodService) ListFoodConversions(ctx context.Context, foodItemID uint) ([]types.FoodItemUnitConversionResponse, error) {
	if _, err := s.GetFoodItem(ctx, foodItemID); err != nil {
		return nil, err
	}
	convs, err := s.foods.ListConversions(ctx, foodItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list food item unit conversions: %w", err)
	}
	resp := make([]types.FoodItemUnitConversionResponse, 0, len(convs))
	for _, c := range convs {
		resp = append(resp, types.NewFoodItemUnitConversionResponse(c))
	}
	return resp, nil
}

// DeleteFoodConversion removes one food-specific rule
func (s *FoodService) DeleteFoodConversion(ctx context.Context, foodItemID, fromUnitID, toUnitID uint) error {
	deleted, err := s.foods.DeleteConversion(ctx, foodItemID, fromUnitID, toUnitID)
	if err != nil {
		return fmt.Errorf("failed to delete food item unit conversion: %w", err)
	}
	if !deleted {
		return ErrConversionNotFound
	}
	return nil
}

// ConvertFoodValue converts value for a food item, preferring its own rules
func (s *FoodService) ConvertFoodValue(ctx context.Context, foodItemID uint, value float64, fromUnitID, toUnitID uint) (*types.FoodConversionResult, error) {
	if !validValue(value) {
		return nil, ErrInvalidValue
	}

	item, err := s.foods.GetByID(ctx, foodItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get food item: %w", err)
	}
	if item == nil {
		return nil, invalidReference("food item", foodItemID)
	}
	from, err := s.unitRef(ctx, fromUnitID)
	if err != nil {
		return nil, err
	}
	to, err := s.unitRef(ctx, toUnitID)
	if err != nil {
		return nil, err
	}

	res, err := s.resolver.ConvertFoodValue(ctx, foodItemID, value, fromUnitID, toUnitID)
	if err != nil {
		if conversion.IsUnresolvable(err) {
			logUnresolvable(err)
			return nil, &NoConversionError{FromUnit: from.Name, ToUnit: to.Name, FoodItem: item.Name, Err: err}
		}
		return nil, fmt.Errorf("failed to resolve conversion: %w", err)
	}
	if !validValue(res.Value) {
		return nil, ErrInvalidValue
	}

	return &types.FoodConversionResult{
		FoodItemID:       item.ID,
		FoodItemName:     item.Name,
		OriginalValue:    value,
		OriginalUnitID:   from.ID,
		OriginalUnitName: from.Name,
		ConvertedValue:   res.Value,
		TargetUnitID:     to.ID,
		TargetUnitName:   to.Name,
		ConversionFactor: res.Factor,
		IsFoodSpecific:   res.FoodSpecific,
	}, nil
}

// CanConvertFoodUnits reports whether value could be converted for the food item
func (s *FoodService) CanConvertFoodUnits(ctx context.Context, foodItemID, fromUnitID, toUnitID uint) (bool, error) {
	ok, err := s.resolver.CanConvertFoodUnits(ctx, foodItemID, fromUnitID, toUnitID)
	if err != nil {
		return false, fmt.Errorf("failed to check conversion: %w", err)
	}
	return ok, nil
}
