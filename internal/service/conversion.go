package service

import (
	"context"
	"fmt"

	"github.com/nugamoto/nugamoto/backend/internal/conversion"
	"github.com/nugamoto/nugamoto/backend/internal/models"
	"github.com/nugamoto/nugamoto/backend/internal/repository"
	"github.com/nugamoto/nugamoto/backend/internal/types"
)

// ConversionService answers conversions relative to a food item's base unit
type ConversionService struct {
	foods    repository.FoodItemRepository
	units    repository.UnitRepository
	resolver *conversion.Resolver
}

// NewConversionService creates a new ConversionService instance
func NewConversionService(foods repository.FoodItemRepository, units repository.UnitRepository) *ConversionService {
	return &ConversionService{
		foods:    foods,
		units:    units,
		resolver: conversion.NewResolver(units, foods),
	}
}

// ConvertToBaseUnit converts amount given in fromUnitID into the food
// item's base unit.
func (s *ConversionService) ConvertToBaseUnit(ctx context.Context, foodItemID uint, amount float64, fromUnitID uint) (float64, error) {
	item, err := s.foods.GetByID(ctx, foodItemID)
	if err != nil {
		return 0, fmt.Errorf("failed to get food item: %w", err)
	}
	if item == nil {
		return 0, ErrFoodItemNotFound
	}
	if fromUnitID == item.BaseUnitID {
		return amount, nil
	}

	res, err := s.resolver.ConvertFoodValue(ctx, foodItemID, amount, fromUnitID, item.BaseUnitID)
	if err != nil {
		if !conversion.IsUnresolvable(err) {
			return 0, fmt.Errorf("failed to resolve conversion: %w", err)
		}
		logUnresolvable(err)
		nerr := &NoConversionError{
			FromUnit: fmt.Sprintf("unit %d", fromUnitID),
			FoodItem: item.Name,
			Err:      err,
		}
		if item.BaseUnit != nil {
			nerr.ToUnit = item.BaseUnit.Name
		}
		if from, _ := s.units.GetUnit(ctx, fromUnitID); from != nil {
			nerr.FromUnit = from.Name
		}
		return 0, nerr
	}
	return res.Value, nil
}

// AvailableUnitsForFoodItem lists the base unit followed by every unit named
// in the food item's own conversions.
func (s *ConversionService) AvailableUnitsForFoodItem(ctx context.Context, foodItemID uint) ([]types.UnitRef, error) {
	item, err := s.foods.GetWithConversions(ctx, foodItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get food item: %w", err)
	}
	if item == nil {
		return nil, ErrFoodItemNotFound
	}

	refs := newUnitRefSet()
	if item.BaseUnit != nil {
		refs.add(item.BaseUnit)
	}
	for _, c := range item.UnitConversions {
		refs.add(c.FromUnit)
		refs.add(c.ToUnit)
	}
	return refs.list, nil
}

// CompatibleUnitsForBaseUnit lists the units sharing the base unit's type,
// ordered by name.
func (s *ConversionService) CompatibleUnitsForBaseUnit(ctx context.Context, baseUnitID uint) ([]types.UnitRef, error) {
	base, err := s.units.GetUnit(ctx, baseUnitID)
	if err != nil {
		return nil, fmt.Errorf("failed to get unit: %w", err)
	}
	if base == nil {
		return nil, ErrUnitNotFound
	}

	units, err := s.units.List(ctx, &base.Type)
	if err != nil {
		return nil, fmt.Errorf("failed to list units: %w", err)
	}
	refs := newUnitRefSet()
	for i := range units {
		refs.add(&units[i])
	}
	return refs.list, nil
}

// AllAvailableUnitsForFoodItem merges the food-specific units with the
// generic units compatible with its base unit. Food-specific units come first.
func (s *ConversionService) AllAvailableUnitsForFoodItem(ctx context.Context, foodItemID uint) ([]types.UnitRef, error) {
	specific, err := s.AvailableUnitsForFoodItem(ctx, foodItemID)
	if err != nil {
		return nil, err
	}
	item, err := s.foods.GetByID(ctx, foodItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get food item: %w", err)
	}
	if item == nil || item.BaseUnitID == 0 {
		return specific, nil
	}

	generic, err := s.CompatibleUnitsForBaseUnit(ctx, item.BaseUnitID)
	if err != nil {
		return nil, err
	}

	refs := newUnitRefSet()
	for _, r := range append(specific, generic...) {
		refs.addRef(r)
	}
	return refs.list, nil
}

// unitRefSet keeps insertion order and drops repeated IDs
type unitRefSet struct {
	seen map[uint]struct{}
	list []types.UnitRef
}

func newUnitRefSet() *unitRefSet {
	return &unitRefSet{seen: map[uint]struct{}{}, list: []types.UnitRef{}}
}

func (s *unitRefSet) add(u *models.Unit) {
	if u == nil {
		return
	}
	s.addRef(types.UnitRef{ID: u.ID, Name: u.Name})
}

func (s *unitRefSet) addRef(r types.UnitRef) {
	if _, ok := s.seen[r.ID]; ok {
		return
	}
	s.seen[r.ID] = struct{}{}
	s.list = append(s.list, r)
}
