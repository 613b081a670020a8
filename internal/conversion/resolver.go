package conversion

import (
	"context"
	"errors"
)

// Result is the outcome of a food-aware conversion.
type Result struct {
	Value        float64
	Factor       float64
	FoodSpecific bool
}

// Resolver applies the food-aware policy: identity, then the food-specific
// rule, then the generic registry. Nothing is cached between calls.
type Resolver struct {
	registry  *Registry
	overrides *Overrides
}

func NewResolver(units UnitStore, foods FoodConversionStore) *Resolver {
	return &Resolver{
		registry:  NewRegistry(units),
		overrides: NewOverrides(foods),
	}
}

// Factor returns the factor to apply and whether it came from a
// food-specific rule.
func (r *Resolver) Factor(ctx context.Context, foodItemID, fromUnitID, toUnitID uint) (float64, bool, error) {
	if fromUnitID == toUnitID {
		return 1.0, false, nil
	}

	factor, err := r.overrides.Factor(ctx, foodItemID, fromUnitID, toUnitID)
	if err == nil {
		return factor, true, nil
	}
	if !IsUnresolvable(err) {
		return 0, false, err
	}

	factor, err = r.registry.ConversionFactor(ctx, fromUnitID, toUnitID)
	if err != nil {
		var ue *UnresolvableError
		if errors.As(err, &ue) {
			ue.FoodItemID = foodItemID
		}
		return 0, false, err
	}
	return factor, false, nil
}

// ConvertFoodValue converts value for a food item. Identity pairs return the
// value untouched without consulting storage.
func (r *Resolver) ConvertFoodValue(ctx context.Context, foodItemID uint, value float64, fromUnitID, toUnitID uint) (Result, error) {
	if fromUnitID == toUnitID {
		return Result{Value: value, Factor: 1.0}, nil
	}

	factor, specific, err := r.Factor(ctx, foodItemID, fromUnitID, toUnitID)
	if err != nil {
		return Result{}, err
	}
	return Result{Value: value * factor, Factor: factor, FoodSpecific: specific}, nil
}

// CanConvertFoodUnits mirrors ConvertFoodValue as a boolean. Only storage
// failures are returned as errors.
func (r *Resolver) CanConvertFoodUnits(ctx context.Context, foodItemID, fromUnitID, toUnitID uint) (bool, error) {
	if fromUnitID == toUnitID {
		return true, nil
	}
	_, _, err := r.Factor(ctx, foodItemID, fromUnitID, toUnitID)
	if err != nil {
		if IsUnresolvable(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
