package conversion

import (
	"context"
	"fmt"

	"github.com/nugamoto/nugamoto/backend/internal/models"
)

// FoodConversionStore looks up food-specific rules. A missing row is
// reported as (nil, nil).
type FoodConversionStore interface {
	GetFoodConversion(ctx context.Context, foodItemID, fromUnitID, toUnitID uint) (*models.FoodItemUnitConversion, error)
}

// Overrides resolves food-specific factors.
type Overrides struct {
	store FoodConversionStore
}

func NewOverrides(store FoodConversionStore) *Overrides {
	return &Overrides{store: store}
}

// Factor returns the stored factor for exactly (food, from, to). The reverse
// direction is never consulted and rules never apply across food items.
func (o *Overrides) Factor(ctx context.Context, foodItemID, fromUnitID, toUnitID uint) (float64, error) {
	conv, err := o.store.GetFoodConversion(ctx, foodItemID, fromUnitID, toUnitID)
	if err != nil {
		return 0, fmt.Errorf("failed to get food item unit conversion: %w", err)
	}
	if conv == nil {
		return 0, &UnresolvableError{
			FoodItemID: foodItemID,
			From:       fromUnitID,
			To:         toUnitID,
			Reason:     ReasonNoRule,
		}
	}
	return conv.Factor, nil
}
