package service

import (
	"errors"
	"fmt"
)

var (
	ErrUnitNotFound        = errors.New("unit not found")
	ErrDuplicateUnit       = errors.New("unit with this name already exists")
	ErrUnitInUse           = errors.New("unit is referenced by conversions or food items")
	ErrConversionNotFound  = errors.New("conversion not found")
	ErrDuplicateConversion = errors.New("conversion already exists")
	ErrFoodItemNotFound    = errors.New("food item not found")
	ErrDuplicateFoodItem   = errors.New("food item with this name already exists")
	ErrFoodItemMismatch    = errors.New("food_item_id in body does not match path")
	ErrRecipeNotFound      = errors.New("recipe not found")
	ErrIngredientNotFound  = errors.New("ingredient not found")
	ErrDuplicateIngredient = errors.New("ingredient already exists in recipe")
	ErrInventoryNotFound   = errors.New("inventory item not found")
	ErrInvalidValue        = errors.New("value must be a finite number greater than zero")
	ErrMissingAmount       = errors.New("either amount_in_base_unit or original_amount with original_unit_id is required")
	ErrExportDisabled      = errors.New("catalog export is not configured")

	// ErrInvalidReference is wrapped when a request points at an entity
	// that does not exist, as opposed to the addressed resource itself.
	ErrInvalidReference = errors.New("invalid reference")
)

func invalidReference(entity string, id uint) error {
	return fmt.Errorf("%w: %s %d not found", ErrInvalidReference, entity, id)
}

// NoConversionError names the units of a failed conversion. It unwraps to
// the underlying conversion.UnresolvableError.
type NoConversionError struct {
	FromUnit string
	ToUnit   string
	FoodItem string
	Err      error
}

func (e *NoConversionError) Error() string {
	if e.FoodItem != "" {
		return fmt.Sprintf("no conversion available from '%s' to '%s' for food item '%s'", e.FromUnit, e.ToUnit, e.FoodItem)
	}
	return fmt.Sprintf("no conversion available from '%s' to '%s'", e.FromUnit, e.ToUnit)
}

func (e *NoConversionError) Unwrap() error {
	return e.Err
}
