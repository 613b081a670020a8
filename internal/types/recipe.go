package types

// CreateRecipeRequest represents a request to create a recipe
type CreateRecipeRequest struct {
	Title       string `json:"title" binding:"required,max=255" validate:"required,max=255"`
	Description string `json:"description"`
	Servings    int    `json:"servings" validate:"omitempty,gt=0"`
}

// AddIngredientRequest adds a food item to a recipe. When AmountInBaseUnit
// is omitted it is computed from OriginalAmount and OriginalUnitID.
type AddIngredientRequest struct {
	FoodItemID       uint     `json:"food_item_id" binding:"required,gt=0" validate:"required,gt=0"`
	AmountInBaseUnit *float64 `json:"amount_in_base_unit" validate:"omitempty,gt=0"`
	OriginalUnitID   *uint    `json:"original_unit_id" validate:"omitempty,gt=0"`
	OriginalAmount   *float64 `json:"original_amount" validate:"omitempty,gt=0"`
}

// UpdateIngredientRequest carries the fields to change
type UpdateIngredientRequest struct {
	AmountInBaseUnit *float64 `json:"amount_in_base_unit" validate:"omitempty,gt=0"`
	OriginalUnitID   *uint    `json:"original_unit_id" validate:"omitempty,gt=0"`
	OriginalAmount   *float64 `json:"original_amount" validate:"omitempty,gt=0"`
}
