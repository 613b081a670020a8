package types

import (
	"time"

	"github.com/nugamoto/nugamoto/backend/internal/models"
)

// CreateFoodItemRequest represents a request to create a food item
type CreateFoodItemRequest struct {
	Name       string  `json:"name" binding:"required,max=100" validate:"required,max=100"`
	Category   *string `json:"category" validate:"omitempty,max=50"`
	BaseUnitID uint    `json:"base_unit_id" binding:"required,gt=0" validate:"required,gt=0"`
}

// UpdateFoodItemRequest carries the fields to change
type UpdateFoodItemRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=1,max=100"`
	Category   *string `json:"category" validate:"omitempty,max=50"`
	BaseUnitID *uint   `json:"base_unit_id" validate:"omitempty,gt=0"`
}

// CreateFoodItemUnitConversionRequest represents a food-specific conversion
type CreateFoodItemUnitConversionRequest struct {
	FoodItemID uint    `json:"food_item_id" binding:"required,gt=0" validate:"required,gt=0"`
	FromUnitID uint    `json:"from_unit_id" binding:"required,gt=0" validate:"required,gt=0"`
	ToUnitID   uint    `json:"to_unit_id" binding:"required,gt=0" validate:"required,gt=0,nefield=FromUnitID"`
	Factor     float64 `json:"factor" binding:"required,gt=0" validate:"required,gt=0"`
}

// FoodItemUnitConversionResponse includes the related names
type FoodItemUnitConversionResponse struct {
	FoodItemID   uint      `json:"food_item_id"`
	FromUnitID   uint      `json:"from_unit_id"`
	ToUnitID     uint      `json:"to_unit_id"`
	Factor       float64   `json:"factor"`
	FoodItemName string    `json:"food_item_name,omitempty"`
	FromUnitName string    `json:"from_unit_name,omitempty"`
	ToUnitName   string    `json:"to_unit_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FoodItemWithConversionsResponse is a food item with its overrides
type FoodItemWithConversionsResponse struct {
	models.FoodItem
	UnitConversions []FoodItemUnitConversionResponse `json:"unit_conversions"`
}

// FoodConversionResult is returned by the food-aware convert endpoint
type FoodConversionResult struct {
	FoodItemID       uint    `json:"food_item_id"`
	FoodItemName     string  `json:"food_item_name"`
	OriginalValue    float64 `json:"original_value"`
	OriginalUnitID   uint    `json:"original_unit_id"`
	OriginalUnitName string  `json:"original_unit_name"`
	ConvertedValue   float64 `json:"converted_value"`
	TargetUnitID     uint    `json:"target_unit_id"`
	TargetUnitName   string  `json:"target_unit_name"`
	ConversionFactor float64 `json:"conversion_factor"`
	IsFoodSpecific   bool    `json:"is_food_specific"`
}

// NewFoodItemUnitConversionResponse flattens a conversion and its preloaded relations
func NewFoodItemUnitConversionResponse(c models.FoodItemUnitConversion) FoodItemUnitConversionResponse {
	resp := FoodItemUnitConversionResponse{
		FoodItemID: c.FoodItemID,
		FromUnitID: c.FromUnitID,
		ToUnitID:   c.ToUnitID,
		Factor:     c.Factor,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
	if c.FoodItem != nil {
		resp.FoodItemName = c.FoodItem.Name
	}
	if c.FromUnit != nil {
		resp.FromUnitName = c.FromUnit.Name
	}
	if c.ToUnit != nil {
		resp.ToUnitName = c.ToUnit.Name
	}
	return resp
}
