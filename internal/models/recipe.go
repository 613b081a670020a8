package models

import (
	"time"
)

type Recipe struct {
	ID          uint               `gorm:"primaryKey" json:"id"`
	Title       string             `gorm:"size:255;not null" json:"title"`
	Description string             `gorm:"type:text" json:"description"`
	Servings    int                `gorm:"not null;default:1" json:"servings"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"ingredients,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// TableName returns the table name for the Recipe model
func (Recipe) TableName() string {
	return "recipes"
}

// RecipeIngredient stores the amount in the food item's base unit together
// with what the user originally entered.
type RecipeIngredient struct {
	RecipeID         uint      `gorm:"primaryKey;autoIncrement:false" json:"recipe_id"`
	FoodItemID       uint      `gorm:"primaryKey;autoIncrement:false" json:"food_item_id"`
	AmountInBaseUnit float64   `gorm:"not null" json:"amount_in_base_unit"`
	OriginalUnitID   *uint     `json:"original_unit_id"`
	OriginalAmount   *float64  `json:"original_amount"`
	FoodItem         *FoodItem `gorm:"foreignKey:FoodItemID" json:"food_item,omitempty"`
	OriginalUnit     *Unit     `gorm:"foreignKey:OriginalUnitID" json:"original_unit,omitempty"`
}

// TableName returns the table name for the RecipeIngredient model
func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}
