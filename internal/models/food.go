package models

import (
	"time"
)

type FoodItem struct {
	ID              uint                     `gorm:"primaryKey" json:"id"`
	Name            string                   `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Category        *string                  `gorm:"size:50;index" json:"category"`
	BaseUnitID      uint                     `gorm:"not null" json:"base_unit_id"`
	BaseUnit        *Unit                    `gorm:"foreignKey:BaseUnitID" json:"base_unit,omitempty"`
	UnitConversions []FoodItemUnitConversion `gorm:"foreignKey:FoodItemID" json:"-"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

// TableName returns the table name for the FoodItem model
func (FoodItem) TableName() string {
	return "food_items"
}

// FoodItemUnitConversion overrides generic conversions for a single food item,
// e.g. one clove of garlic is 5 g.
type FoodItemUnitConversion struct {
	FoodItemID uint      `gorm:"primaryKey;autoIncrement:false" json:"food_item_id"`
	FromUnitID uint      `gorm:"primaryKey;autoIncrement:false" json:"from_unit_id"`
	ToUnitID   uint      `gorm:"primaryKey;autoIncrement:false" json:"to_unit_id"`
	Factor     float64   `gorm:"not null" json:"factor"`
	FoodItem   *FoodItem `gorm:"foreignKey:FoodItemID" json:"-"`
	FromUnit   *Unit     `gorm:"foreignKey:FromUnitID" json:"-"`
	ToUnit     *Unit     `gorm:"foreignKey:ToUnitID" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName returns the table name for the FoodItemUnitConversion model
func (FoodItemUnitConversion) TableName() string {
	return "food_item_unit_conversions"
}

// FoodItemFilters represents filters for listing food items
type FoodItemFilters struct {
	Category string
	Skip     int
	Limit    int
}
