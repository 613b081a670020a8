package models

import (
	"time"
)

// InventoryItem holds a quantity of a food item, always in its base unit.
type InventoryItem struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	KitchenID       uint       `gorm:"not null;uniqueIndex:uq_kitchen_food_storage" json:"kitchen_id"`
	FoodItemID      uint       `gorm:"not null;uniqueIndex:uq_kitchen_food_storage" json:"food_item_id"`
	StorageLocation string     `gorm:"size:50;not null;uniqueIndex:uq_kitchen_food_storage" json:"storage_location"`
	Quantity        float64    `gorm:"not null;default:0" json:"quantity"`
	MinQuantity     *float64   `json:"min_quantity"`
	ExpirationDate  *time.Time `gorm:"type:date" json:"expiration_date"`
	FoodItem        *FoodItem  `gorm:"foreignKey:FoodItemID" json:"food_item,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// TableName returns the table name for the InventoryItem model
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// IsLowStock reports whether the quantity dropped below MinQuantity.
func (i *InventoryItem) IsLowStock() bool {
	if i.MinQuantity == nil {
		return false
	}
	return i.Quantity < *i.MinQuantity
}

// IsExpired reports whether the expiration date lies before today.
func (i *InventoryItem) IsExpired(now time.Time) bool {
	if i.ExpirationDate == nil {
		return false
	}
	return dateOf(*i.ExpirationDate).Before(dateOf(now))
}

// ExpiresSoon reports whether the item expires within days of today.
func (i *InventoryItem) ExpiresSoon(now time.Time, days int) bool {
	if i.ExpirationDate == nil {
		return false
	}
	threshold := dateOf(now).AddDate(0, 0, days)
	return !dateOf(*i.ExpirationDate).After(threshold)
}

// DaysUntilExpiration returns whole days left, negative once expired.
func (i *InventoryItem) DaysUntilExpiration(now time.Time) (int, bool) {
	if i.ExpirationDate == nil {
		return 0, false
	}
	d := dateOf(*i.ExpirationDate).Sub(dateOf(now))
	return int(d.Hours() / 24), true
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// All returns every model managed by auto-migration
func All() []interface{} {
	return []interface{}{
		&Unit{},
		&UnitConversion{},
		&FoodItem{},
		&FoodItemUnitConversion{},
		&Recipe{},
		&RecipeIngredient{},
		&InventoryItem{},
	}
}
