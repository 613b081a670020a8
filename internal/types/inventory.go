package types

import (
	"github.com/nugamoto/nugamoto/backend/internal/models"
)

// DateLayout is the wire format of inventory expiration dates
const DateLayout = "2006-01-02"

// UpsertInventoryItemRequest adds stock in any convertible unit. UnitID
// defaults to the food item's base unit.
type UpsertInventoryItemRequest struct {
	FoodItemID      uint     `json:"food_item_id" binding:"required,gt=0" validate:"required,gt=0"`
	StorageLocation string   `json:"storage_location" binding:"required,max=50" validate:"required,max=50"`
	Amount          float64  `json:"amount" validate:"gte=0"`
	UnitID          *uint    `json:"unit_id" validate:"omitempty,gt=0"`
	MinQuantity     *float64 `json:"min_quantity" validate:"omitempty,gte=0"`
	ExpirationDate  *string  `json:"expiration_date" validate:"omitempty,datetime=2006-01-02"`
}

// InventoryItemResponse adds the computed status flags
type InventoryItemResponse struct {
	models.InventoryItem
	IsLowStock  bool `json:"is_low_stock"`
	IsExpired   bool `json:"is_expired"`
	ExpiresSoon bool `json:"expires_soon"`
}

// PromptLinesResponse holds formatted inventory lines for the suggestion prompt
type PromptLinesResponse struct {
	Lines []string `json:"lines"`
}

// CatalogExportResponse identifies an uploaded catalog snapshot
type CatalogExportResponse struct {
	Key         string `json:"key"`
	DownloadURL string `json:"download_url,omitempty"`
	UnitCount   int    `json:"unit_count"`
	RuleCount   int    `json:"conversion_count"`
}
