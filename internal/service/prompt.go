package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/nugamoto/nugamoto/backend/internal/logger"
	"github.com/nugamoto/nugamoto/backend/internal/models"
	"github.com/nugamoto/nugamoto/backend/internal/types"
	"go.uber.org/zap"
)

const (
	statusExpiresIn = "⚠️ EXPIRES IN %d DAYS"
	statusExpired   = "❌ EXPIRED"
	statusLowStock  = "📉 LOW STOCK"
)

// PromptFormatter renders inventory items as lines for the recipe
// suggestion prompt.
type PromptFormatter struct {
	conversions   IConversionService
	thresholdDays int
	now           func() time.Time
}

// NewPromptFormatter creates a formatter. thresholdDays controls when an
// item counts as expiring soon.
func NewPromptFormatter(conversions IConversionService, thresholdDays int, now func() time.Time) *PromptFormatter {
	if now == nil {
		now = time.Now
	}
	return &PromptFormatter{
		conversions:   conversions,
		thresholdDays: thresholdDays,
		now:           now,
	}
}

// FormatInventoryItems returns one line per item: expiring items first, then
// low stock, then by food name. Items need FoodItem.BaseUnit preloaded.
func (f *PromptFormatter) FormatInventoryItems(ctx context.Context, items []models.InventoryItem) []string {
	if len(items) == 0 {
		return []string{}
	}
	now := f.now()

	sorted := make([]models.InventoryItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := &sorted[i], &sorted[j]
		if ea, eb := a.ExpiresSoon(now, f.thresholdDays), b.ExpiresSoon(now, f.thresholdDays); ea != eb {
			return ea
		}
		if la, lb := a.IsLowStock(), b.IsLowStock(); la != lb {
			return la
		}
		return foodName(a) < foodName(b)
	})

	lines := make([]string, 0, len(sorted))
	for i := range sorted {
		lines = append(lines, f.formatItem(ctx, &sorted[i], now))
	}
	return lines
}

func (f *PromptFormatter) formatItem(ctx context.Context, item *models.InventoryItem, now time.Time) string {
	var b strings.Builder

	baseUnit := "units"
	var foodID uint
	if item.FoodItem != nil {
		foodID = item.FoodItem.ID
		if item.FoodItem.BaseUnit != nil {
			baseUnit = item.FoodItem.BaseUnit.Name
		}
	}
	fmt.Fprintf(&b, "- %s (ID: %d): %s %s", foodName(item), foodID, FormatQuantity(item.Quantity), baseUnit)

	if units := f.availableUnits(ctx, item.FoodItem); len(units) > 0 {
		b.WriteString(" | Available Units: ")
		b.WriteString(strings.Join(units, ", "))
	}

	if indicators := f.statusIndicators(item, now); len(indicators) > 0 {
		b.WriteString(" | ")
		b.WriteString(strings.Join(indicators, " | "))
	} else if item.ExpirationDate != nil {
		b.WriteString(" | Expires: ")
		b.WriteString(item.ExpirationDate.Format(types.DateLayout))
	}
	return b.String()
}

// availableUnits renders "name (ID: n)" deduplicated and sorted, falling
// back to the base unit when the lookup fails.
func (f *PromptFormatter) availableUnits(ctx context.Context, food *models.FoodItem) []string {
	if food == nil {
		return nil
	}
	refs, err := f.conversions.AllAvailableUnitsForFoodItem(ctx, food.ID)
	if err != nil {
		logger.Warn("falling back to base unit for prompt line",
			zap.Uint("food_item_id", food.ID),
			zap.Error(err),
		)
		if food.BaseUnit == nil {
			return nil
		}
		refs = []types.UnitRef{{ID: food.BaseUnit.ID, Name: food.BaseUnit.Name}}
	}

	seen := make(map[uint]struct{}, len(refs))
	units := make([]string, 0, len(refs))
	for _, r := range refs {
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}
		units = append(units, fmt.Sprintf("%s (ID: %d)", r.Name, r.ID))
	}
	sort.Strings(units)
	return units
}

func (f *PromptFormatter) statusIndicators(item *models.InventoryItem, now time.Time) []string {
	var indicators []string
	switch {
	case item.IsExpired(now):
		indicators = append(indicators, statusExpired)
	case item.ExpiresSoon(now, f.thresholdDays):
		days, _ := item.DaysUntilExpiration(now)
		indicators = append(indicators, fmt.Sprintf(statusExpiresIn, days))
	}
	if item.IsLowStock() {
		indicators = append(indicators, statusLowStock)
	}
	return indicators
}

// FormatQuantity prints whole numbers without decimals and everything else
// with one decimal.
func FormatQuantity(q float64) string {
	if q == math.Trunc(q) {
		return strconv.FormatFloat(q, 'f', -1, 64)
	}
	return fmt.Sprintf("%.1f", q)
}

func foodName(item *models.InventoryItem) string {
	if item.FoodItem == nil {
		return ""
	}
	return item.FoodItem.Name
}
