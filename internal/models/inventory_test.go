package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestInventoryItemStatus(t *testing.T) {
	now := time.Date(2026, 10, 17, 18, 30, 0, 0, time.UTC)
	minQty := 500.0

	tests := []struct {
		name     string
		item     InventoryItem
		lowStock bool
		expired  bool
		soon     bool
		days     int
		hasDate  bool
	}{
		{name: "no date no minimum", item: InventoryItem{Quantity: 10}},
		{name: "below minimum", item: InventoryItem{Quantity: 300, MinQuantity: &minQty}, lowStock: true},
		{name: "at minimum", item: InventoryItem{Quantity: 500, MinQuantity: &minQty}},
		{name: "expires today", item: InventoryItem{ExpirationDate: date("2026-10-17")}, soon: true, hasDate: true},
		{name: "expires at threshold", item: InventoryItem{ExpirationDate: date("2026-10-20")}, soon: true, days: 3, hasDate: true},
		{name: "expires after threshold", item: InventoryItem{ExpirationDate: date("2026-10-21")}, days: 4, hasDate: true},
		{name: "expired", item: InventoryItem{ExpirationDate: date("2026-10-10")}, expired: true, soon: true, days: -7, hasDate: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.lowStock, tt.item.IsLowStock())
			assert.Equal(t, tt.expired, tt.item.IsExpired(now))
			assert.Equal(t, tt.soon, tt.item.ExpiresSoon(now, 3))
			days, ok := tt.item.DaysUntilExpiration(now)
			assert.Equal(t, tt.hasDate, ok)
			assert.Equal(t, tt.days, days)
		})
	}
}

func TestUnitTypeValid(t *testing.T) {
	for _, ut := range UnitTypes {
		assert.True(t, ut.Valid(), ut)
	}
	assert.False(t, UnitType("length").Valid())
	assert.False(t, UnitType("").Valid())
}
