package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nugamoto/nugamoto/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoodItemRoutes(t *testing.T) {
	router := setupRouter(t)
	ids := seedUnits(t, router)

	w := doRequest(t, router, http.MethodPost, "/food-items/", gin.H{"name": "garlic", "base_unit_id": 999})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	garlic := created(t, router, "/food-items/", gin.H{"name": "garlic", "category": "vegetables", "base_unit_id": ids.g})
	created(t, router, "/food-items/", gin.H{"name": "milk", "category": "dairy", "base_unit_id": ids.ml})

	w = doRequest(t, router, http.MethodGet, fmt.Sprintf("/food-items/%d", garlic), nil)
	require.Equal(t, http.StatusOK, w.Code)
	item := decode[gin.H](t, w)
	assert.Equal(t, "Garlic", item["name"])
	assert.Equal(t, "Vegetables", item["category"])

	w = doRequest(t, router, http.MethodPost, "/food-items/", gin.H{"name": "Garlic", "base_unit_id": ids.g})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, http.MethodGet, "/food-items/?category=dairy", nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := decode[[]gin.H](t, w)
	require.Len(t, items, 1)
	assert.Equal(t, "Milk", items[0]["name"])

	w = doRequest(t, router, http.MethodGet, "/food-items/?limit=1001", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, http.MethodPatch, fmt.Sprintf("/food-items/%d", garlic), gin.H{"category": "spices"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Spices", decode[gin.H](t, w)["category"])

	w = doRequest(t, router, http.MethodGet, "/food-items/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// ml is Milk's base unit
	w = doRequest(t, router, http.MethodDelete, fmt.Sprintf("/units/%d", ids.ml), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}

func TestFoodConversionRoutes(t *testing.T) {
	router := setupRouter(t)
	ids := seedUnits(t, router)
	garlic := created(t, router, "/food-items/", gin.H{"name": "garlic", "base_unit_id": ids.g})
	onion := created(t, router, "/food-items/", gin.H{"name": "onion", "base_unit_id": ids.g})
	rules := fmt.Sprintf("/food-items/%d/unit-conversions/", garlic)

	w := doRequest(t, router, http.MethodPost, rules, gin.H{
		"food_item_id": onion, "from_unit_id": ids.piece, "to_unit_id": ids.g, "factor": 5,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, "food item id must match the path")

	w = doRequest(t, router, http.MethodPost, rules, gin.H{
		"food_item_id": garlic, "from_unit_id": ids.piece, "to_unit_id": ids.g, "factor": 5,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	rule := decode[types.FoodItemUnitConversionResponse](t, w)
	assert.Equal(t, "Garlic", rule.FoodItemName)
	assert.Equal(t, "piece", rule.FromUnitName)

	w = doRequest(t, router, http.MethodPost, rules, gin.H{
		"food_item_id": garlic, "from_unit_id": ids.piece, "to_unit_id": ids.g, "factor": 6,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, http.MethodGet, rules, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]types.FoodItemUnitConversionResponse](t, w), 1)

	w = doRequest(t, router, http.MethodGet, "/food-items/999/unit-conversions/", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, router, http.MethodGet, fmt.Sprintf("/food-items/%d/with-conversions", garlic), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[types.FoodItemWithConversionsResponse](t, w).UnitConversions, 1)

	convert := func(food, from, to uint) string {
		return fmt.Sprintf("/food-items/%d/convert/?value=3&from_unit_id=%d&to_unit_id=%d", food, from, to)
	}

	w = doRequest(t, router, http.MethodPost, convert(garlic, ids.piece, ids.g), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	result := decode[types.FoodConversionResult](t, w)
	assert.InDelta(t, 15.0, result.ConvertedValue, 1e-9)
	assert.True(t, result.IsFoodSpecific)

	// rules do not leak to other foods
	w = doRequest(t, router, http.MethodPost, convert(onion, ids.piece, ids.g), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "for food item 'Onion'")

	w = doRequest(t, router, http.MethodPost, convert(onion, ids.kg, ids.g), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[types.FoodConversionResult](t, w).IsFoodSpecific)

	w = doRequest(t, router, http.MethodPost, fmt.Sprintf("/food-items/%d/convert/?value=3", garlic), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	canConvert := func(food, from, to uint) any {
		w := doRequest(t, router, http.MethodGet,
			fmt.Sprintf("/food-items/%d/can-convert/?from_unit_id=%d&to_unit_id=%d", food, from, to), nil)
		require.Equal(t, http.StatusOK, w.Code)
		return decode[gin.H](t, w)["can_convert"]
	}
	assert.Equal(t, true, canConvert(garlic, ids.piece, ids.g))
	assert.Equal(t, false, canConvert(garlic, ids.g, ids.piece))
	assert.Equal(t, false, canConvert(onion, ids.piece, ids.g))

	w = doRequest(t, router, http.MethodGet, fmt.Sprintf("/food-items/%d/available-units", garlic), nil)
	require.Equal(t, http.StatusOK, w.Code)
	units := decode[[]types.UnitRef](t, w)
	require.NotEmpty(t, units)
	assert.Equal(t, ids.g, units[0].ID)
	assert.Contains(t, units, types.UnitRef{ID: ids.piece, Name: "piece"})
	assert.Contains(t, units, types.UnitRef{ID: ids.kg, Name: "kg"})

	// piece is pinned by Garlic's own rule
	w = doRequest(t, router, http.MethodDelete, fmt.Sprintf("/units/%d", ids.piece), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, http.MethodDelete, fmt.Sprintf("/food-items/%d/unit-conversions/%d/%d", garlic, ids.piece, ids.g), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = doRequest(t, router, http.MethodDelete, fmt.Sprintf("/food-items/%d/unit-conversions/%d/%d", garlic, ids.piece, ids.g), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, router, http.MethodDelete, fmt.Sprintf("/food-items/%d", onion), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
