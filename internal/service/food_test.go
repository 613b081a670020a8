package service

import (
	"context"
	"math"
	"testing"

	"github.com/nugamoto/nugamoto/backend/internal/conversion"
	"github.com/nugamoto/nugamoto/backend/internal/models"
	"github.com/nugamoto/nugamoto/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFoodItemNormalizes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	g := f.unit(t, "g", models.UnitTypeWeight, 1)

	item, err := f.foodSvc.CreateFoodItem(ctx, &types.CreateFoodItemRequest{
		Name:       " garlic ",
		Category:   ptr("fresh produce"),
		BaseUnitID: g.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Garlic", item.Name)
	require.NotNil(t, item.Category)
	assert.Equal(t, "Fresh Produce", *item.Category)
	require.NotNil(t, item.BaseUnit)
	assert.Equal(t, "g", item.BaseUnit.Name)

	_, err = f.foodSvc.CreateFoodItem(ctx, &types.CreateFoodItemRequest{Name: "GARLIC", BaseUnitID: g.ID})
	assert.ErrorIs(t, err, ErrDuplicateFoodItem)

	_, err = f.foodSvc.CreateFoodItem(ctx, &types.CreateFoodItemRequest{Name: "Onion", BaseUnitID: 9999})
	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestListFoodItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	g := f.unit(t, "g", models.UnitTypeWeight, 1)

	for _, req := range []types.CreateFoodItemRequest{
		{Name: "Onion", Category: ptr("vegetables"), BaseUnitID: g.ID},
		{Name: "Apple", Category: ptr("fruit"), BaseUnitID: g.ID},
		{Name: "Carrot", Category: ptr("Vegetables"), BaseUnitID: g.ID},
	} {
		req := req
		_, err := f.foodSvc.CreateFoodItem(ctx, &req)
		require.NoError(t, err)
	}

	all, err := f.foodSvc.ListFoodItems(ctx, models.FoodItemFilters{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Apple", all[0].Name)

	veg, err := f.foodSvc.ListFoodItems(ctx, models.FoodItemFilters{Category: "vegetables"})
	require.NoError(t, err)
	require.Len(t, veg, 2)
	assert.Equal(t, "Carrot", veg[0].Name)
	assert.Equal(t, "Onion", veg[1].Name)

	page, err := f.foodSvc.ListFoodItems(ctx, models.FoodItemFilters{Skip: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Carrot", page[0].Name)

	_, err = f.foodSvc.ListFoodItems(ctx, models.FoodItemFilters{Limit: MaxFoodItemLimit + 1})
	assert.Error(t, err)
}

func TestUpdateFoodItem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	g := f.unit(t, "g", models.UnitTypeWeight, 1)
	ml := f.unit(t, "ml", models.UnitTypeVolume, 1)
	milk := f.food(t, "milk", g.ID)
	f.food(t, "butter", g.ID)

	updated, err := f.foodSvc.UpdateFoodItem(ctx, milk.ID, &types.UpdateFoodItemRequest{BaseUnitID: &ml.ID})
	require.NoError(t, err)
	assert.Equal(t, ml.ID, updated.BaseUnitID)
	assert.Equal(t, "Milk", updated.Name)

	_, err = f.foodSvc.UpdateFoodItem(ctx, milk.ID, &types.UpdateFoodItemRequest{Name: ptr("butter")})
	assert.ErrorIs(t, err, ErrDuplicateFoodItem)

	_, err = f.foodSvc.UpdateFoodItem(ctx, 9999, &types.UpdateFoodItemRequest{Name: ptr("x")})
	assert.ErrorIs(t, err, ErrFoodItemNotFound)
}

func TestFoodConversionLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	g := f.unit(t, "g", models.UnitTypeWeight, 1)
	clove := f.unit(t, "clove", models.UnitTypeCount, 1)
	garlic := f.food(t, "garlic", g.ID)

	_, err := f.foodSvc.CreateFoodConversion(ctx, garlic.ID, &types.CreateFoodItemUnitConversionRequest{
		FoodItemID: garlic.ID + 1, FromUnitID: clove.ID, ToUnitID: g.ID, Factor: 5,
	})
	assert.ErrorIs(t, err, ErrFoodItemMismatch)

	resp, err := f.foodSvc.CreateFoodConversion(ctx, garlic.ID, &types.CreateFoodItemUnitConversionRequest{
		FoodItemID: garlic.ID, FromUnitID: clove.ID, ToUnitID: g.ID, Factor: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, "Garlic", resp.FoodItemName)
	assert.Equal(t, "clove", resp.FromUnitName)

	_, err = f.foodSvc.CreateFoodConversion(ctx, garlic.ID, &types.CreateFoodItemUnitConversionRequest{
		FoodItemID: garlic.ID, FromUnitID: clove.ID, ToUnitID: g.ID, Factor: 6,
	})
	assert.ErrorIs(t, err, ErrDuplicateConversion)

	list, err := f.foodSvc.ListFoodConversions(ctx, garlic.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	withConv, err := f.foodSvc.GetFoodItemWithConversions(ctx, garlic.ID)
	require.NoError(t, err)
	require.Len(t, withConv.UnitConversions, 1)
	assert.Equal(t, "g", withConv.UnitConversions[0].ToUnitName)

	require.NoError(t, f.foodSvc.DeleteFoodConversion(ctx, garlic.ID, clove.ID, g.ID))
	assert.ErrorIs(t, f.foodSvc.DeleteFoodConversion(ctx, garlic.ID, clove.ID, g.ID), ErrConversionNotFound)

	_, err = f.foodSvc.ListFoodConversions(ctx, 9999)
	assert.ErrorIs(t, err, ErrFoodItemNotFound)
}

func TestConvertFoodValue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	g := f.unit(t, "g", models.UnitTypeWeight, 1)
	kg := f.unit(t, "kg", models.UnitTypeWeight, 1000)
	clove := f.unit(t, "clove", models.UnitTypeCount, 1)
	garlic := f.food(t, "garlic", g.ID)
	onion := f.food(t, "onion", g.ID)
	f.foodRule(t, garlic.ID, clove.ID, g.ID, 5)

	res, err := f.foodSvc.ConvertFoodValue(ctx, garlic.ID, 3, clove.ID, g.ID)
	require.NoError(t, err)
	assert.InDelta(t, 15.0, res.ConvertedValue, 1e-9)
	assert.True(t, res.IsFoodSpecific)
	assert.Equal(t, "Garlic", res.FoodItemName)

	// food-specific rules are never reversed
	_, err = f.foodSvc.ConvertFoodValue(ctx, garlic.ID, 15, g.ID, clove.ID)
	assert.ErrorIs(t, err, conversion.ErrUnresolvable)

	// and never leak to other food items
	_, err = f.foodSvc.ConvertFoodValue(ctx, onion.ID, 3, clove.ID, g.ID)
	assert.ErrorIs(t, err, conversion.ErrUnresolvable)
	assert.Contains(t, err.Error(), "for food item 'Onion'")

	generic, err := f.foodSvc.ConvertFoodValue(ctx, garlic.ID, 2, kg.ID, g.ID)
	require.NoError(t, err)
	assert.InDelta(t, 2000.0, generic.ConvertedValue, 1e-9)
	assert.False(t, generic.IsFoodSpecific)

	for _, v := range []float64{-1, 0, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err = f.foodSvc.ConvertFoodValue(ctx, garlic.ID, v, clove.ID, g.ID)
		assert.ErrorIs(t, err, ErrInvalidValue, "value %v", v)
	}

	// finite input whose result overflows
	_, err = f.foodSvc.ConvertFoodValue(ctx, garlic.ID, math.MaxFloat64, clove.ID, g.ID)
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = f.foodSvc.ConvertFoodValue(ctx, 9999, 1, clove.ID, g.ID)
	assert.ErrorIs(t, err, ErrInvalidReference)

	ok, err := f.foodSvc.CanConvertFoodUnits(ctx, garlic.ID, clove.ID, g.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = f.foodSvc.CanConvertFoodUnits(ctx, onion.ID, clove.ID, g.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteFoodItemRemovesConversions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	g := f.unit(t, "g", models.UnitTypeWeight, 1)
	clove := f.unit(t, "clove", models.UnitTypeCount, 1)
	garlic := f.food(t, "garlic", g.ID)
	f.foodRule(t, garlic.ID, clove.ID, g.ID, 5)

	require.NoError(t, f.foodSvc.DeleteFoodItem(ctx, garlic.ID))
	assert.ErrorIs(t, f.foodSvc.DeleteFoodItem(ctx, garlic.ID), ErrFoodItemNotFound)

	rule, err := f.foods.GetFoodConversion(ctx, garlic.ID, clove.ID, g.ID)
	require.NoError(t, err)
	assert.Nil(t, rule)
}
