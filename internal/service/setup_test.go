package service

import (
	"context"
	"testing"

	"github.com/nugamoto/nugamoto/backend/internal/models"
	"github.com/nugamoto/nugamoto/backend/internal/repository"
	"github.com/nugamoto/nugamoto/backend/internal/testhelpers"
	"github.com/nugamoto/nugamoto/backend/internal/types"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	units     repository.UnitRepository
	foods     repository.FoodItemRepository
	recipes   repository.RecipeRepository
	inventory repository.InventoryRepository

	unitSvc *UnitService
	foodSvc *FoodService
	convSvc *ConversionService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testhelpers.SetupSQLite(t)

	f := &fixture{
		units:     repository.NewUnitRepo(db),
		foods:     repository.NewFoodItemRepo(db),
		recipes:   repository.NewRecipeRepo(db),
		inventory: repository.NewInventoryRepo(db),
	}
	f.unitSvc = NewUnitService(f.units)
	f.foodSvc = NewFoodService(f.foods, f.units)
	f.convSvc = NewConversionService(f.foods, f.units)
	return f
}

func (f *fixture) unit(t *testing.T, name string, unitType models.UnitType, factor float64) *models.Unit {
	t.Helper()
	u, err := f.unitSvc.CreateUnit(context.Background(), &types.CreateUnitRequest{
		Name:         name,
		Type:         unitType,
		ToBaseFactor: &factor,
	})
	require.NoError(t, err)
	return u
}

func (f *fixture) food(t *testing.T, name string, baseUnitID uint) *models.FoodItem {
	t.Helper()
	item, err := f.foodSvc.CreateFoodItem(context.Background(), &types.CreateFoodItemRequest{
		Name:       name,
		BaseUnitID: baseUnitID,
	})
	require.NoError(t, err)
	return item
}

func (f *fixture) foodRule(t *testing.T, foodID, fromID, toID uint, factor float64) {
	t.Helper()
	_, err := f.foodSvc.CreateFoodConversion(context.Background(), foodID, &types.CreateFoodItemUnitConversionRequest{
		FoodItemID: foodID,
		FromUnitID: fromID,
		ToUnitID:   toID,
		Factor:     factor,
	})
	require.NoError(t, err)
}

func ptr[T any](v T) *T {
	return &v
}
