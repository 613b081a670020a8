package service

import (
	"context"

	"github.com/nugamoto/nugamoto/backend/internal/models"
	"github.com/nugamoto/nugamoto/backend/internal/types"
)

// IUnitService defines the interface for unit and generic conversion operations
type IUnitService interface {
	CreateUnit(ctx context.Context, req *types.CreateUnitRequest) (*models.Unit, error)
	GetUnit(ctx context.Context, id uint) (*models.Unit, error)
	GetUnitWithConversions(ctx context.Context, id uint) (*types.UnitWithConversionsResponse, error)
	ListUnits(ctx context.Context, unitType *models.UnitType) ([]models.Unit, error)
	UpdateUnit(ctx context.Context, id uint, req *types.UpdateUnitRequest) (*models.Unit, error)
	DeleteUnit(ctx context.Context, id uint) error

	CreateConversion(ctx context.Context, req *types.CreateUnitConversionRequest) (*types.UnitConversionResponse, error)
	ListConversions(ctx context.Context, fromUnitID, toUnitID *uint) ([]types.UnitConversionResponse, error)
	UpdateConversion(ctx context.Context, fromUnitID, toUnitID uint, factor float64) (*types.UnitConversionResponse, error)
	DeleteConversion(ctx context.Context, fromUnitID, toUnitID uint) error

	ConvertValue(ctx context.Context, value float64, fromUnitID, toUnitID uint) (*types.ConversionResult, error)
	CanConvert(ctx context.Context, fromUnitID, toUnitID uint) (bool, error)
}

// IFoodService defines the interface for food items and their conversions
type IFoodService interface {
	CreateFoodItem(ctx context.Context, req *types.CreateFoodItemRequest) (*models.FoodItem, error)
	GetFoodItem(ctx context.Context, id uint) (*models.FoodItem, error)
	GetFoodItemWithConversions(ctx context.Context, id uint) (*types.FoodItemWithConversionsResponse, error)
	ListFoodItems(ctx context.Context, filters models.FoodItemFilters) ([]models.FoodItem, error)
	UpdateFoodItem(ctx context.Context, id uint, req *types.UpdateFoodItemRequest) (*models.FoodItem, error)
	DeleteFoodItem(ctx context.Context, id uint) error

	CreateFoodConversion(ctx context.Context, foodItemID uint, req *types.CreateFoodItemUnitConversionRequest) (*types.FoodItemUnitConversionResponse, error)
	ListFoodConversions(ctx context.Context, foodItemID uint) ([]types.FoodItemUnitConversionResponse, error)
	DeleteFoodConversion(ctx context.Context, foodItemID, fromUnitID, toUnitID uint) error

	ConvertFoodValue(ctx context.Context, foodItemID uint, value float64, fromUnitID, toUnitID uint) (*types.FoodConversionResult, error)
	CanConvertFoodUnits(ctx context.Context, foodItemID, fromUnitID, toUnitID uint) (bool, error)
}

// IConversionService exposes conversions relative to a food item's base unit
type IConversionService interface {
	ConvertToBaseUnit(ctx context.Context, foodItemID uint, amount float64, fromUnitID uint) (float64, error)
	AvailableUnitsForFoodItem(ctx context.Context, foodItemID uint) ([]types.UnitRef, error)
	CompatibleUnitsForBaseUnit(ctx context.Context, baseUnitID uint) ([]types.UnitRef, error)
	AllAvailableUnitsForFoodItem(ctx context.Context, foodItemID uint) ([]types.UnitRef, error)
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	CreateRecipe(ctx context.Context, req *types.CreateRecipeRequest) (*models.Recipe, error)
	GetRecipe(ctx context.Context, id uint) (*models.Recipe, error)
	ListRecipes(ctx context.Context, limit, offset int) ([]models.Recipe, error)
	AddIngredient(ctx context.Context, recipeID uint, req *types.AddIngredientRequest) (*models.RecipeIngredient, error)
	ListIngredients(ctx context.Context, recipeID uint) ([]models.RecipeIngredient, error)
	UpdateIngredient(ctx context.Context, recipeID, foodItemID uint, req *types.UpdateIngredientRequest) (*models.RecipeIngredient, error)
	DeleteIngredient(ctx context.Context, recipeID, foodItemID uint) error
}

// IInventoryService defines the interface for kitchen inventory operations
type IInventoryService interface {
	UpsertItem(ctx context.Context, kitchenID uint, req *types.UpsertInventoryItemRequest) (*types.InventoryItemResponse, error)
	ListItems(ctx context.Context, kitchenID uint) ([]types.InventoryItemResponse, error)
	ListExpiring(ctx context.Context, kitchenID uint) ([]types.InventoryItemResponse, error)
	DeleteItem(ctx context.Context, kitchenID, itemID uint) error
	PromptLines(ctx context.Context, kitchenID uint) ([]string, error)
}

// ICatalogService exports the unit catalog to object storage
type ICatalogService interface {
	Export(ctx context.Context) (*types.CatalogExportResponse, error)
}
