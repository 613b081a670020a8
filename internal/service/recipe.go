package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nugamoto/nugamoto/backend/internal/models"
	"github.com/nugamoto/nugamoto/backend/internal/repository"
	"github.com/nugamoto/nugamoto/backend/internal/types"
	"github.com/nugamoto/nugamoto/backend/internal/validator"
	"gorm.io/gorm"
)

// RecipeService handles recipes and their ingredients
type RecipeService struct {
	recipes     repository.RecipeRepository
	foods       repository.FoodItemRepository
	conversions IConversionService
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(recipes repository.RecipeRepository, foods repository.FoodItemRepository, conversions IConversionService) *RecipeService {
	return &RecipeService{
		recipes:     recipes,
		foods:       foods,
		conversions: conversions,
	}
}

// CreateRecipe creates a new recipe without ingredients
func (s *RecipeService) CreateRecipe(ctx context.Context, req *types.CreateRecipeRequest) (*models.Recipe, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		Title:       req.Title,
		Description: req.Description,
		Servings:    req.Servings,
	}
	if recipe.Servings == 0 {
		recipe.Servings = 1
	}
	if err := s.recipes.Create(ctx, recipe); err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}
	return recipe, nil
}

// GetRecipe retrieves a recipe with its ingredients
func (s *RecipeService) GetRecipe(ctx context.Context, id uint) (*models.Recipe, error) {
	recipe, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	if recipe == nil {
		return nil, ErrRecipeNotFound
	}
	return recipe, nil
}

// ListRecipes lists recipes without their ingredients
func (s *RecipeService) ListRecipes(ctx context.Context, limit, offset int) ([]models.Recipe, error) {
	if limit == 0 {
		limit = DefaultFoodItemLimit
	}
	recipes, err := s.recipes.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// AddIngredient adds a food item to a recipe. When the base amount is not
// given it is converted from the original amount and unit.
func (s *RecipeService) AddIngredient(ctx context.Context, recipeID uint, req *types.AddIngredientRequest) (*models.RecipeIngredient, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}
	if _, err := s.GetRecipe(ctx, recipeID); err != nil {
		return nil, err
	}

	existing, err := s.recipes.GetIngredient(ctx, recipeID, req.FoodItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to check ingredient: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateIngredient
	}

	amount, err := s.baseAmount(ctx, req.FoodItemID, req.AmountInBaseUnit, req.OriginalAmount, req.OriginalUnitID)
	if err != nil {
		return nil, err
	}

	ingredient := &models.RecipeIngredient{
		RecipeID:         recipeID,
		FoodItemID:       req.FoodItemID,
		AmountInBaseUnit: amount,
		OriginalUnitID:   req.OriginalUnitID,
		OriginalAmount:   req.OriginalAmount,
	}
	if err := s.recipes.AddIngredient(ctx, ingredient); err != nil {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, ErrDuplicateIngredient
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			return nil, fmt.Errorf("%w: %v", ErrInvalidReference, err)
		}
		return nil, fmt.Errorf("failed to add ingredient: %w", err)
	}
	return s.getIngredient(ctx, recipeID, req.FoodItemID)
}

// baseAmount returns the explicit base amount or converts the original one.
// The food item must exist either way.
func (s *RecipeService) baseAmount(ctx context.Context, foodItemID uint, explicit, original *float64, originalUnitID *uint) (float64, error) {
	if explicit != nil {
		item, err := s.foods.GetByID(ctx, foodItemID)
		if err != nil {
			return 0, fmt.Errorf("failed to get food item: %w", err)
		}
		if item == nil {
			return 0, invalidReference("food item", foodItemID)
		}
		return *explicit, nil
	}
	if original == nil || originalUnitID == nil {
		return 0, ErrMissingAmount
	}

	amount, err := s.conversions.ConvertToBaseUnit(ctx, foodItemID, *original, *originalUnitID)
	if errors.Is(err, ErrFoodItemNotFound) {
		return 0, invalidReference("food item", foodItemID)
	}
	return amount, err
}

func (s *RecipeService) getIngredient(ctx context.Context, recipeID, foodItemID uint) (*models.RecipeIngredient, error) {
	ingredient, err := s.recipes.GetIngredient(ctx, recipeID, foodItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ingredient: %w", err)
	}
	if ingredient == nil {
		return nil, ErrIngredientNotFound
	}
	return ingredient, nil
}

// ListIngredients lists the ingredients of a recipe
func (s *RecipeService) ListIngredients(ctx context.Context, recipeID uint) ([]models.RecipeIngredient, error) {
	if _, err := s.GetRecipe(ctx, recipeID); err != nil {
		return nil, err
	}
	ingredients, err := s.recipes.ListIngredients(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	return ingredients, nil
}

// UpdateIngredient changes an ingredient amount. A new original amount or
// unit without an explicit base amount triggers a reconversion.
func (s *RecipeService) UpdateIngredient(ctx context.Context, recipeID, foodItemID uint, req *types.UpdateIngredientRequest) (*models.RecipeIngredient, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}
	current, err := s.getIngredient(ctx, recipeID, foodItemID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	original, unitID := current.OriginalAmount, current.OriginalUnitID
	if req.OriginalAmount != nil {
		original = req.OriginalAmount
		updates["original_amount"] = *req.OriginalAmount
	}
	if req.OriginalUnitID != nil {
		unitID = req.OriginalUnitID
		updates["original_unit_id"] = *req.OriginalUnitID
	}

	switch {
	case req.AmountInBaseUnit != nil:
		updates["amount_in_base_unit"] = *req.AmountInBaseUnit
	case req.OriginalAmount != nil || req.OriginalUnitID != nil:
		amount, err := s.baseAmount(ctx, foodItemID, nil, original, unitID)
		if err != nil {
			return nil, err
		}
		updates["amount_in_base_unit"] = amount
	}

	if err := s.recipes.UpdateIngredient(ctx, recipeID, foodItemID, updates); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidReference, err)
		}
		return nil, fmt.Errorf("failed to update ingredient: %w", err)
	}
	return s.getIngredient(ctx, recipeID, foodItemID)
}

// DeleteIngredient removes a food item from a recipe
func (s *RecipeService) DeleteIngredient(ctx context.Context, recipeID, foodItemID uint) error {
	deleted, err := s.recipes.DeleteIngredient(ctx, recipeID, foodItemID)
	if err != nil {
		return fmt.Errorf("failed to delete ingredient: %w", err)
	}
	if !deleted {
		return ErrIngredientNotFound
	}
	return nil
}
