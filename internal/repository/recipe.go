package repository

import (
	"context"

	"github.com/nugamoto/nugamoto/backend/internal/models"
	"gorm.io/gorm"
)

type RecipeRepository interface {
	Create(ctx context.Context, recipe *models.Recipe) error
	GetByID(ctx context.Context, id uint) (*models.Recipe, error)
	List(ctx context.Context, limit, offset int) ([]models.Recipe, error)

	AddIngredient(ctx context.Context, ingredient *models.RecipeIngredient) error
	GetIngredient(ctx context.Context, recipeID, foodItemID uint) (*models.RecipeIngredient, error)
	ListIngredients(ctx context.Context, recipeID uint) ([]models.RecipeIngredient, error)
	UpdateIngredient(ctx context.Context, recipeID, foodItemID uint, updates map[string]interface{}) error
	DeleteIngredient(ctx context.Context, recipeID, foodItemID uint) (bool, error)
}

type recipeRepo struct {
	db *gorm.DB
}

func NewRecipeRepo(db *gorm.DB) RecipeRepository {
	return &recipeRepo{db}
}

func (r *recipeRepo) Create(ctx context.Context, recipe *models.Recipe) error {
	return r.db.WithContext(ctx).Omit("Ingredients").Create(recipe).Error
}

func (r *recipeRepo) GetByID(ctx context.Context, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	query := r.db.WithContext(ctx).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("food_item_id")
		}).
		Preload("Ingredients.FoodItem.BaseUnit").
		Preload("Ingredients.OriginalUnit").
		Where("id = ?", id)
	found, err := first(query, &recipe)
	if err != nil || !found {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepo) List(ctx context.Context, limit, offset int) ([]models.Recipe, error) {
	query := r.db.WithContext(ctx).Order("id")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepo) AddIngredient(ctx context.Context, ingredient *models.RecipeIngredient) error {
	return r.db.WithContext(ctx).Omit("FoodItem", "OriginalUnit").Create(ingredient).Error
}

func (r *recipeRepo) GetIngredient(ctx context.Context, recipeID, foodItemID uint) (*models.RecipeIngredient, error) {
	var ingredient models.RecipeIngredient
	query := r.db.WithContext(ctx).
		Preload("FoodItem.BaseUnit").
		Preload("OriginalUnit").
		Where("recipe_id = ? AND food_item_id = ?", recipeID, foodItemID)
	found, err := first(query, &ingredient)
	if err != nil || !found {
		return nil, err
	}
	return &ingredient, nil
}

func (r *recipeRepo) ListIngredients(ctx context.Context, recipeID uint) ([]models.RecipeIngredient, error) {
	var ingredients []models.RecipeIngredient
	err := r.db.WithContext(ctx).
		Preload("FoodItem.BaseUnit").
		Preload("OriginalUnit").
		Where("recipe_id = ?", recipeID).
		Order("food_item_id").
		Find(&ingredients).Error
	if err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (r *recipeRepo) UpdateIngredient(ctx context.Context, recipeID, foodItemID uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.RecipeIngredient{}).
		Where("recipe_id = ? AND food_item_id = ?", recipeID, foodItemID).
		Updates(updates).Error
}

func (r *recipeRepo) DeleteIngredient(ctx context.Context, recipeID, foodItemID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("recipe_id = ? AND food_item_id = ?", recipeID, foodItemID).
		Delete(&models.RecipeIngredient{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
