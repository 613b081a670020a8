package repository

import (
	"context"

	"github.com/nugamoto/nugamoto/backend/internal/models"
	"gorm.io/gorm"
)

type FoodItemRepository interface {
	Create(ctx context.Context, item *models.FoodItem) error
	GetByID(ctx context.Context, id uint) (*models.FoodItem, error)
	GetByName(ctx context.Context, name string) (*models.FoodItem, error)
	GetWithConversions(ctx context.Context, id uint) (*models.FoodItem, error)
	List(ctx context.Context, filters models.FoodItemFilters) ([]models.FoodItem, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) error
	Delete(ctx context.Context, id uint) (bool, error)

	CreateConversion(ctx context.Context, conv *models.FoodItemUnitConversion) error
	GetFoodConversion(ctx context.Context, foodItemID, fromUnitID, toUnitID uint) (*models.FoodItemUnitConversion, error)
	ListConversions(ctx context.Context, foodItemID uint) ([]models.FoodItemUnitConversion, error)
	DeleteConversion(ctx context.Context, foodItemID, fromUnitID, toUnitID uint) (bool, error)
}

type foodItemRepo struct {
	db *gorm.DB
}

func NewFoodItemRepo(db *gorm.DB) FoodItemRepository {
	return &foodItemRepo{db}
}

func (r *foodItemRepo) Create(ctx context.Context, item *models.FoodItem) error {
	return r.db.WithContext(ctx).Omit("BaseUnit", "UnitConversions").Create(item).Error
}

func (r *foodItemRepo) GetByID(ctx context.Context, id uint) (*models.FoodItem, error) {
	var item models.FoodItem
	found, err := first(r.db.WithContext(ctx).Preload("BaseUnit").Where("id = ?", id), &item)
	if err != nil || !found {
		return nil, err
	}
	return &item, nil
}

func (r *foodItemRepo) GetByName(ctx context.Context, name string) (*models.FoodItem, error) {
	var item models.FoodItem
	found, err := first(r.db.WithContext(ctx).Where("name = ?", name), &item)
	if err != nil || !found {
		return nil, err
	}
	return &item, nil
}

// GetWithConversions eagerly loads the base unit and every food-specific
// conversion with its units.
func (r *foodItemRepo) GetWithConversions(ctx context.Context, id uint) (*models.FoodItem, error) {
	var item models.FoodItem
	query := r.db.WithContext(ctx).
		Preload("BaseUnit").
		Preload("UnitConversions", func(db *gorm.DB) *gorm.DB {
			return db.Order("from_unit_id").Order("to_unit_id")
		}).
		Preload("UnitConversions.FromUnit").
		Preload("UnitConversions.ToUnit").
		Where("id = ?", id)
	found, err := first(query, &item)
	if err != nil || !found {
		return nil, err
	}
	return &item, nil
}

func (r *foodItemRepo) List(ctx context.Context, filters models.FoodItemFilters) ([]models.FoodItem, error) {
	query := r.db.WithContext(ctx).Preload("BaseUnit").Order("name")
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.Skip > 0 {
		query = query.Offset(filters.Skip)
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}

	var items []models.FoodItem
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *foodItemRepo) Update(ctx context.Context, id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.FoodItem{}).Where("id = ?", id).Updates(updates).Error
}

// Delete removes the food item and its food-specific conversions.
func (r *foodItemRepo) Delete(ctx context.Context, id uint) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("food_item_id = ?", id).Delete(&models.FoodItemUnitConversion{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.FoodItem{}, id)
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	return deleted, err
}

func (r *foodItemRepo) CreateConversion(ctx context.Context, conv *models.FoodItemUnitConversion) error {
	return r.db.WithContext(ctx).Omit("FoodItem", "FromUnit", "ToUnit").Create(conv).Error
}

func (r *foodItemRepo) GetFoodConversion(ctx context.Context, foodItemID, fromUnitID, toUnitID uint) (*models.FoodItemUnitConversion, error) {
	var conv models.FoodItemUnitConversion
	query := r.db.WithContext(ctx).Where(
		"food_item_id = ? AND from_unit_id = ? AND to_unit_id = ?",
		foodItemID, fromUnitID, toUnitID,
	)
	found, err := first(query, &conv)
	if err != nil || !found {
		return nil, err
	}
	return &conv, nil
}

func (r *foodItemRepo) ListConversions(ctx context.Context, foodItemID uint) ([]models.FoodItemUnitConversion, error) {
	var convs []models.FoodItemUnitConversion
	err := r.db.WithContext(ctx).
		Preload("FoodItem").
		Preload("FromUnit").
		Preload("ToUnit").
		Where("food_item_id = ?", foodItemID).
		Order("from_unit_id").
		Order("to_unit_id").
		Find(&convs).Error
	if err != nil {
		return nil, err
	}
	return convs, nil
}

func (r *foodItemRepo) DeleteConversion(ctx context.Context, foodItemID, fromUnitID, toUnitID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("food_item_id = ? AND from_unit_id = ? AND to_unit_id = ?", foodItemID, fromUnitID, toUnitID).
		Delete(&models.FoodItemUnitConversion{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
