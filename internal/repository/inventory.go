package repository

import (
	"context"

	"github.com/nugamoto/nugamoto/backend/internal/models"
	"gorm.io/gorm"
)

type InventoryRepository interface {
	Find(ctx context.Context, kitchenID, foodItemID uint, storageLocation string) (*models.InventoryItem, error)
	Create(ctx context.Context, item *models.InventoryItem) error
	Update(ctx context.Context, id uint, updates map[string]interface{}) error
	GetByID(ctx context.Context, id uint) (*models.InventoryItem, error)
	ListByKitchen(ctx context.Context, kitchenID uint) ([]models.InventoryItem, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type inventoryRepo struct {
	db *gorm.DB
}

func NewInventoryRepo(db *gorm.DB) InventoryRepository {
	return &inventoryRepo{db}
}

func (r *inventoryRepo) withFood(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("FoodItem.BaseUnit")
}

func (r *inventoryRepo) Find(ctx context.Context, kitchenID, foodItemID uint, storageLocation string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	query := r.db.WithContext(ctx).Where(
		"kitchen_id = ? AND food_item_id = ? AND storage_location = ?",
		kitchenID, foodItemID, storageLocation,
	)
	found, err := first(query, &item)
	if err != nil || !found {
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepo) Create(ctx context.Context, item *models.InventoryItem) error {
	return r.db.WithContext(ctx).Omit("FoodItem").Create(item).Error
}

func (r *inventoryRepo) Update(ctx context.Context, id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.InventoryItem{}).Where("id = ?", id).Updates(updates).Error
}

func (r *inventoryRepo) GetByID(ctx context.Context, id uint) (*models.InventoryItem, error) {
	var item models.InventoryItem
	found, err := first(r.withFood(ctx).Where("id = ?", id), &item)
	if err != nil || !found {
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepo) ListByKitchen(ctx context.Context, kitchenID uint) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := r.withFood(ctx).Where("kitchen_id = ?", kitchenID).Order("id").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *inventoryRepo) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.InventoryItem{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
