// Package repository contains the gorm-backed data access layer. Get methods
// return (nil, nil) when the row does not exist.
package repository

import (
	"context"
	"errors"

	"github.com/nugamoto/nugamoto/backend/internal/models"
	"gorm.io/gorm"
)

type UnitRepository interface {
	Create(ctx context.Context, unit *models.Unit) error
	GetUnit(ctx context.Context, id uint) (*models.Unit, error)
	GetByName(ctx context.Context, name string) (*models.Unit, error)
	GetWithConversions(ctx context.Context, id uint) (*models.Unit, error)
	List(ctx context.Context, unitType *models.UnitType) ([]models.Unit, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) error
	Delete(ctx context.Context, id uint) (bool, error)
	CountReferences(ctx context.Context, id uint) (int64, error)

	CreateConversion(ctx context.Context, conv *models.UnitConversion) error
	GetUnitConversion(ctx context.Context, fromUnitID, toUnitID uint) (*models.UnitConversion, error)
	ListConversions(ctx context.Context, fromUnitID, toUnitID *uint) ([]models.UnitConversion, error)
	UpdateConversionFactor(ctx context.Context, fromUnitID, toUnitID uint, factor float64) (bool, error)
	DeleteConversion(ctx context.Context, fromUnitID, toUnitID uint) (bool, error)
}

type unitRepo struct {
	db *gorm.DB
}

func NewUnitRepo(db *gorm.DB) UnitRepository {
	return &unitRepo{db}
}

// first runs query.First and turns a missing row into (false, nil)
func first(query *gorm.DB, dest interface{}) (bool, error) {
	err := query.First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *unitRepo) Create(ctx context.Context, unit *models.Unit) error {
	return r.db.WithContext(ctx).Create(unit).Error
}

func (r *unitRepo) GetUnit(ctx context.Context, id uint) (*models.Unit, error) {
	var unit models.Unit
	found, err := first(r.db.WithContext(ctx).Where("id = ?", id), &unit)
	if err != nil || !found {
		return nil, err
	}
	return &unit, nil
}

func (r *unitRepo) GetByName(ctx context.Context, name string) (*models.Unit, error) {
	var unit models.Unit
	found, err := first(r.db.WithContext(ctx).Where("name = ?", name), &unit)
	if err != nil || !found {
		return nil, err
	}
	return &unit, nil
}

// GetWithConversions loads a unit together with its outgoing generic
// conversions and both sides of each conversion.
func (r *unitRepo) GetWithConversions(ctx context.Context, id uint) (*models.Unit, error) {
	var unit models.Unit
	query := r.db.WithContext(ctx).
		Preload("Conversions", func(db *gorm.DB) *gorm.DB {
			return db.Order("to_unit_id")
		}).
		Preload("Conversions.FromUnit").
		Preload("Conversions.ToUnit").
		Where("id = ?", id)
	found, err := first(query, &unit)
	if err != nil || !found {
		return nil, err
	}
	return &unit, nil
}

func (r *unitRepo) List(ctx context.Context, unitType *models.UnitType) ([]models.Unit, error) {
	query := r.db.WithContext(ctx).Order("type").Order("name")
	if unitType != nil {
		query = query.Where("type = ?", *unitType)
	}

	var units []models.Unit
	if err := query.Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

func (r *unitRepo) Update(ctx context.Context, id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Unit{}).Where("id = ?", id).Updates(updates).Error
}

func (r *unitRepo) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Unit{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CountReferences counts generic and food-specific conversions using the
// unit on either side, plus food items measured in it.
func (r *unitRepo) CountReferences(ctx context.Context, id uint) (int64, error) {
	db := r.db.WithContext(ctx)
	var total int64
	for _, query := range []*gorm.DB{
		db.Model(&models.UnitConversion{}).Where("from_unit_id = ? OR to_unit_id = ?", id, id),
		db.Model(&models.FoodItemUnitConversion{}).Where("from_unit_id = ? OR to_unit_id = ?", id, id),
		db.Model(&models.FoodItem{}).Where("base_unit_id = ?", id),
	} {
		var count int64
		if err := query.Count(&count).Error; err != nil {
			return 0, err
		}
		total += count
	}
	return total, nil
}

func (r *unitRepo) CreateConversion(ctx context.Context, conv *models.UnitConversion) error {
	return r.db.WithContext(ctx).Omit("FromUnit", "ToUnit").Create(conv).Error
}

func (r *unitRepo) GetUnitConversion(ctx context.Context, fromUnitID, toUnitID uint) (*models.UnitConversion, error) {
	var conv models.UnitConversion
	query := r.db.WithContext(ctx).Where("from_unit_id = ? AND to_unit_id = ?", fromUnitID, toUnitID)
	found, err := first(query, &conv)
	if err != nil || !found {
		return nil, err
	}
	return &conv, nil
}

func (r *unitRepo) ListConversions(ctx context.Context, fromUnitID, toUnitID *uint) ([]models.UnitConversion, error) {
	query := r.db.WithContext(ctx).
		Preload("FromUnit").
		Preload("ToUnit").
		Order("from_unit_id").
		Order("to_unit_id")
	if fromUnitID != nil {
		query = query.Where("from_unit_id = ?", *fromUnitID)
	}
	if toUnitID != nil {
		query = query.Where("to_unit_id = ?", *toUnitID)
	}

	var convs []models.UnitConversion
	if err := query.Find(&convs).Error; err != nil {
		return nil, err
	}
	return convs, nil
}

func (r *unitRepo) UpdateConversionFactor(ctx context.Context, fromUnitID, toUnitID uint, factor float64) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.UnitConversion{}).
		Where("from_unit_id = ? AND to_unit_id = ?", fromUnitID, toUnitID).
		Update("factor", factor)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *unitRepo) DeleteConversion(ctx context.Context, fromUnitID, toUnitID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("from_unit_id = ? AND to_unit_id = ?", fromUnitID, toUnitID).
		Delete(&models.UnitConversion{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
