// Package seed loads the default unit catalog into the database.
package seed

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/nugamoto/nugamoto/backend/internal/logger"
	"github.com/nugamoto/nugamoto/backend/internal/models"
	"github.com/nugamoto/nugamoto/backend/internal/repository"
	"github.com/nugamoto/nugamoto/backend/internal/service"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type UnitSpec struct {
	Name         string          `yaml:"name"`
	Type         models.UnitType `yaml:"type"`
	ToBaseFactor float64         `yaml:"to_base_factor"`
}

type ConversionSpec struct {
	From   string  `yaml:"from"`
	To     string  `yaml:"to"`
	Factor float64 `yaml:"factor"`
}

// FoodConversionSpec converts From into the food item's base unit
type FoodConversionSpec struct {
	From   string  `yaml:"from"`
	Factor float64 `yaml:"factor"`
}

type FoodItemSpec struct {
	Name        string               `yaml:"name"`
	Category    string               `yaml:"category"`
	BaseUnit    string               `yaml:"base_unit"`
	Conversions []FoodConversionSpec `yaml:"conversions"`
}

// Catalog is the seed file layout
type Catalog struct {
	Units       []UnitSpec       `yaml:"units"`
	Conversions []ConversionSpec `yaml:"conversions"`
	FoodItems   []FoodItemSpec   `yaml:"food_items"`
}

// Result counts the rows created by a seed run
type Result struct {
	Units           int
	Conversions     int
	FoodItems       int
	FoodConversions int
}

// DefaultCatalog parses the embedded catalog
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalog)
}

// ParseCatalog decodes a YAML catalog and checks unit types and factors
func ParseCatalog(data []byte) (*Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	for _, u := range cat.Units {
		if !u.Type.Valid() {
			return nil, fmt.Errorf("unit %q has unknown type %q", u.Name, u.Type)
		}
		if u.ToBaseFactor <= 0 {
			return nil, fmt.Errorf("unit %q needs a positive to_base_factor", u.Name)
		}
	}
	for _, c := range cat.Conversions {
		if c.Factor <= 0 || c.From == c.To {
			return nil, fmt.Errorf("invalid conversion %s -> %s", c.From, c.To)
		}
	}
	for _, f := range cat.FoodItems {
		for _, c := range f.Conversions {
			if c.Factor <= 0 || c.From == f.BaseUnit {
				return nil, fmt.Errorf("invalid conversion %s -> %s for %q", c.From, f.BaseUnit, f.Name)
			}
		}
	}
	return &cat, nil
}

// Run seeds cat in a single transaction. Rows that already exist are left
// untouched, so running it twice is harmless.
func Run(ctx context.Context, db *gorm.DB, cat *Catalog) (*Result, error) {
	var res *Result
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		s := &seeder{
			units:   repository.NewUnitRepo(tx),
			foods:   repository.NewFoodItemRepo(tx),
			unitIDs: make(map[string]uint),
		}
		var err error
		res, err = s.run(ctx, cat)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info("seed finished",
		zap.Int("units", res.Units),
		zap.Int("conversions", res.Conversions),
		zap.Int("food_items", res.FoodItems),
		zap.Int("food_conversions", res.FoodConversions),
	)
	return res, nil
}

type seeder struct {
	units   repository.UnitRepository
	foods   repository.FoodItemRepository
	unitIDs map[string]uint
}

func (s *seeder) run(ctx context.Context, cat *Catalog) (*Result, error) {
	res := &Result{}
	for _, u := range cat.Units {
		created, err := s.unit(ctx, u)
		if err != nil {
			return nil, err
		}
		if created {
			res.Units++
		}
	}

	for _, c := range cat.Conversions {
		created, err := s.conversion(ctx, c)
		if err != nil {
			return nil, err
		}
		if created {
			res.Conversions++
		}
	}

	for _, f := range cat.FoodItems {
		item, created, err := s.foodItem(ctx, f)
		if err != nil {
			return nil, err
		}
		if created {
			res.FoodItems++
		}
		for _, c := range f.Conversions {
			created, err := s.foodConversion(ctx, item, c)
			if err != nil {
				return nil, err
			}
			if created {
				res.FoodConversions++
			}
		}
	}
	return res, nil
}

func (s *seeder) unitID(ctx context.Context, name string) (uint, error) {
	if id, ok := s.unitIDs[name]; ok {
		return id, nil
	}
	unit, err := s.units.GetByName(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("failed to get unit %s: %w", name, err)
	}
	if unit == nil {
		return 0, fmt.Errorf("unit %q is not defined", name)
	}
	s.unitIDs[name] = unit.ID
	return unit.ID, nil
}

func (s *seeder) unit(ctx context.Context, spec UnitSpec) (bool, error) {
	existing, err := s.units.GetByName(ctx, spec.Name)
	if err != nil {
		return false, fmt.Errorf("failed to get unit %s: %w", spec.Name, err)
	}
	if existing != nil {
		s.unitIDs[spec.Name] = existing.ID
		return false, nil
	}

	unit := &models.Unit{Name: spec.Name, Type: spec.Type, ToBaseFactor: spec.ToBaseFactor}
	if err := s.units.Create(ctx, unit); err != nil {
		return false, fmt.Errorf("failed to create unit %s: %w", spec.Name, err)
	}
	s.unitIDs[spec.Name] = unit.ID
	return true, nil
}

func (s *seeder) conversion(ctx context.Context, spec ConversionSpec) (bool, error) {
	from, err := s.unitID(ctx, spec.From)
	if err != nil {
		return false, err
	}
	to, err := s.unitID(ctx, spec.To)
	if err != nil {
		return false, err
	}

	existing, err := s.units.GetUnitConversion(ctx, from, to)
	if err != nil {
		return false, fmt.Errorf("failed to get conversion %s -> %s: %w", spec.From, spec.To, err)
	}
	if existing != nil {
		return false, nil
	}
	if err := s.units.CreateConversion(ctx, &models.UnitConversion{FromUnitID: from, ToUnitID: to, Factor: spec.Factor}); err != nil {
		return false, fmt.Errorf("failed to create conversion %s -> %s: %w", spec.From, spec.To, err)
	}
	return true, nil
}

func (s *seeder) foodItem(ctx context.Context, spec FoodItemSpec) (*models.FoodItem, bool, error) {
	name := service.TitleCase(spec.Name)
	existing, err := s.foods.GetByName(ctx, name)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get food item %s: %w", name, err)
	}
	if existing != nil {
		return existing, false, nil
	}

	baseUnitID, err := s.unitID(ctx, spec.BaseUnit)
	if err != nil {
		return nil, false, err
	}
	item := &models.FoodItem{Name: name, BaseUnitID: baseUnitID}
	if spec.Category != "" {
		category := service.TitleCase(spec.Category)
		item.Category = &category
	}
	if err := s.foods.Create(ctx, item); err != nil {
		return nil, false, fmt.Errorf("failed to create food item %s: %w", name, err)
	}
	return item, true, nil
}

func (s *seeder) foodConversion(ctx context.Context, item *models.FoodItem, spec FoodConversionSpec) (bool, error) {
	from, err := s.unitID(ctx, spec.From)
	if err != nil {
		return false, err
	}

	existing, err := s.foods.GetFoodConversion(ctx, item.ID, from, item.BaseUnitID)
	if err != nil {
		return false, fmt.Errorf("failed to get conversion for %s: %w", item.Name, err)
	}
	if existing != nil {
		return false, nil
	}
	conv := &models.FoodItemUnitConversion{
		FoodItemID: item.ID,
		FromUnitID: from,
		ToUnitID:   item.BaseUnitID,
		Factor:     spec.Factor,
	}
	if err := s.foods.CreateConversion(ctx, conv); err != nil {
		return false, fmt.Errorf("failed to create conversion for %s: %w", item.Name, err)
	}
	return true, nil
}
