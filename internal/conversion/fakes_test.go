package conversion

import (
	"context"

	"github.com/nugamoto/nugamoto/backend/internal/models"
	"github.com/stretchr/testify/mock"
)

type pair struct{ from, to uint }

type foodPair struct{ food, from, to uint }

// memStore is an in-memory UnitStore and FoodConversionStore
type memStore struct {
	units    map[uint]*models.Unit
	generic  map[pair]*models.UnitConversion
	specific map[foodPair]*models.FoodItemUnitConversion
	lookups  int
}

func newMemStore() *memStore {
	return &memStore{
		units:    map[uint]*models.Unit{},
		generic:  map[pair]*models.UnitConversion{},
		specific: map[foodPair]*models.FoodItemUnitConversion{},
	}
}

func (s *memStore) addUnit(id uint, name string, t models.UnitType, toBase float64) {
	s.units[id] = &models.Unit{ID: id, Name: name, Type: t, ToBaseFactor: toBase}
}

func (s *memStore) addConversion(from, to uint, factor float64) {
	s.generic[pair{from, to}] = &models.UnitConversion{FromUnitID: from, ToUnitID: to, Factor: factor}
}

func (s *memStore) addFoodConversion(food, from, to uint, factor float64) {
	s.specific[foodPair{food, from, to}] = &models.FoodItemUnitConversion{
		FoodItemID: food, FromUnitID: from, ToUnitID: to, Factor: factor,
	}
}

func (s *memStore) GetUnit(_ context.Context, id uint) (*models.Unit, error) {
	s.lookups++
	return s.units[id], nil
}

func (s *memStore) GetUnitConversion(_ context.Context, from, to uint) (*models.UnitConversion, error) {
	s.lookups++
	return s.generic[pair{from, to}], nil
}

func (s *memStore) GetFoodConversion(_ context.Context, food, from, to uint) (*models.FoodItemUnitConversion, error) {
	s.lookups++
	return s.specific[foodPair{food, from, to}], nil
}

// mockUnitStore lets tests inject storage failures
type mockUnitStore struct {
	mock.Mock
}

func (m *mockUnitStore) GetUnit(ctx context.Context, id uint) (*models.Unit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Unit), args.Error(1)
}

func (m *mockUnitStore) GetUnitConversion(ctx context.Context, from, to uint) (*models.UnitConversion, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UnitConversion), args.Error(1)
}

type mockFoodStore struct {
	mock.Mock
}

func (m *mockFoodStore) GetFoodConversion(ctx context.Context, food, from, to uint) (*models.FoodItemUnitConversion, error) {
	args := m.Called(ctx, food, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FoodItemUnitConversion), args.Error(1)
}
