package seed

import (
	"context"
	"testing"

	"github.com/nugamoto/nugamoto/backend/internal/conversion"
	"github.com/nugamoto/nugamoto/backend/internal/repository"
	"github.com/nugamoto/nugamoto/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	cat, err := DefaultCatalog()
	require.NoError(t, err)

	assert.Len(t, cat.Units, 25)
	assert.Len(t, cat.Conversions, 8)
	assert.NotEmpty(t, cat.FoodItems)
}

func TestParseCatalogRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown type", "units:\n  - {name: foo, type: length, to_base_factor: 1}\n"},
		{"zero factor", "units:\n  - {name: foo, type: weight, to_base_factor: 0}\n"},
		{"self conversion", "conversions:\n  - {from: g, to: g, factor: 1}\n"},
		{"food rule onto base unit", "food_items:\n  - {name: x, base_unit: g, conversions: [{from: g, factor: 2}]}\n"},
		{"not yaml", "units: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestRunIsIdempotent(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	ctx := context.Background()
	cat, err := DefaultCatalog()
	require.NoError(t, err)

	first, err := Run(ctx, db, cat)
	require.NoError(t, err)
	assert.Equal(t, len(cat.Units), first.Units)
	assert.Equal(t, len(cat.Conversions), first.Conversions)
	assert.Equal(t, len(cat.FoodItems), first.FoodItems)
	assert.Positive(t, first.FoodConversions)

	second, err := Run(ctx, db, cat)
	require.NoError(t, err)
	assert.Equal(t, Result{}, *second)

	units := repository.NewUnitRepo(db)
	foods := repository.NewFoodItemRepo(db)

	clove, err := units.GetByName(ctx, "clove")
	require.NoError(t, err)
	gram, err := units.GetByName(ctx, "g")
	require.NoError(t, err)
	garlic, err := foods.GetByName(ctx, "Garlic")
	require.NoError(t, err)
	require.NotNil(t, garlic)
	require.NotNil(t, garlic.Category)
	assert.Equal(t, "Vegetable", *garlic.Category)

	resolver := conversion.NewResolver(units, foods)
	res, err := resolver.ConvertFoodValue(ctx, garlic.ID, 3, clove.ID, gram.ID)
	require.NoError(t, err)
	assert.InDelta(t, 15.0, res.Value, 1e-9)

	tbsp, err := units.GetByName(ctx, "tbsp")
	require.NoError(t, err)
	tsp, err := units.GetByName(ctx, "tsp")
	require.NoError(t, err)
	factor, err := conversion.NewRegistry(units).ConversionFactor(ctx, tsp.ID, tbsp.ID)
	require.NoError(t, err)
	assert.InDelta(t, 1.0/3.0, factor, 1e-9)
}
