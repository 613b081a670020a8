package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/nugamoto/nugamoto/backend/internal/conversion"
	"github.com/nugamoto/nugamoto/backend/internal/models"
	"github.com/nugamoto/nugamoto/backend/internal/types"
	"github.com/nugamoto/nugamoto/backend/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUnitNormalizesName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, err := f.unitSvc.CreateUnit(ctx, &types.CreateUnitRequest{Name: "  KG ", Type: models.UnitTypeWeight})
	require.NoError(t, err)
	assert.Equal(t, "kg", u.Name)
	assert.Equal(t, 1.0, u.ToBaseFactor)

	_, err = f.unitSvc.CreateUnit(ctx, &types.CreateUnitRequest{Name: "kg", Type: models.UnitTypeWeight})
	assert.ErrorIs(t, err, ErrDuplicateUnit)
}

func TestCreateUnitRejectsUnknownType(t *testing.T) {
	f := newFixture(t)

	_, err := f.unitSvc.CreateUnit(context.Background(), &types.CreateUnitRequest{Name: "furlong", Type: "distance"})
	var fieldErrs validator.FieldErrors
	require.True(t, errors.As(err, &fieldErrs))
	assert.Equal(t, "CreateUnitRequest.Type", fieldErrs[0].FailedField)
	assert.Equal(t, "unit_type", fieldErrs[0].Tag)
}

func TestListUnitsByType(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.unit(t, "kg", models.UnitTypeWeight, 1000)
	f.unit(t, "g", models.UnitTypeWeight, 1)
	f.unit(t, "ml", models.UnitTypeVolume, 1)

	weight := models.UnitTypeWeight
	units, err := f.unitSvc.ListUnits(ctx, &weight)
	require.NoError(t, err)
	require.Len(t, units, 2)
	assert.Equal(t, "g", units[0].Name)
	assert.Equal(t, "kg", units[1].Name)

	all, err := f.unitSvc.ListUnits(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	bogus := models.UnitType("bogus")
	_, err = f.unitSvc.ListUnits(ctx, &bogus)
	assert.Error(t, err)
}

func TestUpdateUnit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	kg := f.unit(t, "kg", models.UnitTypeWeight, 1000)
	f.unit(t, "g", models.UnitTypeWeight, 1)

	_, err := f.unitSvc.UpdateUnit(ctx, kg.ID, &types.UpdateUnitRequest{Name: ptr("G")})
	assert.ErrorIs(t, err, ErrDuplicateUnit)

	updated, err := f.unitSvc.UpdateUnit(ctx, kg.ID, &types.UpdateUnitRequest{ToBaseFactor: ptr(999.0)})
	require.NoError(t, err)
	assert.Equal(t, 999.0, updated.ToBaseFactor)
	assert.Equal(t, "kg", updated.Name)

	_, err = f.unitSvc.UpdateUnit(ctx, 9999, &types.UpdateUnitRequest{ToBaseFactor: ptr(2.0)})
	assert.ErrorIs(t, err, ErrUnitNotFound)
}

func TestDeleteUnit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	kg := f.unit(t, "kg", models.UnitTypeWeight, 1000)
	g := f.unit(t, "g", models.UnitTypeWeight, 1)
	lb := f.unit(t, "lb", models.UnitTypeWeight, 453.592)

	_, err := f.unitSvc.CreateConversion(ctx, &types.CreateUnitConversionRequest{FromUnitID: kg.ID, ToUnitID: g.ID, Factor: 1000})
	require.NoError(t, err)

	assert.ErrorIs(t, f.unitSvc.DeleteUnit(ctx, g.ID), ErrUnitInUse)
	assert.ErrorIs(t, f.unitSvc.DeleteUnit(ctx, 9999), ErrUnitNotFound)
	require.NoError(t, f.unitSvc.DeleteUnit(ctx, lb.ID))

	_, err = f.unitSvc.GetUnit(ctx, lb.ID)
	assert.ErrorIs(t, err, ErrUnitNotFound)
}

func TestDeleteUnitReferencedByFoodItem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	g := f.unit(t, "g", models.UnitTypeWeight, 1)
	clove := f.unit(t, "clove", models.UnitTypeCount, 1)
	garlic := f.food(t, "garlic", g.ID)
	f.foodRule(t, garlic.ID, clove.ID, g.ID, 5)

	assert.ErrorIs(t, f.unitSvc.DeleteUnit(ctx, clove.ID), ErrUnitInUse)
	assert.ErrorIs(t, f.unitSvc.DeleteUnit(ctx, g.ID), ErrUnitInUse)

	item, err := f.foodSvc.GetFoodItem(ctx, garlic.ID)
	require.NoError(t, err)
	require.NotNil(t, item.BaseUnit)
	assert.Equal(t, "g", item.BaseUnit.Name)

	// once the rule is gone only the base unit stays pinned
	require.NoError(t, f.foodSvc.DeleteFoodConversion(ctx, garlic.ID, clove.ID, g.ID))
	require.NoError(t, f.unitSvc.DeleteUnit(ctx, clove.ID))
	assert.ErrorIs(t, f.unitSvc.DeleteUnit(ctx, g.ID), ErrUnitInUse)
}

func TestCreateConversionValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	kg := f.unit(t, "kg", models.UnitTypeWeight, 1000)
	g := f.unit(t, "g", models.UnitTypeWeight, 1)

	_, err := f.unitSvc.CreateConversion(ctx, &types.CreateUnitConversionRequest{FromUnitID: kg.ID, ToUnitID: kg.ID, Factor: 1})
	var fieldErrs validator.FieldErrors
	assert.True(t, errors.As(err, &fieldErrs))

	_, err = f.unitSvc.CreateConversion(ctx, &types.CreateUnitConversionRequest{FromUnitID: kg.ID, ToUnitID: 9999, Factor: 1})
	assert.ErrorIs(t, err, ErrInvalidReference)

	resp, err := f.unitSvc.CreateConversion(ctx, &types.CreateUnitConversionRequest{FromUnitID: kg.ID, ToUnitID: g.ID, Factor: 1000})
	require.NoError(t, err)
	assert.Equal(t, "kg", resp.FromUnitName)
	assert.Equal(t, "g", resp.ToUnitName)

	_, err = f.unitSvc.CreateConversion(ctx, &types.CreateUnitConversionRequest{FromUnitID: kg.ID, ToUnitID: g.ID, Factor: 999})
	assert.ErrorIs(t, err, ErrDuplicateConversion)
}

func TestUpdateAndDeleteConversion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	kg := f.unit(t, "kg", models.UnitTypeWeight, 1000)
	g := f.unit(t, "g", models.UnitTypeWeight, 1)
	_, err := f.unitSvc.CreateConversion(ctx, &types.CreateUnitConversionRequest{FromUnitID: kg.ID, ToUnitID: g.ID, Factor: 100})
	require.NoError(t, err)

	resp, err := f.unitSvc.UpdateConversion(ctx, kg.ID, g.ID, 1000)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, resp.Factor)
	assert.Equal(t, "kg", resp.FromUnitName)

	_, err = f.unitSvc.UpdateConversion(ctx, g.ID, kg.ID, 0.001)
	assert.ErrorIs(t, err, ErrConversionNotFound)

	_, err = f.unitSvc.UpdateConversion(ctx, kg.ID, g.ID, 0)
	assert.Error(t, err)

	list, err := f.unitSvc.ListConversions(ctx, &kg.ID, nil)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, f.unitSvc.DeleteConversion(ctx, kg.ID, g.ID))
	assert.ErrorIs(t, f.unitSvc.DeleteConversion(ctx, kg.ID, g.ID), ErrConversionNotFound)
}

func TestConvertValue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	kg := f.unit(t, "kg", models.UnitTypeWeight, 1000)
	g := f.unit(t, "g", models.UnitTypeWeight, 1)
	ml := f.unit(t, "ml", models.UnitTypeVolume, 1)

	res, err := f.unitSvc.ConvertValue(ctx, 2.5, kg.ID, g.ID)
	require.NoError(t, err)
	assert.InDelta(t, 2500.0, res.ConvertedValue, 1e-9)
	assert.InDelta(t, 1000.0, res.ConversionFactor, 1e-9)
	assert.Equal(t, "kg", res.OriginalUnitName)
	assert.Equal(t, "g", res.TargetUnitName)

	_, err = f.unitSvc.ConvertValue(ctx, 1, g.ID, ml.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, conversion.ErrUnresolvable)
	assert.Equal(t, "no conversion available from 'g' to 'ml'", err.Error())
	reason, ok := conversion.ReasonOf(err)
	require.True(t, ok)
	assert.Equal(t, conversion.ReasonCrossType, reason)

	_, err = f.unitSvc.ConvertValue(ctx, 0, kg.ID, g.ID)
	assert.ErrorIs(t, err, ErrInvalidValue)
	_, err = f.unitSvc.ConvertValue(ctx, math.NaN(), kg.ID, g.ID)
	assert.ErrorIs(t, err, ErrInvalidValue)
	_, err = f.unitSvc.ConvertValue(ctx, math.MaxFloat64, kg.ID, g.ID)
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = f.unitSvc.ConvertValue(ctx, 1, kg.ID, 9999)
	assert.ErrorIs(t, err, ErrUnitNotFound)
}

func TestCanConvert(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	kg := f.unit(t, "kg", models.UnitTypeWeight, 1000)
	ml := f.unit(t, "ml", models.UnitTypeVolume, 1)

	ok, err := f.unitSvc.CanConvert(ctx, kg.ID, kg.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.unitSvc.CanConvert(ctx, kg.ID, ml.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetUnitWithConversions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	kg := f.unit(t, "kg", models.UnitTypeWeight, 1000)
	g := f.unit(t, "g", models.UnitTypeWeight, 1)
	_, err := f.unitSvc.CreateConversion(ctx, &types.CreateUnitConversionRequest{FromUnitID: kg.ID, ToUnitID: g.ID, Factor: 1000})
	require.NoError(t, err)

	resp, err := f.unitSvc.GetUnitWithConversions(ctx, kg.ID)
	require.NoError(t, err)
	require.Len(t, resp.AvailableConversions, 1)
	assert.Equal(t, "g", resp.AvailableConversions[0].ToUnitName)

	empty, err := f.unitSvc.GetUnitWithConversions(ctx, g.ID)
	require.NoError(t, err)
	assert.Empty(t, empty.AvailableConversions)

	_, err = f.unitSvc.GetUnitWithConversions(ctx, 9999)
	assert.ErrorIs(t, err, ErrUnitNotFound)
}
