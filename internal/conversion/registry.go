// Package conversion resolves conversion factors between measurement units,
// generically and per food item.
package conversion

import (
	"context"
	"fmt"

	"github.com/nugamoto/nugamoto/backend/internal/models"
)

// UnitStore is the read side of the unit catalog. Both lookups return
// (nil, nil) when the row does not exist.
type UnitStore interface {
	GetUnit(ctx context.Context, id uint) (*models.Unit, error)
	GetUnitConversion(ctx context.Context, fromUnitID, toUnitID uint) (*models.UnitConversion, error)
}

// Registry resolves generic conversions between units.
type Registry struct {
	units UnitStore
}

func NewRegistry(units UnitStore) *Registry {
	return &Registry{units: units}
}

// ConversionFactor returns k such that value_in_from * k = value_in_to.
// Stored direct rules win over reversed rules, which win over the ratio of
// base factors for units of the same type.
func (r *Registry) ConversionFactor(ctx context.Context, fromUnitID, toUnitID uint) (float64, error) {
	if fromUnitID == toUnitID {
		return 1.0, nil
	}

	direct, err := r.units.GetUnitConversion(ctx, fromUnitID, toUnitID)
	if err != nil {
		return 0, fmt.Errorf("failed to get unit conversion: %w", err)
	}
	if direct != nil {
		return direct.Factor, nil
	}

	reverse, err := r.units.GetUnitConversion(ctx, toUnitID, fromUnitID)
	if err != nil {
		return 0, fmt.Errorf("failed to get reverse unit conversion: %w", err)
	}
	if reverse != nil {
		if reverse.Factor == 0 {
			return 0, unresolvable(fromUnitID, toUnitID, ReasonInvalidFactor)
		}
		return 1.0 / reverse.Factor, nil
	}

	from, err := r.units.GetUnit(ctx, fromUnitID)
	if err != nil {
		return 0, fmt.Errorf("failed to get unit %d: %w", fromUnitID, err)
	}
	to, err := r.units.GetUnit(ctx, toUnitID)
	if err != nil {
		return 0, fmt.Errorf("failed to get unit %d: %w", toUnitID, err)
	}
	if from == nil || to == nil {
		return 0, unresolvable(fromUnitID, toUnitID, ReasonNotFound)
	}
	if from.Type != to.Type {
		return 0, unresolvable(fromUnitID, toUnitID, ReasonCrossType)
	}
	if to.ToBaseFactor == 0 {
		return 0, unresolvable(fromUnitID, toUnitID, ReasonInvalidFactor)
	}

	return from.ToBaseFactor / to.ToBaseFactor, nil
}

// CanConvert reports whether a generic factor exists. Only storage
// failures are returned as errors.
func (r *Registry) CanConvert(ctx context.Context, fromUnitID, toUnitID uint) (bool, error) {
	_, err := r.ConversionFactor(ctx, fromUnitID, toUnitID)
	if err != nil {
		if IsUnresolvable(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ConvertValue multiplies value by the generic factor. No rounding is applied.
func (r *Registry) ConvertValue(ctx context.Context, value float64, fromUnitID, toUnitID uint) (float64, error) {
	factor, err := r.ConversionFactor(ctx, fromUnitID, toUnitID)
	if err != nil {
		return 0, err
	}
	return value * factor, nil
}
