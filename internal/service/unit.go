package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/nugamoto/nugamoto/backend/internal/conversion"
	"github.com/nugamoto/nugamoto/backend/internal/logger"
	"github.com/nugamoto/nugamoto/backend/internal/models"
	"github.com/nugamoto/nugamoto/backend/internal/repository"
	"github.com/nugamoto/nugamoto/backend/internal/types"
	"github.com/nugamoto/nugamoto/backend/internal/validator"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UnitService handles units and generic unit conversions
type UnitService struct {
	units    repository.UnitRepository
	registry *conversion.Registry
}

// NewUnitService creates a new UnitService instance
func NewUnitService(units repository.UnitRepository) *UnitService {
	return &UnitService{
		units:    units,
		registry: conversion.NewRegistry(units),
	}
}

func normalizeUnitName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// CreateUnit creates a new unit. Names are stored lowercase and the base
// factor defaults to 1.
func (s *UnitService) CreateUnit(ctx context.Context, req *types.CreateUnitRequest) (*models.Unit, error) {
	req.Name = normalizeUnitName(req.Name)
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	existing, err := s.units.GetByName(ctx, req.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check unit name: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateUnit
	}

	unit := &models.Unit{
		Name:         req.Name,
		Type:         req.Type,
		ToBaseFactor: 1.0,
	}
	if req.ToBaseFactor != nil {
		unit.ToBaseFactor = *req.ToBaseFactor
	}

	if err := s.units.Create(ctx, unit); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateUnit
		}
		return nil, fmt.Errorf("failed to create unit: %w", err)
	}
	return unit, nil
}

// GetUnit retrieves a unit by ID
func (s *UnitService) GetUnit(ctx context.Context, id uint) (*models.Unit, error) {
	unit, err := s.units.GetUnit(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get unit: %w", err)
	}
	if unit == nil {
		return nil, ErrUnitNotFound
	}
	return unit, nil
}

// GetUnitWithConversions retrieves a unit together with its outgoing conversions
func (s *UnitService) GetUnitWithConversions(ctx context.Context, id uint) (*types.UnitWithConversionsResponse, error) {
	unit, err := s.units.GetWithConversions(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get unit: %w", err)
	}
	if unit == nil {
		return nil, ErrUnitNotFound
	}

	resp := &types.UnitWithConversionsResponse{
		Unit:                 *unit,
		AvailableConversions: make([]types.UnitConversionResponse, 0, len(unit.Conversions)),
	}
	for _, c := range unit.Conversions {
		resp.AvailableConversions = append(resp.AvailableConversions, types.NewUnitConversionResponse(c))
	}
	return resp, nil
}

// ListUnits lists all units, optionally restricted to one type
func (s *UnitService) ListUnits(ctx context.Context, unitType *models.UnitType) ([]models.Unit, error) {
	if unitType != nil && !unitType.Valid() {
		return nil, validator.FieldErrors{{FailedField: "unit_type", Tag: "oneof", Value: strings.Join(unitTypeNames(), " ")}}
	}
	units, err := s.units.List(ctx, unitType)
	if err != nil {
		return nil, fmt.Errorf("failed to list units: %w", err)
	}
	return units, nil
}

func unitTypeNames() []string {
	names := make([]string, len(models.UnitTypes))
	for i, t := range models.UnitTypes {
		names[i] = string(t)
	}
	return names
}

// UpdateUnit applies the non-nil fields of req
func (s *UnitService) UpdateUnit(ctx context.Context, id uint, req *types.UpdateUnitRequest) (*models.Unit, error) {
	if req.Name != nil {
		name := normalizeUnitName(*req.Name)
		req.Name = &name
	}
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	unit, err := s.GetUnit(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil && *req.Name != unit.Name {
		other, err := s.units.GetByName(ctx, *req.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to check unit name: %w", err)
		}
		if other != nil && other.ID != id {
			return nil, ErrDuplicateUnit
		}
		updates["name"] = *req.Name
	}
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.ToBaseFactor != nil {
		updates["to_base_factor"] = *req.ToBaseFactor
	}
	if len(updates) == 0 {
		return unit, nil
	}

	if err := s.units.Update(ctx, id, updates); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateUnit
		}
		return nil, fmt.Errorf("failed to update unit: %w", err)
	}
	return s.GetUnit(ctx, id)
}

// DeleteUnit refuses units still referenced by a conversion rule or a food item
func (s *UnitService) DeleteUnit(ctx context.Context, id uint) error {
	if _, err := s.GetUnit(ctx, id); err != nil {
		return err
	}

	count, err := s.units.CountReferences(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count unit references: %w", err)
	}
	if count > 0 {
		return ErrUnitInUse
	}

	deleted, err := s.units.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrUnitInUse
		}
		return fmt.Errorf("failed to delete unit: %w", err)
	}
	if !deleted {
		return ErrUnitNotFound
	}
	return nil
}

// CreateConversion stores a generic conversion rule between two units
func (s *UnitService) CreateConversion(ctx context.Context, req *types.CreateUnitConversionRequest) (*types.UnitConversionResponse, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	from, err := s.requireUnit(ctx, req.FromUnitID)
	if err != nil {
		return nil, err
	}
	to, err := s.requireUnit(ctx, req.ToUnitID)
	if err != nil {
		return nil, err
	}

	existing, err := s.units.GetUnitConversion(ctx, req.FromUnitID, req.ToUnitID)
	if err != nil {
		return nil, fmt.Errorf("failed to check conversion: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateConversion
	}

	conv := &models.UnitConversion{
		FromUnitID: req.FromUnitID,
		ToUnitID:   req.ToUnitID,
		Factor:     req.Factor,
	}
	if err := s.units.CreateConversion(ctx, conv); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateConversion
		}
		return nil, fmt.Errorf("failed to create conversion: %w", err)
	}

	conv.FromUnit, conv.ToUnit = from, to
	resp := types.NewUnitConversionResponse(*conv)
	return &resp, nil
}

// requireUnit loads a unit referenced from a request body
func (s *UnitService) requireUnit(ctx context.Context, id uint) (*models.Unit, error) {
	unit, err := s.units.GetUnit(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get unit: %w", err)
	}
	if unit == nil {
		return nil, invalidReference("unit", id)
	}
	return unit, nil
}

// ListConversions lists generic conversions, optionally filtered by either side
func (s *UnitService) ListConversions(ctx context.Context, fromUnitID, toUnitID *uint) ([]types.UnitConversionResponse, error) {
	convs, err := s.units.ListConversions(ctx, fromUnitID, toUnitID)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversions: %w", err)
	}
	resp := make([]types.UnitConversionResponse, 0, len(convs))
	for _, c := range convs {
		resp = append(resp, types.NewUnitConversionResponse(c))
	}
	return resp, nil
}

// UpdateConversion changes the factor of an existing rule
func (s *UnitService) UpdateConversion(ctx context.Context, fromUnitID, toUnitID uint, factor float64) (*types.UnitConversionResponse, error) {
	if factor <= 0 {
		return nil, validator.FieldErrors{{FailedField: "factor", Tag: "gt", Value: "0"}}
	}

	updated, err := s.units.UpdateConversionFactor(ctx, fromUnitID, toUnitID, factor)
	if err != nil {
		return nil, fmt.Errorf("failed to update conversion: %w", err)
	}
	if !updated {
		return nil, ErrConversionNotFound
	}

	convs, err := s.ListConversions(ctx, &fromUnitID, &toUnitID)
	if err != nil {
		return nil, err
	}
	if len(convs) == 0 {
		return nil, ErrConversionNotFound
	}
	return &convs[0], nil
}

// DeleteConversion removes a generic conversion rule
func (s *UnitService) DeleteConversion(ctx context.Context, fromUnitID, toUnitID uint) error {
	deleted, err := s.units.DeleteConversion(ctx, fromUnitID, toUnitID)
	if err != nil {
		return fmt.Errorf("failed to delete conversion: %w", err)
	}
	if !deleted {
		return ErrConversionNotFound
	}
	return nil
}

// ConvertValue converts value between two units without food context
func (s *UnitService) ConvertValue(ctx context.Context, value float64, fromUnitID, toUnitID uint) (*types.ConversionResult, error) {
	if !validValue(value) {
		return nil, ErrInvalidValue
	}

	from, err := s.GetUnit(ctx, fromUnitID)
	if err != nil {
		return nil, err
	}
	to, err := s.GetUnit(ctx, toUnitID)
	if err != nil {
		return nil, err
	}

	factor, err := s.registry.ConversionFactor(ctx, fromUnitID, toUnitID)
	if err != nil {
		if conversion.IsUnresolvable(err) {
			logUnresolvable(err)
			return nil, &NoConversionError{FromUnit: from.Name, ToUnit: to.Name, Err: err}
		}
		return nil, fmt.Errorf("failed to resolve conversion: %w", err)
	}
	if !validValue(value * factor) {
		return nil, ErrInvalidValue
	}

	return &types.ConversionResult{
		OriginalValue:    value,
		OriginalUnitID:   from.ID,
		OriginalUnitName: from.Name,
		ConvertedValue:   value * factor,
		TargetUnitID:     to.ID,
		TargetUnitName:   to.Name,
		ConversionFactor: factor,
	}, nil
}

// CanConvert reports whether a generic conversion path exists
func (s *UnitService) CanConvert(ctx context.Context, fromUnitID, toUnitID uint) (bool, error) {
	ok, err := s.registry.CanConvert(ctx, fromUnitID, toUnitID)
	if err != nil {
		return false, fmt.Errorf("failed to check conversion: %w", err)
	}
	return ok, nil
}

// validValue rejects zero, negatives, NaN and infinities
func validValue(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

func logUnresolvable(err error) {
	var ue *conversion.UnresolvableError
	if errors.As(err, &ue) {
		logger.Debug("conversion unresolvable",
			zap.Uint("food_item_id", ue.FoodItemID),
			zap.Uint("from_unit_id", ue.From),
			zap.Uint("to_unit_id", ue.To),
			zap.Stringer("reason", ue.Reason),
		)
	}
}
