package types

import (
	"github.com/nugamoto/nugamoto/backend/internal/models"
)

// CreateUnitRequest represents a request to create a unit
type CreateUnitRequest struct {
	Name         string          `json:"name" binding:"required,max=50" validate:"required,max=50"`
	Type         models.UnitType `json:"type" binding:"required" validate:"required,unit_type"`
	ToBaseFactor *float64        `json:"to_base_factor" binding:"omitempty,gt=0" validate:"omitempty,gt=0"`
}

// UpdateUnitRequest carries the fields to change; nil fields are left as-is
type UpdateUnitRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=50"`
	Type         *models.UnitType `json:"type" validate:"omitempty,unit_type"`
	ToBaseFactor *float64         `json:"to_base_factor" validate:"omitempty,gt=0"`
}

// CreateUnitConversionRequest represents a request to create a generic conversion
type CreateUnitConversionRequest struct {
	FromUnitID uint    `json:"from_unit_id" binding:"required,gt=0" validate:"required,gt=0"`
	ToUnitID   uint    `json:"to_unit_id" binding:"required,gt=0" validate:"required,gt=0,nefield=FromUnitID"`
	Factor     float64 `json:"factor" binding:"required,gt=0" validate:"required,gt=0"`
}

// UpdateUnitConversionRequest only allows changing the factor
type UpdateUnitConversionRequest struct {
	Factor float64 `json:"factor" binding:"required,gt=0"`
}

// UnitConversionResponse includes the unit names for convenience
type UnitConversionResponse struct {
	FromUnitID   uint    `json:"from_unit_id"`
	ToUnitID     uint    `json:"to_unit_id"`
	Factor       float64 `json:"factor"`
	FromUnitName string  `json:"from_unit_name,omitempty"`
	ToUnitName   string  `json:"to_unit_name,omitempty"`
}

// UnitWithConversionsResponse is a unit with its outgoing conversions
type UnitWithConversionsResponse struct {
	models.Unit
	AvailableConversions []UnitConversionResponse `json:"available_conversions"`
}

// ConversionResult is returned by the generic convert endpoint
type ConversionResult struct {
	OriginalValue    float64 `json:"original_value"`
	OriginalUnitID   uint    `json:"original_unit_id"`
	OriginalUnitName string  `json:"original_unit_name"`
	ConvertedValue   float64 `json:"converted_value"`
	TargetUnitID     uint    `json:"target_unit_id"`
	TargetUnitName   string  `json:"target_unit_name"`
	ConversionFactor float64 `json:"conversion_factor"`
}

// UnitRef is a (id, name) pair used in unit listings
type UnitRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// NewUnitConversionResponse flattens a conversion and its preloaded units
func NewUnitConversionResponse(c models.UnitConversion) UnitConversionResponse {
	resp := UnitConversionResponse{
		FromUnitID: c.FromUnitID,
		ToUnitID:   c.ToUnitID,
		Factor:     c.Factor,
	}
	if c.FromUnit != nil {
		resp.FromUnitName = c.FromUnit.Name
	}
	if c.ToUnit != nil {
		resp.ToUnitName = c.ToUnit.Name
	}
	return resp
}
