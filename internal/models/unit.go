package models

import (
	"time"
)

// UnitType groups units that share a base unit
type UnitType string

const (
	UnitTypeWeight  UnitType = "weight"
	UnitTypeVolume  UnitType = "volume"
	UnitTypeCount   UnitType = "count"
	UnitTypeMeasure UnitType = "measure"
	UnitTypePackage UnitType = "package"
)

// UnitTypes lists every supported unit type
var UnitTypes = []UnitType{
	UnitTypeWeight,
	UnitTypeVolume,
	UnitTypeCount,
	UnitTypeMeasure,
	UnitTypePackage,
}

// Valid reports whether t is one of the supported unit types
func (t UnitType) Valid() bool {
	for _, ut := range UnitTypes {
		if t == ut {
			return true
		}
	}
	return false
}

// Unit is a measurement unit. ToBaseFactor converts one of this unit into
// the base unit of its type (kg has 1000 for a gram base).
type Unit struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	Name         string           `gorm:"size:50;not null;uniqueIndex" json:"name"`
	Type         UnitType         `gorm:"size:20;not null;index" json:"type"`
	ToBaseFactor float64          `gorm:"not null;default:1" json:"to_base_factor"`
	CreatedAt    time.Time        `json:"created_at"`
	Conversions  []UnitConversion `gorm:"foreignKey:FromUnitID" json:"-"`
}

// TableName returns the table name for the Unit model
func (Unit) TableName() string {
	return "units"
}

// UnitConversion is a directional generic rule:
// value_in_from_unit * Factor = value_in_to_unit
type UnitConversion struct {
	FromUnitID uint    `gorm:"primaryKey;autoIncrement:false" json:"from_unit_id"`
	ToUnitID   uint    `gorm:"primaryKey;autoIncrement:false" json:"to_unit_id"`
	Factor     float64 `gorm:"not null" json:"factor"`
	FromUnit   *Unit   `gorm:"foreignKey:FromUnitID" json:"-"`
	ToUnit     *Unit   `gorm:"foreignKey:ToUnitID" json:"-"`
}

// TableName returns the table name for the UnitConversion model
func (UnitConversion) TableName() string {
	return "unit_conversions"
}
