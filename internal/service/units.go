// Package service contains the planning engine and its supporting services.
package service

import (
	"errors"
	"fmt"

	"github.com/agroplan/plan-service/internal/domain/model"
)

var (
	// ErrUnknownUnit is returned when a unit is outside the closed unit set.
	ErrUnknownUnit = errors.New("unknown unit")
	// ErrUnknownUnitFamily is returned when a family is neither liquid nor dry.
	ErrUnknownUnitFamily = errors.New("unknown unit family")
	// ErrUnitFamilyMismatch is returned when a unit is converted through a
	// family it does not belong to. This fails loudly: a silent wrong number
	// here corrupts downstream cost and readiness decisions.
	ErrUnitFamilyMismatch = errors.New("unit does not belong to family")
)

// conversionFactors maps every unit to its factor into the family base unit
// (gallons for liquid, pounds for dry). Factors are fixed rational constants;
// ounce appears in both tables with different factors.
var conversionFactors = map[model.UnitFamily]map[model.Unit]float64{
	model.FamilyLiquid: {
		model.UnitOunce:  1.0 / 128.0,
		model.UnitQuart:  1.0 / 4.0,
		model.UnitGallon: 1,
	},
	model.FamilyDry: {
		model.UnitOunce: 1.0 / 16.0,
		model.UnitPound: 1,
		model.UnitGram:  1.0 / model.GramsPerPound,
		model.UnitTon:   2000,
	},
}

// ToBase converts a quantity from the given unit into the family's base
// unit. No rounding is applied; rounding is a presentation concern.
func ToBase(qty float64, unit model.Unit, family model.UnitFamily) (float64, error) {
	factor, err := baseFactor(unit, family)
	if err != nil {
		return 0, err
	}
	return qty * factor, nil
}

// FromBase converts a quantity from the family's base unit into the given
// unit.
func FromBase(qty float64, unit model.Unit, family model.UnitFamily) (float64, error) {
	factor, err := baseFactor(unit, family)
	if err != nil {
		return 0, err
	}
	return qty / factor, nil
}

// ConvertUnits converts a quantity between two units of the same family,
// going through the family base unit.
func ConvertUnits(qty float64, from, to model.Unit, family model.UnitFamily) (float64, error) {
	base, err := ToBase(qty, from, family)
	if err != nil {
		return 0, err
	}
	return FromBase(base, to, family)
}

func baseFactor(unit model.Unit, family model.UnitFamily) (float64, error) {
	table, ok := conversionFactors[family]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnitFamily, family)
	}
	factor, ok := table[unit]
	if !ok {
		if !unit.IsValid() {
			return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, unit)
		}
		return 0, fmt.Errorf("%w: %s is not a %s unit", ErrUnitFamilyMismatch, unit, family)
	}
	return factor, nil
}
