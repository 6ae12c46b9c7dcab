// Package model defines the domain entities for plan readiness and cost allocation.
package model

import (
	"fmt"
	"strings"
)

// UnitFamily identifies the measurement family a product's quantities live in.
// Every product is either liquid or dry; the family selects the conversion
// table and the base unit all same-family quantities are normalized into.
type UnitFamily string

const (
	// FamilyLiquid covers volume units. Base unit: gallons.
	FamilyLiquid UnitFamily = "liquid"
	// FamilyDry covers weight units. Base unit: pounds.
	FamilyDry UnitFamily = "dry"
)

// Unit is the closed set of measurement units the engine accepts.
// Ounce is a member of both families: fluid ounces on liquid products,
// weight ounces on dry products. Conversions therefore always carry an
// explicit family; a bare unit is not enough to pick a factor.
type Unit string

const (
	UnitOunce  Unit = "oz"
	UnitQuart  Unit = "qt"
	UnitGallon Unit = "gal"
	UnitPound  Unit = "lbs"
	UnitGram   Unit = "g"
	UnitTon    Unit = "ton"
)

// GramsPerPound is the exact definition of the avoirdupois pound.
const GramsPerPound = 453.59237

// IsValid reports whether f is one of the declared families.
func (f UnitFamily) IsValid() bool {
	return f == FamilyLiquid || f == FamilyDry
}

// BaseUnit returns the canonical unit of the family. All same-family
// quantities are converted into this unit before any arithmetic.
func (f UnitFamily) BaseUnit() Unit {
	switch f {
	case FamilyLiquid:
		return UnitGallon
	case FamilyDry:
		return UnitPound
	default:
		return ""
	}
}

// Units returns the members of the family.
func (f UnitFamily) Units() []Unit {
	switch f {
	case FamilyLiquid:
		return []Unit{UnitOunce, UnitQuart, UnitGallon}
	case FamilyDry:
		return []Unit{UnitOunce, UnitPound, UnitGram, UnitTon}
	default:
		return nil
	}
}

// IsValid reports whether u is one of the declared units.
func (u Unit) IsValid() bool {
	switch u {
	case UnitOunce, UnitQuart, UnitGallon, UnitPound, UnitGram, UnitTon:
		return true
	default:
		return false
	}
}

// MemberOf reports whether u belongs to family f.
func (u Unit) MemberOf(f UnitFamily) bool {
	for _, m := range f.Units() {
		if m == u {
			return true
		}
	}
	return false
}

// ParseUnit maps a raw label onto the closed unit set. Common spelling
// variants from upstream data sources are accepted; anything else is an
// error so typos surface instead of silently skewing quantities.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "oz", "ounce", "ounces", "fl oz", "floz":
		return UnitOunce, nil
	case "qt", "quart", "quarts":
		return UnitQuart, nil
	case "gal", "gallon", "gallons":
		return UnitGallon, nil
	case "lb", "lbs", "pound", "pounds":
		return UnitPound, nil
	case "g", "gram", "grams":
		return UnitGram, nil
	case "ton", "tons":
		return UnitTon, nil
	default:
		return "", fmt.Errorf("unknown unit %q", s)
	}
}

// ParseUnitFamily maps a raw product form label onto the closed family set.
func ParseUnitFamily(s string) (UnitFamily, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "liquid", "wet":
		return FamilyLiquid, nil
	case "dry", "solid":
		return FamilyDry, nil
	default:
		return "", fmt.Errorf("unknown unit family %q", s)
	}
}
