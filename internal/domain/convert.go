package domain

import (
	"errors"
	"fmt"
)

const kgToLb = 2.2046226218

// Weight units accepted on input. Storage is always kg.
const (
	UnitKg = "kg"
	UnitLb = "lb"
)

// ConvertWeight converts a weight value between "kg" and "lb".
// Returns v unchanged if from == to or if the units are unrecognised.
func ConvertWeight(v float64, from, to string) float64 {
	if from == to {
		return v
	}
	if from == UnitKg && to == UnitLb {
		return v * kgToLb
	}
	if from == UnitLb && to == UnitKg {
		return v / kgToLb
	}
	return v
}

// NormalizeToKg validates a user-supplied weight and returns it in kg.
// An empty unit means kg.
func NormalizeToKg(v float64, unit string) (float64, error) {
	if v <= 0 {
		return 0, errors.New("weight must be > 0")
	}
	switch unit {
	case "", UnitKg:
		return v, nil
	case UnitLb:
		return ConvertWeight(v, UnitLb, UnitKg), nil
	default:
		return 0, fmt.Errorf("unit must be %q or %q", UnitKg, UnitLb)
	}
}
