// Package types provides common value types shared across the domain.
package types

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors on cost math.
type Money = decimal.Decimal

// NewMoney creates a Money value from a float.
// WARNING: prefer MustMoney/NewMoneyFromString for exact values.
func NewMoney(f float64) Money {
	return decimal.NewFromFloat(f)
}

// NewMoneyFromString creates a Money value from a string.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ZeroMoney returns zero Money value.
func ZeroMoney() Money {
	return decimal.Zero
}

// Volume is a liquid volume in whole milliliters.
//
// Bulk lots and bottle sizes are always measured in integral milliliters, so
// volume math stays exact: units * size never rounds.
type Volume int64

// VolumeForUnits returns the bulk volume consumed by bottling the given
// number of units at the given bottle size.
func VolumeForUnits(units int, sizeML Volume) Volume {
	return Volume(int64(units)) * sizeML
}

func (v Volume) IsZero() bool     { return v == 0 }
func (v Volume) IsPositive() bool { return v > 0 }
func (v Volume) IsNegative() bool { return v < 0 }

// ML returns the raw milliliter count.
func (v Volume) ML() int64 { return int64(v) }

// Decimal converts the volume to a decimal for cost math (volume * costPerML).
func (v Volume) Decimal() decimal.Decimal {
	return decimal.NewFromInt(int64(v))
}

// String renders the volume with its unit, e.g. "1500ml".
func (v Volume) String() string {
	return fmt.Sprintf("%dml", int64(v))
}
