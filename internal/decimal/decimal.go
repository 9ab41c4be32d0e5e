// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package decimal provides exact decimal arithmetic for monetary amounts
// and quantities.
//
// Order line items carry net amounts and quantities that are summed across
// many rows; float64 accumulates rounding drift, so all arithmetic here is
// done on big.Rat and values only become strings at render time.
package decimal

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

// pattern matches valid decimal strings: an optional sign, digits, and an
// optional fractional part. Thousands separators are stripped before
// matching since the source data occasionally carries them.
var pattern = regexp.MustCompile(`^[+-]?[0-9]+(\.[0-9]+)?$`)

// Decimal is an immutable exact decimal value.
// The zero value is 0.
type Decimal struct {
	rat *big.Rat
}

// Zero is the zero decimal value.
var Zero = Decimal{}

// =============================================================================
// CONSTRUCTION
// =============================================================================

// Parse parses a decimal string such as "24407627.3" or "-1,234.50".
func Parse(s string) (Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if !pattern.MatchString(s) {
		return Decimal{}, fmt.Errorf("decimal: invalid value %q", s)
	}

	rat := new(big.Rat)
	if _, ok := rat.SetString(s); !ok {
		return Decimal{}, fmt.Errorf("decimal: could not parse %q as rational", s)
	}
	return Decimal{rat: rat}, nil
}

// MustParse parses a decimal string and panics on error.
// Intended for constants and test fixtures only.
func MustParse(s string) Decimal {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// FromInt returns the decimal value of an integer.
func FromInt(n int64) Decimal {
	return Decimal{rat: new(big.Rat).SetInt64(n)}
}

func (d Decimal) value() *big.Rat {
	if d.rat == nil {
		return new(big.Rat)
	}
	return d.rat
}

// =============================================================================
// ARITHMETIC
// =============================================================================

// Add returns d + other. Neither operand is modified.
func (d Decimal) Add(other Decimal) Decimal {
	return Decimal{rat: new(big.Rat).Add(d.value(), other.value())}
}

// Cmp compares d and other: -1 if d < other, 0 if equal, +1 if d > other.
func (d Decimal) Cmp(other Decimal) int {
	return d.value().Cmp(other.value())
}

// Equal reports whether d and other represent the same value.
func (d Decimal) Equal(other Decimal) bool {
	return d.Cmp(other) == 0
}

// IsZero reports whether d is exactly zero.
func (d Decimal) IsZero() bool {
	return d.value().Sign() == 0
}

// Sum returns the exact sum of the given decimals.
func Sum(values ...Decimal) Decimal {
	total := new(big.Rat)
	for _, v := range values {
		total.Add(total, v.value())
	}
	return Decimal{rat: total}
}

// =============================================================================
// FORMATTING
// =============================================================================

// String renders the value at scale 2, the scale of the source data's
// monetary columns.
func (d Decimal) String() string {
	return d.StringFixed(2)
}

// StringFixed renders the value with exactly scale fractional digits,
// rounding half away from zero.
func (d Decimal) StringFixed(scale int) string {
	rat := d.value()

	// Scale to an integer representation: value * 10^scale
	scaleFactor := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(scale)), nil)
	scaled := new(big.Rat).Mul(rat, new(big.Rat).SetInt(scaleFactor))

	intPart := new(big.Int).Quo(scaled.Num(), scaled.Denom())
	remainder := new(big.Int).Rem(scaled.Num(), scaled.Denom())

	// Half-up rounding on the magnitude of the remainder
	if remainder.Sign() != 0 {
		absRem := new(big.Int).Abs(remainder)
		absRem.Mul(absRem, big.NewInt(2))
		if absRem.Cmp(scaled.Denom()) >= 0 {
			if scaled.Sign() >= 0 {
				intPart.Add(intPart, big.NewInt(1))
			} else {
				intPart.Sub(intPart, big.NewInt(1))
			}
		}
	}

	if scale == 0 {
		return intPart.String()
	}

	sign := ""
	if intPart.Sign() < 0 {
		sign = "-"
		intPart.Abs(intPart)
	}

	// Pad to ensure enough digits for the fractional part
	intStr := intPart.String()
	for len(intStr) <= scale {
		intStr = "0" + intStr
	}

	insertPoint := len(intStr) - scale
	return sign + intStr[:insertPoint] + "." + intStr[insertPoint:]
}
