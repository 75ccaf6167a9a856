// Package currency converts processor minor-unit amounts to decimal major
// units and back.
package currency

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrPrecision = errors.New("amount has more precision than the currency allows")

var zeroDecimal = map[string]struct{}{
	"BIF": {}, "CLP": {}, "DJF": {}, "GNF": {}, "JPY": {}, "KMF": {}, "KRW": {}, "MGA": {},
	"PYG": {}, "RWF": {}, "UGX": {}, "VND": {}, "VUV": {}, "XAF": {}, "XOF": {}, "XPF": {},
}

var threeDecimal = map[string]struct{}{
	"BHD": {}, "JOD": {}, "KWD": {}, "OMR": {}, "TND": {},
}

// Normalize upper-cases and trims an ISO 4217 code.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Scale is the number of minor-unit digits for code.
func Scale(code string) int32 {
	c := Normalize(code)
	if _, ok := zeroDecimal[c]; ok {
		return 0
	}
	if _, ok := threeDecimal[c]; ok {
		return 3
	}
	return 2
}

// FromMinorUnits converts 5000 "usd" into 50.00.
func FromMinorUnits(amount int64, code string) decimal.Decimal {
	return decimal.NewFromInt(amount).Shift(-Scale(code))
}

// ToMinorUnits is the inverse of FromMinorUnits. Amounts finer than the
// currency's minor unit are rejected instead of rounded.
func ToMinorUnits(amount decimal.Decimal, code string) (int64, error) {
	minor := amount.Shift(Scale(code))
	if !minor.Equal(minor.Truncate(0)) {
		return 0, fmt.Errorf("%w: %s %s", ErrPrecision, amount.String(), Normalize(code))
	}
	return minor.IntPart(), nil
}
