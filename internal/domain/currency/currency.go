package currency

import (
	"fmt"
	"repayment-engine/internal/pkg/apperrors"
	"strings"

	"github.com/shopspring/decimal"
)

// Code is the ISO 4217 code shared by loans, scheduled and received repayments.
type Code string

const (
	SGD Code = "SGD"
	VND Code = "VND"
)

// minor unit exponent per supported code
var exponents = map[Code]int32{
	SGD: 2,
	VND: 0,
}

func All() []Code {
	return []Code{SGD, VND}
}

func Parse(s string) (Code, error) {
	c := Code(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", apperrors.ErrUnsupportedCurrency, s)
	}
	return c, nil
}

func (c Code) Valid() bool {
	_, ok := exponents[c]
	return ok
}

func (c Code) String() string {
	return string(c)
}

// Exponent is the number of minor-unit digits, 0 for currencies without subunits.
func (c Code) Exponent() int32 {
	return exponents[c]
}

// Format renders an amount held in minor units as a fixed-point decimal string,
// e.g. 1050 SGD -> "10.50" and 1050 VND -> "1050".
func (c Code) Format(minor int64) string {
	exp := c.Exponent()
	return decimal.New(minor, -exp).StringFixed(exp)
}

// ToMinor converts a major-unit decimal string to minor units, rejecting
// values with more fractional digits than the currency allows.
func (c Code) ToMinor(major string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(major))
	if err != nil {
		return 0, fmt.Errorf("%w: invalid amount %q", apperrors.ErrInvalidArgument, major)
	}
	scaled := d.Shift(c.Exponent())
	if !scaled.Equal(scaled.Truncate(0)) {
		return 0, fmt.Errorf("%w: %s allows at most %d decimal places", apperrors.ErrInvalidArgument, c, c.Exponent())
	}
	return scaled.IntPart(), nil
}
