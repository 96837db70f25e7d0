package entity

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	errs "github.com/amirhossein-jamali/atm-simulator/internal/domain/error"
)

// MaxDecimalPlaces defines the maximum number of decimal places allowed for money amounts
const MaxDecimalPlaces = 2

// maxAmountExponent is the largest exponent a non-zero amount can carry and
// still fit in int64 minor units
const maxAmountExponent = 18

var maxMinorUnits = decimal.NewFromInt(math.MaxInt64)

// ParseAmount converts decimal text such as "500", "12.5" or "0.01" into minor units.
// The sign is preserved; callers decide whether non-positive amounts are acceptable.
func ParseAmount(amount string) (int64, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return 0, fmt.Errorf("%w: empty value", errs.ErrInvalidAmount)
	}

	value, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", errs.ErrInvalidAmount, amount)
	}

	// Exponent notation names huge scales in a few characters. Settle those
	// before anything rescales the coefficient.
	exponent := int(value.Exponent())
	switch {
	case value.IsZero():
		return 0, nil
	case exponent > maxAmountExponent:
		return 0, errs.ErrAmountOverflow
	case -exponent-MaxDecimalPlaces >= len(amount):
		// the coefficient has fewer digits than the excess fraction, so it cannot be whole cents
		return 0, fmt.Errorf("%w: maximum %d decimal places allowed", errs.ErrInvalidAmount, MaxDecimalPlaces)
	}

	if !value.Equal(value.Truncate(MaxDecimalPlaces)) {
		return 0, fmt.Errorf("%w: maximum %d decimal places allowed", errs.ErrInvalidAmount, MaxDecimalPlaces)
	}

	minor := value.Shift(MaxDecimalPlaces)
	if minor.Abs().GreaterThan(maxMinorUnits) {
		return 0, errs.ErrAmountOverflow
	}

	return minor.IntPart(), nil
}

// FormatAmount renders minor units with exactly two decimal places, e.g. 1015 -> "10.15"
func FormatAmount(minorUnits int64) string {
	return decimal.New(minorUnits, -MaxDecimalPlaces).StringFixed(MaxDecimalPlaces)
}
