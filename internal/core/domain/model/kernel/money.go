package kernel

import (
	"fmt"

	"vendorbot/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// DefaultCurrencySymbol is used when no symbol is configured.
const DefaultCurrencySymbol = "₹"

// Limits for amounts coming from commands. Prices are per unit.
var (
	MaxQuantity = decimal.NewFromInt(1000)
	MaxPrice    = decimal.NewFromInt(10_000_000)
)

const (
	QuantityPlaces int32 = 3
	PricePlaces    int32 = 2

	// Exponents beyond this are summarized instead of expanded in error texts.
	maxPrintableExponent = 32
)

// FormatMoney renders an amount with its currency symbol: "₹800", "₹1200.50".
// Whole amounts drop the fraction, others keep two places.
func FormatMoney(symbol string, amount decimal.Decimal) string {
	if symbol == "" {
		symbol = DefaultCurrencySymbol
	}
	return symbol + FormatAmount(amount)
}

// FormatAmount renders a number without trailing noise: "2", "1.5", "0.25".
func FormatAmount(amount decimal.Decimal) string {
	if amount.Equal(amount.Truncate(0)) {
		return amount.Truncate(0).String()
	}
	if amount.Exponent() < -2 {
		return amount.StringFixed(2)
	}
	return amount.String()
}

// CheckAmount validates a positive amount no greater than maxValue with at most places
// decimal places. Magnitude and scale are judged from the coefficient length and the
// exponent first, so "1e3000000" is rejected without being expanded.
func CheckAmount(field string, amount, maxValue decimal.Decimal, places int32) error {
	if amount.Sign() <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			field, fmt.Errorf("%s is not greater than 0", describeAmount(amount)))
	}

	exp := int64(amount.Exponent())
	intDigits := int64(amount.NumDigits()) + exp
	maxDigits := int64(maxValue.NumDigits()) + int64(maxValue.Exponent())
	if intDigits > maxDigits {
		return errs.NewValueIsOutOfRangeError(field, describeAmount(amount), "greater than 0", maxValue.String())
	}

	if exp < -int64(places) {
		// Trailing zeros ("1.500") still fit; anything past this many places cannot.
		if exp < -int64(places)-maxPrintableExponent || !amount.Equal(amount.Truncate(places)) {
			return errs.NewValueIsOutOfRangeErrorWithCause(
				field, describeAmount(amount), "greater than 0", maxValue.String(),
				fmt.Errorf("more than %d decimal places", places))
		}
	}

	if amount.GreaterThan(maxValue) {
		return errs.NewValueIsOutOfRangeError(field, describeAmount(amount), "greater than 0", maxValue.String())
	}
	return nil
}

// describeAmount prints small amounts as usual and huge exponents in scientific form.
func describeAmount(amount decimal.Decimal) string {
	exp := amount.Exponent()
	if exp > maxPrintableExponent || exp < -maxPrintableExponent {
		return fmt.Sprintf("%se%d", amount.Coefficient().String(), exp)
	}
	return amount.String()
}
