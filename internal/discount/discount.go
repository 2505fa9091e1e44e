package discount

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Field names used in ParseError.
const (
	FieldAmount = "amount"
	FieldRate   = "discount"
)

// Supported input range. Keeping exponents small guarantees that the
// arithmetic in Compute never nears the int32 exponent limit of
// decimal.Decimal and that every result prints in bounded time.
const (
	MaxIntegerDigits  = 40
	MaxFractionDigits = 40
	// MaxInputLength bounds the text handed to Parse, before it is converted.
	MaxInputLength = 256
)

var maxRate = decimal.NewFromInt(100)

// Compute returns amount minus rate percent of amount.
//
// amount must not be negative and rate must lie in [0, 100]; otherwise the
// returned error wraps ErrInvalidAmount or ErrInvalidRate. Values outside
// the supported range are rejected the same way and additionally wrap
// ErrOutOfRange. For valid inputs the result is always within [0, amount].
func Compute(amount, rate decimal.Decimal) (decimal.Decimal, error) {
	if err := ValidateAmount(amount); err != nil {
		return decimal.Zero, err
	}
	if err := ValidateRate(rate); err != nil {
		return decimal.Zero, err
	}

	// A zero may carry any exponent, so it never reaches the arithmetic.
	switch {
	case amount.IsZero():
		return decimal.Zero, nil
	case rate.IsZero():
		return amount, nil
	}

	// Shift(-2) divides by 100 without the precision loss of Div.
	reduction := amount.Mul(rate.Shift(-2))
	return amount.Sub(reduction), nil
}

// ValidateAmount checks that amount is within the supported range and not
// negative.
func ValidateAmount(amount decimal.Decimal) error {
	if err := checkRange(amount); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAmount, err)
	}
	if amount.IsNegative() {
		return fmt.Errorf("%w: %s must not be negative", ErrInvalidAmount, amount)
	}
	return nil
}

// ValidateRate checks that rate is within the supported range and is a
// percentage in [0, 100].
func ValidateRate(rate decimal.Decimal) error {
	if err := checkRange(rate); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRate, err)
	}
	if rate.IsNegative() {
		return fmt.Errorf("%w: %s must not be negative", ErrInvalidRate, rate)
	}
	// Comparing rescales both operands to the smaller exponent, which a
	// zero may carry at any size.
	if rate.IsZero() {
		return nil
	}
	if rate.GreaterThan(maxRate) {
		return fmt.Errorf("%w: %s must not be greater than 100", ErrInvalidRate, rate)
	}
	return nil
}

// checkRange rejects values whose digits fall outside MaxIntegerDigits and
// MaxFractionDigits. It only looks at the exponent and the coefficient
// length, never at the expanded value. The error does not print d.
func checkRange(d decimal.Decimal) error {
	if d.IsZero() {
		return nil
	}
	exp := int64(d.Exponent())
	if exp < -MaxFractionDigits {
		return fmt.Errorf("%w: more than %d fraction digits", ErrOutOfRange, MaxFractionDigits)
	}
	if exp > MaxIntegerDigits || int64(numDigits(d))+exp > MaxIntegerDigits {
		return fmt.Errorf("%w: more than %d integer digits", ErrOutOfRange, MaxIntegerDigits)
	}
	return nil
}

// numDigits returns the number of digits in the coefficient of d.
func numDigits(d decimal.Decimal) int {
	c := d.Coefficient()
	return len(c.Abs(c).String())
}

// Parse reads s as a decimal number. Surrounding whitespace is ignored.
// Anything that is not a finite decimal, including NaN and Inf, yields a
// *ParseError naming field, as does a number outside the supported range.
// A zero is always returned as decimal.Zero, whatever exponent it was
// written with.
func Parse(field, s string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return decimal.Zero, &ParseError{Field: field, Input: s, Err: errors.New("empty input")}
	}
	if len(trimmed) > MaxInputLength {
		return decimal.Zero, &ParseError{Field: field, Input: s, Err: fmt.Errorf("%w: longer than %d characters", ErrOutOfRange, MaxInputLength)}
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, &ParseError{Field: field, Input: s, Err: err}
	}
	if d.IsZero() {
		return decimal.Zero, nil
	}
	if err := checkRange(d); err != nil {
		return decimal.Zero, &ParseError{Field: field, Input: s, Err: err}
	}
	return d, nil
}
