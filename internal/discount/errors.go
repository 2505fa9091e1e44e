package discount

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAmount is returned when the base amount is negative or
	// outside the supported range.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInvalidRate is returned when the discount rate is outside [0, 100]
	// or outside the supported range.
	ErrInvalidRate = errors.New("invalid discount rate")
	// ErrOutOfRange is wrapped when a number has more integer or fraction
	// digits than MaxIntegerDigits and MaxFractionDigits allow.
	ErrOutOfRange = errors.New("number outside the supported range")
)

// maxQuotedInput bounds how much of the input a ParseError message repeats.
const maxQuotedInput = 64

// ParseError reports a textual input that could not be read as a number.
type ParseError struct {
	Field string
	Input string
	Err   error
}

// Error implements the error interface for ParseError.
func (e *ParseError) Error() string {
	input := e.Input
	if len(input) > maxQuotedInput {
		input = input[:maxQuotedInput] + "..."
	}
	if errors.Is(e.Err, ErrOutOfRange) {
		return fmt.Sprintf("%s %q is outside the supported range (at most %d integer and %d fraction digits)",
			e.Field, input, MaxIntegerDigits, MaxFractionDigits)
	}
	return fmt.Sprintf("%s %q is not a valid number", e.Field, input)
}

// Unwrap returns the underlying conversion error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
