package cli

import (
	"errors"
	"fmt"

	"github.com/ocastrof/descuentos/internal/app"
	"github.com/ocastrof/descuentos/internal/config"
	"github.com/ocastrof/descuentos/internal/discount"
)

// Exit statuses. Each error kind the user can trigger has its own status.
const (
	ExitOK            = 0
	ExitInternal      = 1
	ExitUsage         = 2
	ExitParse         = 3
	ExitInvalidAmount = 4
	ExitInvalidRate   = 5
	ExitConfig        = 6
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap returns the error the exit status was derived from, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ArgumentCountError reports a wrong number of positional arguments.
type ArgumentCountError struct {
	Got int
}

// Error implements the error interface for ArgumentCountError.
func (e *ArgumentCountError) Error() string {
	return fmt.Sprintf("expected 2 arguments (amount and discount), got %d", e.Got)
}

// ToExitError classifies err into an ExitError with a human-readable
// message. It returns nil for a nil error and err itself when it already is
// an *ExitError.
func ToExitError(err error) *ExitError {
	if err == nil {
		return nil
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}

	var countErr *ArgumentCountError
	var parseErr *discount.ParseError
	var loadErr *config.LoadError

	switch {
	case errors.As(err, &countErr):
		return &ExitError{Code: ExitUsage, Message: "Error: " + countErr.Error() + "\n" + shortUsage, Err: err}
	case errors.As(err, &parseErr):
		return &ExitError{Code: ExitParse, Message: "Error: " + parseErr.Error(), Err: err}
	case errors.Is(err, discount.ErrInvalidAmount):
		return &ExitError{Code: ExitInvalidAmount, Message: "Error: " + err.Error(), Err: err}
	case errors.Is(err, discount.ErrInvalidRate):
		return &ExitError{Code: ExitInvalidRate, Message: "Error: " + err.Error(), Err: err}
	case errors.As(err, &loadErr), errors.Is(err, app.ErrInvalidConfig):
		return &ExitError{Code: ExitConfig, Message: "Error: " + err.Error(), Err: err}
	default:
		return &ExitError{Code: ExitInternal, Message: "Error: " + err.Error(), Err: err}
	}
}
