package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ocastrof/descuentos/internal/app"
	"github.com/ocastrof/descuentos/internal/discount"
)

const programName = "discount"

const shortUsage = `Usage: discount [options] <amount> <discount>
Example: discount 100 15`

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an *ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet(programName, flag.ContinueOnError)
	// Errors are reported through ExitError; usage is printed only for -h.
	flagSet.SetOutput(io.Discard)
	flagSet.Usage = func() {}

	configFlag := flagSet.String(app.OptionConfig, "", "Path to an HCL settings file.")
	precisionFlag := flagSet.Int(app.OptionPrecision, app.DefaultPrecision, "Fraction digits in the printed result. -1 prints the exact value.")
	logFormatFlag := flagSet.String(app.OptionLogFormat, app.DefaultLogFormat, "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String(app.OptionLogLevel, app.DefaultLogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(protectNegativeNumbers(flagSet, args)); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(flagSet, output)
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: ExitUsage, Message: "Error: " + err.Error() + "\n" + shortUsage, Err: err}
	}
	slog.Debug("Arguments parsed successfully.", "positional", flagSet.NArg())

	if flagSet.NArg() != 2 {
		return nil, false, ToExitError(&ArgumentCountError{Got: flagSet.NArg()})
	}

	amount, err := discount.Parse(discount.FieldAmount, flagSet.Arg(0))
	if err != nil {
		return nil, false, ToExitError(err)
	}
	rate, err := discount.Parse(discount.FieldRate, flagSet.Arg(1))
	if err != nil {
		return nil, false, ToExitError(err)
	}

	explicit := make(map[string]bool)
	flagSet.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	cfg, err := app.NewConfig(app.Config{
		Amount:       amount,
		Rate:         rate,
		SettingsPath: strings.TrimSpace(*configFlag),
		LogLevel:     strings.ToLower(*logLevelFlag),
		LogFormat:    strings.ToLower(*logFormatFlag),
		Precision:    *precisionFlag,
		Explicit:     explicit,
	})
	if err != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: "Error: " + err.Error(), Err: err}
	}

	slog.Debug("CLI parser finished successfully.", "amount", amount.String(), "rate", rate.String())
	return cfg, false, nil
}

func printUsage(flagSet *flag.FlagSet, output io.Writer) {
	fmt.Fprint(output, `
Discount - computes the amount left after a percentage discount.

Usage:
  discount [options] <amount> <discount>

Arguments:
  amount
    Base amount, a number greater than or equal to 0.
  discount
    Discount percentage, a number between 0 and 100.

Example:
  discount 100 15
  discount --precision 2 99.99 12.5

Options:
`)
	flagSet.SetOutput(output)
	flagSet.PrintDefaults()
	flagSet.SetOutput(io.Discard)
}

// protectNegativeNumbers inserts "--" before the first argument that the
// flag package would otherwise read as a flag but is really a negative
// number, so that "-1 10" reaches the positional arguments. Values of
// non-boolean flags given as a separate argument are skipped.
func protectNegativeNumbers(flagSet *flag.FlagSet, args []string) []string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" || !strings.HasPrefix(arg, "-") || arg == "-" {
			return args
		}
		if looksNumeric(arg) {
			out := make([]string, 0, len(args)+1)
			out = append(out, args[:i]...)
			out = append(out, "--")
			return append(out, args[i:]...)
		}

		name := strings.TrimLeft(arg, "-")
		if strings.Contains(name, "=") {
			continue
		}
		if f := flagSet.Lookup(name); f != nil && !isBoolFlag(f) {
			i++
		}
	}
	return args
}

// looksNumeric reports whether arg is written as a number, including one
// outside the supported range, so that the range error reaches the user.
func looksNumeric(arg string) bool {
	_, err := discount.Parse("", arg)
	return err == nil || errors.Is(err, discount.ErrOutOfRange)
}

func isBoolFlag(f *flag.Flag) bool {
	bf, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && bf.IsBoolFlag()
}
