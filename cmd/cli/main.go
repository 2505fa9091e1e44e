package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ocastrof/descuentos/internal/app"
	"github.com/ocastrof/descuentos/internal/cli"
	"github.com/ocastrof/descuentos/internal/hcl"
)

// main is the entrypoint for the discount calculator.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		exitErr := cli.ToExitError(err)
		fmt.Fprintln(os.Stderr, exitErr.Message)
		os.Exit(exitErr.Code)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW, errW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	discountApp := app.NewApp(outW, errW, hcl.NewLoader())
	return discountApp.Run(context.Background(), appConfig)
}
