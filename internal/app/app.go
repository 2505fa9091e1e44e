package app

import (
	"io"

	"github.com/ocastrof/descuentos/internal/config"
)

// App runs the calculator against a Config. Results go to outW and logs to
// logW.
type App struct {
	outW   io.Writer
	logW   io.Writer
	loader config.Loader
}

// NewApp is the constructor for the application. loader reads the optional
// settings file and may be nil when no settings file will ever be used.
func NewApp(outW, logW io.Writer, loader config.Loader) *App {
	if outW == nil {
		outW = io.Discard
	}
	if logW == nil {
		logW = io.Discard
	}
	return &App{
		outW:   outW,
		logW:   logW,
		loader: loader,
	}
}
