package hcl

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/ocastrof/descuentos/internal/config"
	"github.com/ocastrof/descuentos/internal/ctxlog"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL settings loader.
func NewLoader() *Loader {
	return &Loader{}
}

var _ config.Loader = (*Loader)(nil)

// fileRoot lists every attribute a settings file may contain. Attributes not
// listed here are rejected by the decoder. Missing attributes decode to an
// expression that evaluates to null.
type fileRoot struct {
	LogLevel  hcl.Expression `hcl:"log_level,optional"`
	LogFormat hcl.Expression `hcl:"log_format,optional"`
	Precision hcl.Expression `hcl:"precision,optional"`
}

// Load parses the settings file at path and translates it into the
// format-agnostic model. Every failure is reported as a *config.LoadError.
func (l *Loader) Load(ctx context.Context, path string) (*config.Settings, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL settings loader started.", "path", path)

	info, err := os.Stat(path)
	if err != nil {
		return nil, &config.LoadError{Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &config.LoadError{Path: path, Err: errors.New("is a directory")}
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, &config.LoadError{Path: path, Err: fmt.Errorf("failed to parse: %w", diags)}
	}

	var root fileRoot
	diags = gohcl.DecodeBody(file.Body, nil, &root)
	if diags.HasErrors() {
		return nil, &config.LoadError{Path: path, Err: fmt.Errorf("failed to decode: %w", diags)}
	}

	settings, err := l.translate(ctx, &root)
	if err != nil {
		return nil, &config.LoadError{Path: path, Err: err}
	}
	settings.Source = path

	logger.Debug("HCL settings loaded.",
		"path", path,
		"log_level_set", settings.LogLevel != nil,
		"log_format_set", settings.LogFormat != nil,
		"precision_set", settings.Precision != nil,
	)
	return settings, nil
}

// translate evaluates the decoded attributes into the agnostic model.
func (l *Loader) translate(ctx context.Context, root *fileRoot) (*config.Settings, error) {
	c := NewConverter()
	s := &config.Settings{}

	var err error
	if s.LogLevel, err = decodeOptional[string](ctx, c, root.LogLevel, "log_level"); err != nil {
		return nil, err
	}
	if s.LogFormat, err = decodeOptional[string](ctx, c, root.LogFormat, "log_format"); err != nil {
		return nil, err
	}
	if s.Precision, err = decodeOptional[int](ctx, c, root.Precision, "precision"); err != nil {
		return nil, err
	}
	return s, nil
}
