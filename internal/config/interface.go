package config

import "context"

// Loader reads a settings file and translates it into the format-agnostic
// Settings model.
type Loader interface {
	Load(ctx context.Context, path string) (*Settings, error)
}
