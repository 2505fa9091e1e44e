package config

// Settings holds the values read from a settings file. A nil field means the
// file did not set it, so callers can layer these values under explicit
// flags and over built-in defaults.
type Settings struct {
	// Source is the path the settings were read from.
	Source string

	LogLevel  *string
	LogFormat *string
	// Precision is the number of fraction digits in the printed result;
	// -1 prints the exact value.
	Precision *int
}

// IsEmpty reports whether no setting was provided.
func (s *Settings) IsEmpty() bool {
	return s == nil || (s.LogLevel == nil && s.LogFormat == nil && s.Precision == nil)
}

// LoadError reports a settings file that could not be read, parsed or
// converted into Settings.
type LoadError struct {
	Path string
	Err  error
}

// Error implements the error interface for LoadError.
func (e *LoadError) Error() string {
	return "settings file " + e.Path + ": " + e.Err.Error()
}

// Unwrap returns the underlying cause.
func (e *LoadError) Unwrap() error {
	return e.Err
}
