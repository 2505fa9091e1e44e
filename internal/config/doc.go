// Package config defines the format-agnostic settings model for the
// calculator and the Loader interface that format-specific readers, such as
// the HCL loader, implement.
package config
