// Package hcl provides the HCL implementation of config.Loader. It parses a
// settings file, evaluates each attribute as a cty value, converts it to the
// Go type the setting needs and fills a config.Settings.
package hcl
