// Package app contains the calculator's application logic. It defines the
// run configuration, layers an optional settings file under command-line
// options, configures logging and computes and prints the result,
// independently of how the configuration was obtained.
package app
