package api

import (
	"errors"
	"fmt"
)

var (
	// ErrNotMapping is wrapped by errors that report an argument that must be a mapping but isn't
	ErrNotMapping = errors.New(`not a mapping`)

	// ErrNotConvertible is wrapped by errors that report a Go value that has no configuration value counterpart
	ErrNotConvertible = errors.New(`not convertible to a configuration value`)

	// ErrUnknownOption is wrapped by errors that report an unrecognized policy or selector option
	ErrUnknownOption = errors.New(`unknown option`)

	// ErrBadOption is wrapped by errors that report an option with a value of the wrong type
	ErrBadOption = errors.New(`bad option value`)

	// ErrUnknownMergeStrategy is wrapped by errors that report an unknown merge strategy name
	ErrUnknownMergeStrategy = errors.New(`unknown merge strategy`)

	// ErrYamlNotHash is wrapped by errors that report a YAML document that isn't a mapping
	ErrYamlNotHash = errors.New(`YAML document is not a hash`)

	// ErrJSONNotHash is wrapped by errors that report a JSON document that isn't an object
	ErrJSONNotHash = errors.New(`JSON document is not an object`)

	// ErrUnsupportedFileType is wrapped by errors that report a file extension that no loader handles
	ErrUnsupportedFileType = errors.New(`unsupported file type`)
)

// NotMapping creates an error with a descriptive text and returns it.
func NotMapping(argName string, value interface{}) error {
	return fmt.Errorf(`%s must be a mapping, got %T: %w`, argName, value, ErrNotMapping)
}

// NotConvertible creates an error with a descriptive text and returns it.
func NotConvertible(value interface{}) error {
	return fmt.Errorf(`value of type %T: %w`, value, ErrNotConvertible)
}

// UnknownOption creates an error with a descriptive text and returns it.
func UnknownOption(name string) error {
	return fmt.Errorf(`%w '%s'`, ErrUnknownOption, name)
}

// BadOption creates an error with a descriptive text and returns it.
func BadOption(name string, value interface{}) error {
	return fmt.Errorf(`%w: option '%s' must be a boolean, got %T`, ErrBadOption, name, value)
}

// UnknownMergeStrategy creates an error with a descriptive text and returns it.
func UnknownMergeStrategy(name string) error {
	return fmt.Errorf(`%w '%s'`, ErrUnknownMergeStrategy, name)
}

// YamlNotHash creates an error with a descriptive text and returns it.
func YamlNotHash(path string) error {
	return fmt.Errorf(`file '%s' does not contain a YAML hash: %w`, path, ErrYamlNotHash)
}

// JSONNotHash creates an error with a descriptive text and returns it.
func JSONNotHash(path string) error {
	return fmt.Errorf(`file '%s' does not contain a JSON object: %w`, path, ErrJSONNotHash)
}

// UnsupportedFileType creates an error with a descriptive text and returns it.
func UnsupportedFileType(path string) error {
	return fmt.Errorf(`file '%s': %w`, path, ErrUnsupportedFileType)
}
