package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig matches every configuration-layer error via errors.Is.
var ErrInvalidConfig = errors.New("invalid configuration")

// NotFoundError is returned when the config path is not an existing regular file.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("config file not found: %s", e.Path)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// MalformedInputError is returned when the config file is not valid JSON or YAML.
type MalformedInputError struct {
	Path string
	Err  error
}

func (e *MalformedInputError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("malformed config: %v", e.Err)
	}
	return fmt.Sprintf("malformed config in %s: %v", e.Path, e.Err)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

func (e *MalformedInputError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// SchemaError is returned when a key is missing or holds a value of the wrong type.
type SchemaError struct {
	Key  string
	Want string
	Got  string // empty when the key is missing
}

func (e *SchemaError) Error() string {
	if e.Got == "" {
		return fmt.Sprintf("missing required parameter: %s", e.Key)
	}
	return fmt.Sprintf("parameter %q must be of type %s, got %s", e.Key, e.Want, e.Got)
}

func (e *SchemaError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// ConstraintError is returned when a correctly typed value is out of range.
type ConstraintError struct {
	Key    string
	Reason string
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("parameter %q %s", e.Key, e.Reason)
}

func (e *ConstraintError) Is(target error) bool {
	return target == ErrInvalidConfig
}
