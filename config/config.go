// Package config loads and validates the repository query configuration.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/git-pkgs/nugetdeps/internal/core"
)

// DefaultPath is the config file read when none is given.
const DefaultPath = "config.json"

// Format is the syntax of a config document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// RepositoryConfig is a fully validated configuration. Values are only
// produced by Validate, so every field has been checked.
type RepositoryConfig struct {
	PackageName     string    `json:"package_name" yaml:"package_name"`
	RepositoryURL   string    `json:"repository_url" yaml:"repository_url"`
	RepoMode        core.Mode `json:"repo_mode" yaml:"repo_mode"`
	OutputFile      string    `json:"output_file" yaml:"output_file"`
	MaxDepth        int       `json:"max_depth" yaml:"max_depth"`
	FilterSubstring string    `json:"filter_substring" yaml:"filter_substring"`
	PackageVersion  string    `json:"package_version,omitempty" yaml:"package_version,omitempty"`
}

// Load reads the file at path and validates it. Files ending in .yaml or
// .yml are parsed as YAML, everything else as JSON.
func Load(path string) (*RepositoryConfig, error) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, &NotFoundError{Path: path}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	raw, err := Parse(data, FormatFor(path))
	if err != nil {
		var malformed *MalformedInputError
		if errors.As(err, &malformed) {
			malformed.Path = path
		}
		return nil, err
	}

	return Validate(raw)
}

// FormatFor picks the document format from a file extension.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Parse decodes a config document into an untyped mapping. The top level
// must be an object.
func Parse(data []byte, format Format) (map[string]any, error) {
	var raw map[string]any

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, &MalformedInputError{Err: err}
		}
		if raw == nil {
			return nil, &MalformedInputError{Err: errors.New("document is empty or not a mapping")}
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, &MalformedInputError{Err: err}
		}
		if _, err := dec.Token(); !errors.Is(err, io.EOF) {
			return nil, &MalformedInputError{Err: errors.New("unexpected data after top-level object")}
		}
		if raw == nil {
			return nil, &MalformedInputError{Err: errors.New("top-level value must be an object")}
		}
	}

	return raw, nil
}

// Validate checks that raw holds every required key with the right type
// and that constrained values are in range.
func Validate(raw map[string]any) (*RepositoryConfig, error) {
	var (
		cfg RepositoryConfig
		err error
	)

	if cfg.PackageName, err = requireString(raw, "package_name"); err != nil {
		return nil, err
	}
	if cfg.RepositoryURL, err = requireString(raw, "repository_url"); err != nil {
		return nil, err
	}
	mode, err := requireString(raw, "repo_mode")
	if err != nil {
		return nil, err
	}
	if cfg.OutputFile, err = requireString(raw, "output_file"); err != nil {
		return nil, err
	}
	if cfg.MaxDepth, err = requireInt(raw, "max_depth"); err != nil {
		return nil, err
	}
	if cfg.FilterSubstring, err = requireString(raw, "filter_substring"); err != nil {
		return nil, err
	}
	if v, ok := raw["package_version"]; ok {
		s, isString := v.(string)
		if !isString {
			return nil, &SchemaError{Key: "package_version", Want: "string", Got: typeName(v)}
		}
		cfg.PackageVersion = s
	}

	if cfg.MaxDepth < 0 {
		return nil, &ConstraintError{Key: "max_depth", Reason: "must not be negative"}
	}
	cfg.RepoMode = core.Mode(mode)
	if !cfg.RepoMode.Valid() {
		return nil, &ConstraintError{Key: "repo_mode", Reason: "must be 'remote' or 'local'"}
	}

	return &cfg, nil
}

func requireString(raw map[string]any, key string) (string, error) {
	v, ok := raw[key]
	if !ok {
		return "", &SchemaError{Key: key, Want: "string"}
	}
	s, ok := v.(string)
	if !ok {
		return "", &SchemaError{Key: key, Want: "string", Got: typeName(v)}
	}
	return s, nil
}

func requireInt(raw map[string]any, key string) (int, error) {
	v, ok := raw[key]
	if !ok {
		return 0, &SchemaError{Key: key, Want: "integer"}
	}

	var n int64
	switch t := v.(type) {
	case json.Number:
		i, err := t.Int64()
		if err != nil {
			return 0, &SchemaError{Key: key, Want: "integer", Got: typeName(v)}
		}
		n = i
	case int:
		n = int64(t)
	case int64:
		n = t
	case uint64:
		if t > math.MaxInt64 {
			return 0, &SchemaError{Key: key, Want: "integer", Got: typeName(v)}
		}
		n = int64(t)
	default:
		return 0, &SchemaError{Key: key, Want: "integer", Got: typeName(v)}
	}

	if n > math.MaxInt32 || n < math.MinInt32 {
		return 0, &ConstraintError{Key: key, Reason: "is out of range"}
	}
	return int(n), nil
}

// typeName names the JSON/YAML type of a decoded value for error messages.
func typeName(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number:
		if _, err := t.Int64(); err == nil {
			return "integer"
		}
		return "number"
	case int, int64, uint64:
		return "integer"
	case float64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// Fields returns the configuration as ordered key/value pairs for display.
func (c *RepositoryConfig) Fields() [][2]string {
	fields := [][2]string{
		{"package_name", c.PackageName},
		{"repository_url", c.RepositoryURL},
		{"repo_mode", string(c.RepoMode)},
		{"output_file", c.OutputFile},
		{"max_depth", fmt.Sprintf("%d", c.MaxDepth)},
		{"filter_substring", c.FilterSubstring},
	}
	if c.PackageVersion != "" {
		fields = append(fields, [2]string{"package_version", c.PackageVersion})
	}
	return fields
}
