// Package output renders dependency lists and configurations for the CLI.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/git-pkgs/nugetdeps/client"
	"github.com/git-pkgs/nugetdeps/config"
	"github.com/git-pkgs/nugetdeps/internal/core"
)

// Format selects how a dependency list is rendered.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text or json)", s)
	}
}

// Package identifies the package whose dependencies are being rendered.
type Package struct {
	Name    string
	Version string
	URLs    client.URLBuilder
}

// Dependencies writes deps in the given format.
func Dependencies(w io.Writer, format Format, pkg Package, deps []core.Dependency) error {
	if format == FormatJSON {
		return dependenciesJSON(w, pkg, deps)
	}
	return dependenciesText(w, pkg, deps)
}

func dependenciesText(w io.Writer, pkg Package, deps []core.Dependency) error {
	if _, err := fmt.Fprintf(w, "Dependencies of %s %s:\n", pkg.Name, pkg.Version); err != nil {
		return err
	}
	if len(deps) == 0 {
		_, err := fmt.Fprintln(w, "  no dependencies")
		return err
	}
	for _, d := range deps {
		line := fmt.Sprintf("  - %s %s", d.Name, d.VersionRequirement)
		if d.TargetFramework != "" {
			line += fmt.Sprintf(" (%s)", d.TargetFramework)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

type jsonDependency struct {
	Name               string `json:"name"`
	VersionRequirement string `json:"version_requirement"`
	TargetFramework    string `json:"target_framework,omitempty"`
	PURL               string `json:"purl"`
}

type jsonDocument struct {
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	URLs         map[string]string `json:"urls,omitempty"`
	Dependencies []jsonDependency  `json:"dependencies"`
}

func dependenciesJSON(w io.Writer, pkg Package, deps []core.Dependency) error {
	doc := jsonDocument{
		Name:         pkg.Name,
		Version:      pkg.Version,
		Dependencies: make([]jsonDependency, len(deps)),
	}
	if pkg.URLs != nil {
		doc.URLs = client.BuildURLs(pkg.URLs, pkg.Name, pkg.Version)
	}
	for i, d := range deps {
		doc.Dependencies[i] = jsonDependency{
			Name:               d.Name,
			VersionRequirement: d.VersionRequirement,
			TargetFramework:    d.TargetFramework,
			PURL:               core.PURL(d.Name, ""),
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Config writes the loaded configuration as key: value lines.
func Config(w io.Writer, cfg *config.RepositoryConfig) error {
	if _, err := fmt.Fprintln(w, "Loaded configuration:"); err != nil {
		return err
	}
	for _, kv := range cfg.Fields() {
		if _, err := fmt.Fprintf(w, "%s: %s\n", kv[0], kv[1]); err != nil {
			return err
		}
	}
	return nil
}
