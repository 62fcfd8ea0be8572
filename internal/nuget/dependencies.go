package nuget

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/git-pkgs/nugetdeps/internal/core"
)

// ExtractDependencies reads an OData feed document and decodes the first
// d:Dependencies property found anywhere in it. Later matches are ignored.
// The whole document must be well-formed even after the match is found.
func ExtractDependencies(r io.Reader) ([]core.Dependency, error) {
	dec := xml.NewDecoder(r)

	var (
		text       string
		found      bool
		sawRoot    bool
		rootClosed bool
		depth      int
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &core.ParseError{Err: err}
		}

		// Only the root element may appear at depth zero.
		var start xml.StartElement
		switch t := tok.(type) {
		case xml.StartElement:
			if rootClosed {
				return nil, &core.ParseError{Err: errors.New("content after root element")}
			}
			start = t
			depth++
		case xml.EndElement:
			depth--
			if depth == 0 {
				rootClosed = true
			}
			continue
		case xml.CharData:
			if depth == 0 && len(bytes.TrimSpace(t)) > 0 {
				return nil, &core.ParseError{Err: errors.New("text outside root element")}
			}
			continue
		default:
			continue
		}
		sawRoot = true
		if found || start.Name.Space != DataServicesNamespace || start.Name.Local != "Dependencies" {
			continue
		}

		var prop struct {
			Text string `xml:",chardata"`
		}
		if err := dec.DecodeElement(&prop, &start); err != nil {
			return nil, &core.ParseError{Err: err}
		}
		text, found = prop.Text, true
		depth--
		if depth == 0 {
			rootClosed = true
		}
	}

	if !sawRoot {
		return nil, &core.ParseError{Err: errors.New("document has no root element")}
	}

	return ParseDependencies(text), nil
}

// ParseDependencies decodes the v2 dependency string, entries of the form
// name:range[:framework] joined by '|'. Entries without both a name and a
// range part are skipped. Order is preserved.
func ParseDependencies(s string) []core.Dependency {
	deps := []core.Dependency{}
	if strings.TrimSpace(s) == "" {
		return deps
	}

	for _, entry := range strings.Split(s, "|") {
		parts := strings.SplitN(entry, ":", 3)
		if len(parts) < 2 {
			continue
		}

		dep := core.Dependency{
			Name:               parts[0],
			VersionRequirement: parts[1],
		}
		if len(parts) == 3 {
			dep.TargetFramework = parts[2]
		}
		deps = append(deps, dep)
	}

	return deps
}
