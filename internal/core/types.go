// Package core provides shared types and error kinds.
package core

// Dependency represents one direct dependency of a package as listed by a feed.
type Dependency struct {
	Name               string
	VersionRequirement string
	TargetFramework    string // empty when the entry is framework-agnostic
}

// Mode selects where dependency resolution looks for packages.
type Mode string

const (
	ModeRemote Mode = "remote"
	ModeLocal  Mode = "local"
)

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	return m == ModeRemote || m == ModeLocal
}
