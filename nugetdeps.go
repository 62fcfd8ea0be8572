// Package nugetdeps lists the direct dependencies of a package version
// published on a NuGet v2 (OData) feed.
//
// Basic usage:
//
//	cfg, err := config.Load("config.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	deps, err := nugetdeps.FetchDependencies(context.Background(), cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, d := range deps {
//		fmt.Println(d.Name, d.VersionRequirement, d.TargetFramework)
//	}
package nugetdeps

import (
	"context"
	"fmt"

	"github.com/git-pkgs/nugetdeps/client"
	"github.com/git-pkgs/nugetdeps/config"
	"github.com/git-pkgs/nugetdeps/fetch"
	"github.com/git-pkgs/nugetdeps/internal/core"
	"github.com/git-pkgs/nugetdeps/internal/nuget"
)

// Re-export types from internal/core
type (
	// Dependency represents one direct dependency of a package.
	Dependency = core.Dependency

	// Mode selects where dependency resolution looks for packages.
	Mode = core.Mode

	// URLBuilder constructs URLs for a package.
	URLBuilder = client.URLBuilder
)

const (
	ModeRemote = core.ModeRemote
	ModeLocal  = core.ModeLocal
)

// Error types
type (
	FetchError           = core.FetchError
	ParseError           = core.ParseError
	UnsupportedModeError = core.UnsupportedModeError
	HTTPError            = core.HTTPError
)

type options struct {
	fetcher fetch.FetcherInterface
}

// Option configures FetchDependencies.
type Option func(*options)

// WithFetcher sets the transport used to query the feed.
func WithFetcher(f fetch.FetcherInterface) Option {
	return func(o *options) {
		o.fetcher = f
	}
}

// FetchDependencies returns the direct dependencies of cfg.PackageName at
// cfg.PackageVersion, in the order the feed lists them.
//
// Local mode has no resolver and always fails with *UnsupportedModeError.
// Remote mode requires a package version. A nil cfg matches
// config.ErrInvalidConfig.
func FetchDependencies(ctx context.Context, cfg *config.RepositoryConfig, opts ...Option) ([]Dependency, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: no repository configuration", config.ErrInvalidConfig)
	}
	if cfg.RepoMode != core.ModeRemote {
		return nil, &core.UnsupportedModeError{Mode: cfg.RepoMode}
	}
	if cfg.PackageVersion == "" {
		return nil, &config.SchemaError{Key: "package_version", Want: "string"}
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	reg := nuget.New(cfg.RepositoryURL, o.fetcher)
	return reg.FetchDependencies(ctx, cfg.PackageName, cfg.PackageVersion)
}

// URLs returns the URL builder for the feed a configuration points at.
// cfg must not be nil.
func URLs(cfg *config.RepositoryConfig) URLBuilder {
	return nuget.NewURLs(cfg.RepositoryURL)
}

// PURL returns the package URL of a NuGet package. version may be empty.
func PURL(name, version string) string {
	return core.PURL(name, version)
}
