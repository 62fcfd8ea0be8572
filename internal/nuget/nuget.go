// Package nuget provides a dependency client for NuGet v2 (OData) feeds.
package nuget

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/git-pkgs/nugetdeps/fetch"
	"github.com/git-pkgs/nugetdeps/internal/core"
)

const (
	DefaultURL = "https://www.nuget.org/api/v2"
	ecosystem  = "nuget"

	// DataServicesNamespace is the namespace of entry properties in OData v2 payloads.
	DataServicesNamespace = "http://schemas.microsoft.com/ado/2007/08/dataservices"
)

type Registry struct {
	baseURL string
	fetcher fetch.FetcherInterface
	urls    *URLs
}

// New returns a client for the feed rooted at baseURL. A single trailing
// slash on baseURL is ignored.
func New(baseURL string, fetcher fetch.FetcherInterface) *Registry {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if fetcher == nil {
		fetcher = fetch.NewFetcher()
	}
	r := &Registry{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		fetcher: fetcher,
	}
	r.urls = NewURLs(r.baseURL)
	return r
}

func (r *Registry) Ecosystem() string {
	return ecosystem
}

func (r *Registry) URLs() *URLs {
	return r.urls
}

// FilterURL returns the Packages() query selecting exactly one package version.
func (r *Registry) FilterURL(name, version string) string {
	filter := fmt.Sprintf("Id eq '%s' and Version eq '%s'", escape(name), escape(version))
	return fmt.Sprintf("%s/Packages()?$filter=%s", r.baseURL, escape(filter))
}

// escape percent-encodes everything outside the unreserved set, so quotes
// inside values cannot terminate the OData string literal.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// FetchDependencies retrieves the direct dependencies of one package version.
// A version without dependencies yields an empty, non-nil slice.
func (r *Registry) FetchDependencies(ctx context.Context, name, version string) ([]core.Dependency, error) {
	feedURL := r.FilterURL(name, version)

	resp, err := r.fetcher.Fetch(ctx, feedURL)
	if err != nil {
		return nil, &core.FetchError{URL: feedURL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	// Read the whole body here so a stalled or reset transfer is a fetch
	// failure, not a parse failure.
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &core.FetchError{URL: feedURL, Err: err}
	}

	return ExtractDependencies(bytes.NewReader(body))
}

type URLs struct {
	baseURL string
}

// NewURLs returns the URL builder for a feed without creating a transport.
func NewURLs(baseURL string) *URLs {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	return &URLs{baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Registry returns the gallery page for a package. Only nuget.org has one.
func (u *URLs) Registry(name, version string) string {
	if u.baseURL != DefaultURL {
		return ""
	}
	if version != "" {
		return fmt.Sprintf("https://www.nuget.org/packages/%s/%s", name, version)
	}
	return fmt.Sprintf("https://www.nuget.org/packages/%s", name)
}

func (u *URLs) Download(name, version string) string {
	if version == "" {
		return ""
	}
	return fmt.Sprintf("%s/package/%s/%s", u.baseURL, url.PathEscape(name), url.PathEscape(version))
}

func (u *URLs) Documentation(name, version string) string {
	return ""
}

func (u *URLs) PURL(name, version string) string {
	return core.PURL(name, version)
}
