// Package fetch provides the HTTP transport used to query package feeds,
// with DNS caching and per-host circuit breaking.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/dnscache"
	logger "github.com/sirupsen/logrus"

	"github.com/git-pkgs/nugetdeps/internal/core"
)

// DefaultTimeout bounds a whole request, from dial to the last body byte.
const DefaultTimeout = 30 * time.Second

// Response contains a successful upstream response.
type Response struct {
	Body        io.ReadCloser
	Size        int64 // -1 if unknown
	ContentType string
}

// FetcherInterface defines the interface for feed fetchers.
type FetcherInterface interface {
	Fetch(ctx context.Context, url string) (*Response, error)
}

// Fetcher issues GET requests against package feeds.
// Each call performs exactly one request; failures are returned to the caller.
type Fetcher struct {
	client    *http.Client
	userAgent string
	timeout   time.Duration
	authFn    func(url string) (headerName, headerValue string)
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithTimeout sets the overall request timeout. Values <= 0 keep the default.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithAuthFunc sets a function that returns auth headers for a given URL.
// The function receives the request URL and returns a header name and value.
// Return empty strings to skip authentication for that URL.
func WithAuthFunc(fn func(url string) (headerName, headerValue string)) Option {
	return func(f *Fetcher) {
		f.authFn = fn
	}
}

// NewFetcher creates a new Fetcher with the given options.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		userAgent: "nugetdeps/1.0",
		timeout:   DefaultTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.client == nil {
		f.client = &http.Client{
			Timeout:   f.timeout,
			Transport: newTransport(),
		}
	} else if f.client.Timeout == 0 {
		f.client.Timeout = f.timeout
	}
	return f
}

func newTransport() *http.Transport {
	// Create DNS cache with 5 minute refresh interval
	resolver := &dnscache.Resolver{}
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			resolver.Refresh(true)
		}
	}()

	dialer := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			host, port, err := net.SplitHostPort(addr)
			if err != nil {
				return nil, err
			}
			ips, err := resolver.LookupHost(ctx, host)
			if err != nil {
				return nil, err
			}
			var lastErr error
			for _, ip := range ips {
				conn, err := dialer.DialContext(ctx, network, net.JoinHostPort(ip, port))
				if err == nil {
					return conn, nil
				}
				lastErr = err
			}
			if lastErr != nil {
				return nil, lastErr
			}
			return nil, fmt.Errorf("no addresses resolved for %s", host)
		},
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}

// Fetch performs a single GET against url.
// Non-2xx responses are returned as *core.HTTPError.
// The caller must close the returned Response.Body when done.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/atom+xml, application/xml, text/xml")

	if f.authFn != nil {
		if name, value := f.authFn(url); name != "" && value != "" {
			req.Header.Set(name, value)
		}
	}

	logger.Debugf("GET %s", url)
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	logger.Debugf("GET %s: %d", url, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		_ = resp.Body.Close()
		return nil, &core.HTTPError{
			StatusCode: resp.StatusCode,
			URL:        url,
			Body:       string(body),
		}
	}

	size := int64(-1)
	if cl := resp.Header.Get("Content-Length"); cl != "" {
		if n, err := strconv.ParseInt(cl, 10, 64); err == nil {
			size = n
		}
	}

	return &Response{
		Body:        resp.Body,
		Size:        size,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}
