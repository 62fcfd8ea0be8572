package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/cenk/backoff"
	circuit "github.com/rubyist/circuitbreaker"

	"github.com/git-pkgs/nugetdeps/internal/core"
)

// ErrFeedUnavailable is returned while the circuit for a feed host is open.
var ErrFeedUnavailable = errors.New("feed unavailable")

// CircuitBreakerFetcher wraps a fetcher with per-host circuit breakers.
// It never re-issues a request; an open breaker fails the call immediately.
type CircuitBreakerFetcher struct {
	fetcher   FetcherInterface
	threshold int64
	breakers  map[string]*circuit.Breaker
	mu        sync.RWMutex
}

// NewCircuitBreakerFetcher creates a new circuit breaker wrapper for a fetcher.
// The breaker for a host trips after five consecutive failures.
func NewCircuitBreakerFetcher(f FetcherInterface) *CircuitBreakerFetcher {
	return &CircuitBreakerFetcher{
		fetcher:   f,
		threshold: 5,
		breakers:  make(map[string]*circuit.Breaker),
	}
}

// getBreaker returns or creates a circuit breaker for the given host.
func (cbf *CircuitBreakerFetcher) getBreaker(host string) *circuit.Breaker {
	cbf.mu.RLock()
	breaker, exists := cbf.breakers[host]
	cbf.mu.RUnlock()

	if exists {
		return breaker
	}

	cbf.mu.Lock()
	defer cbf.mu.Unlock()

	// Double-check after acquiring write lock
	if breaker, exists := cbf.breakers[host]; exists {
		return breaker
	}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = 30 * time.Second
	expBackoff.MaxInterval = 5 * time.Minute
	expBackoff.Multiplier = 2.0
	expBackoff.Reset()

	breaker = circuit.NewBreakerWithOptions(&circuit.Options{
		BackOff:    expBackoff,
		ShouldTrip: circuit.ThresholdTripFunc(cbf.threshold),
	})

	cbf.breakers[host] = breaker
	return breaker
}

// Fetch wraps the underlying fetcher's Fetch with circuit breaker logic.
// Client errors (4xx) are returned but do not count against the host.
func (cbf *CircuitBreakerFetcher) Fetch(ctx context.Context, fetchURL string) (*Response, error) {
	host := extractHost(fetchURL)
	breaker := cbf.getBreaker(host)

	var (
		resp      *Response
		clientErr error
	)
	err := breaker.Call(func() error {
		var fetchErr error
		resp, fetchErr = cbf.fetcher.Fetch(ctx, fetchURL)
		if isClientError(fetchErr) {
			clientErr = fetchErr
			return nil
		}
		return fetchErr
	}, 0)

	if err != nil {
		if errors.Is(err, circuit.ErrBreakerOpen) {
			return nil, fmt.Errorf("circuit breaker open for %s: %w", host, ErrFeedUnavailable)
		}
		return nil, err
	}
	if clientErr != nil {
		return nil, clientErr
	}

	return resp, nil
}

func isClientError(err error) bool {
	var httpErr *core.HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode >= 400 && httpErr.StatusCode < 500
}

// extractHost extracts the host from a URL for circuit breaker grouping.
func extractHost(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		// Fallback to simple truncation
		if len(rawURL) > 50 {
			return rawURL[:50]
		}
		return rawURL
	}
	return parsed.Host
}

// BreakerState returns the current state of each host's breaker.
func (cbf *CircuitBreakerFetcher) BreakerState() map[string]string {
	cbf.mu.RLock()
	defer cbf.mu.RUnlock()

	states := make(map[string]string)
	for host, breaker := range cbf.breakers {
		if breaker.Tripped() {
			states[host] = "open"
		} else {
			states[host] = "closed"
		}
	}
	return states
}
