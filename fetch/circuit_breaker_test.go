package fetch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/git-pkgs/nugetdeps/internal/core"
)

func TestCircuitBreakerFetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte("<feed/>"))
	}))
	defer server.Close()

	cbFetcher := NewCircuitBreakerFetcher(NewFetcher())

	resp, err := cbFetcher.Fetch(context.Background(), server.URL+"/Packages()")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(resp.Body)
	if string(body) != "<feed/>" {
		t.Errorf("expected '<feed/>', got %q", string(body))
	}
}

func TestExtractHost(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{
			name:     "nuget v2 feed",
			url:      "https://www.nuget.org/api/v2/Packages()?$filter=x",
			expected: "www.nuget.org",
		},
		{
			name:     "invalid URL",
			url:      "not-a-valid-url",
			expected: "not-a-valid-url",
		},
		{
			name:     "with port",
			url:      "https://feed.example.com:8080/nuget",
			expected: "feed.example.com:8080",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractHost(tt.url)
			if got != tt.expected {
				t.Errorf("extractHost(%q) = %q, want %q", tt.url, got, tt.expected)
			}
		})
	}
}

func TestBreakerState(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	cbFetcher := NewCircuitBreakerFetcher(NewFetcher())

	if states := cbFetcher.BreakerState(); len(states) != 0 {
		t.Errorf("expected empty states, got %d entries", len(states))
	}

	resp, err := cbFetcher.Fetch(context.Background(), server.URL+"/Packages()")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	_ = resp.Body.Close()

	states := cbFetcher.BreakerState()
	if len(states) != 1 {
		t.Fatalf("expected 1 breaker state, got %d", len(states))
	}
	for _, state := range states {
		if state != "closed" {
			t.Errorf("expected closed state, got %s", state)
		}
	}
}

func TestCircuitBreakerOpensOnServerErrors(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	cbFetcher := NewCircuitBreakerFetcher(NewFetcher())
	ctx := context.Background()

	var lastErr error
	for i := 0; i < 10; i++ {
		_, lastErr = cbFetcher.Fetch(ctx, server.URL+"/Packages()")
	}

	if requests != 5 {
		t.Errorf("requests = %d, want 5 before the breaker opens", requests)
	}
	if !errors.Is(lastErr, ErrFeedUnavailable) {
		t.Errorf("expected ErrFeedUnavailable, got %v", lastErr)
	}
	for host, state := range cbFetcher.BreakerState() {
		if state != "open" {
			t.Errorf("breaker for %s = %s, want open", host, state)
		}
	}
}

func TestCircuitBreakerIgnoresClientErrors(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	cbFetcher := NewCircuitBreakerFetcher(NewFetcher())
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_, err := cbFetcher.Fetch(ctx, server.URL+"/Packages()")
		var httpErr *core.HTTPError
		if !errors.As(err, &httpErr) || !httpErr.IsNotFound() {
			t.Fatalf("expected 404 HTTPError, got %v", err)
		}
	}

	if requests != 10 {
		t.Errorf("requests = %d, want 10", requests)
	}
}
