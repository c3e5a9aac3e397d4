package http

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitTransport delays outgoing requests so that no more than the
// configured number per minute leave the process. Waiting honours the
// request context.
type RateLimitTransport struct {
	Base    http.RoundTripper
	Limiter *rate.Limiter
}

// NewRateLimiter creates a token bucket allowing requestsPerMinute with the
// given burst; burst below one is treated as one.
func NewRateLimiter(requestsPerMinute, burst int) *rate.Limiter {
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), burst)
}

// NewRateLimitTransport wraps base with a limiter. requestsPerMinute must be positive.
func NewRateLimitTransport(base http.RoundTripper, requestsPerMinute, burst int) *RateLimitTransport {
	return &RateLimitTransport{Base: base, Limiter: NewRateLimiter(requestsPerMinute, burst)}
}

// RoundTrip implements http.RoundTripper
func (t *RateLimitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.Limiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}

// LimiterSet hands out one limiter per key for the lifetime of the set.
// Clients built at different times for the same key share its budget.
type LimiterSet struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewLimiterSet creates an empty set
func NewLimiterSet() *LimiterSet {
	return &LimiterSet{limiters: make(map[string]*rate.Limiter)}
}

// Get returns the limiter stored under key, creating it from
// requestsPerMinute and burst on first use. Later calls with other rates
// for the same key get the original limiter.
func (s *LimiterSet) Get(key string, requestsPerMinute, burst int) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.limiters[key]; ok {
		return l
	}
	l := NewRateLimiter(requestsPerMinute, burst)
	s.limiters[key] = l
	return l
}

// NewSharedTransport returns a clone of http.DefaultTransport intended to be
// created once and reused as the base of every client, so they share one
// connection pool.
func NewSharedTransport() *http.Transport {
	return http.DefaultTransport.(*http.Transport).Clone()
}
