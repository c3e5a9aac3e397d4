// Package http builds the *http.Client handed to provider client libraries.
// It layers default headers, rate limiting, OAuth2 token injection and
// request/response logging over a standard transport.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// DefaultTimeout applies when HTTPClientConfig.Timeout is zero
const DefaultTimeout = 60 * time.Second

// DefaultUserAgent applies when HTTPClientConfig.UserAgent is empty
const DefaultUserAgent = "studio/1.0"

// HTTPClientConfig configures the HTTP client
type HTTPClientConfig struct {
	Timeout           time.Duration     `json:"timeout,omitempty"`
	Headers           map[string]string `json:"headers,omitempty"`
	UserAgent         string            `json:"user_agent,omitempty"`
	LogRequests       bool              `json:"log_requests,omitempty"`
	LogBodies         bool              `json:"log_bodies,omitempty"`
	RequestsPerMinute int               `json:"requests_per_minute,omitempty"`
	Burst             int               `json:"burst,omitempty"`

	Logger      *slog.Logger       `json:"-"`
	Masker      CredentialMasker   `json:"-"`
	TokenSource oauth2.TokenSource `json:"-"`
	Transport   http.RoundTripper  `json:"-"`

	// Limiter, when set, is used instead of a limiter built from
	// RequestsPerMinute so that clients created separately share one budget.
	Limiter *rate.Limiter `json:"-"`
}

// NewHTTPClient creates a fresh *http.Client for config.
//
// Transport layering, outermost first: default headers, rate limit,
// OAuth2 token, logging, base transport. Logging sits inside the token
// layer so the logged headers are the ones actually sent (masked).
func NewHTTPClient(config HTTPClientConfig) *http.Client {
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}

	var rt http.RoundTripper = config.Transport
	if rt == nil {
		rt = http.DefaultTransport.(*http.Transport).Clone()
	}

	if config.LogRequests && config.Logger != nil {
		logging := NewLoggingTransport(rt, config.Logger, config.LogBodies)
		if config.Masker != nil {
			logging.Masker = config.Masker
		}
		rt = logging
	}

	if config.TokenSource != nil {
		rt = &oauth2.Transport{Source: oauth2.ReuseTokenSource(nil, config.TokenSource), Base: rt}
	}

	switch {
	case config.Limiter != nil:
		rt = &RateLimitTransport{Base: rt, Limiter: config.Limiter}
	case config.RequestsPerMinute > 0:
		rt = NewRateLimitTransport(rt, config.RequestsPerMinute, config.Burst)
	}

	rt = &HeaderTransport{Base: rt, Headers: config.Headers, UserAgent: config.UserAgent}

	return &http.Client{
		Timeout:   config.Timeout,
		Transport: rt,
	}
}

// HeaderTransport sets default headers that the request does not already carry
type HeaderTransport struct {
	Base      http.RoundTripper
	Headers   map[string]string
	UserAgent string
}

// RoundTrip implements http.RoundTripper
func (t *HeaderTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for key, value := range t.Headers {
		if req.Header.Get(key) == "" {
			req.Header.Set(key, value)
		}
	}
	if t.UserAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", t.UserAgent)
	}
	if id := RequestIDFromContext(req.Context()); id != "" && req.Header.Get(RequestIDHeader) == "" {
		req.Header.Set(RequestIDHeader, id)
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}

// HTTPClientBuilder provides a builder pattern for *http.Client
type HTTPClientBuilder struct {
	config HTTPClientConfig
}

// NewHTTPClientBuilder creates a new builder
func NewHTTPClientBuilder() *HTTPClientBuilder {
	return &HTTPClientBuilder{}
}

// NewHTTPClientBuilderFrom starts a builder from an existing config. The
// header map is copied so later WithHeaders calls do not leak back.
func NewHTTPClientBuilderFrom(config HTTPClientConfig) *HTTPClientBuilder {
	b := &HTTPClientBuilder{config: config}
	b.config.Headers = nil
	return b.WithHeaders(config.Headers)
}

// WithTimeout sets the timeout
func (b *HTTPClientBuilder) WithTimeout(timeout time.Duration) *HTTPClientBuilder {
	b.config.Timeout = timeout
	return b
}

// WithHeaders adds default headers
func (b *HTTPClientBuilder) WithHeaders(headers map[string]string) *HTTPClientBuilder {
	if len(headers) == 0 {
		return b
	}
	if b.config.Headers == nil {
		b.config.Headers = make(map[string]string, len(headers))
	}
	for k, v := range headers {
		b.config.Headers[k] = v
	}
	return b
}

// WithUserAgent sets the user agent
func (b *HTTPClientBuilder) WithUserAgent(userAgent string) *HTTPClientBuilder {
	b.config.UserAgent = userAgent
	return b
}

// WithLogger enables request/response logging through logger
func (b *HTTPClientBuilder) WithLogger(logger *slog.Logger, logBodies bool) *HTTPClientBuilder {
	b.config.Logger = logger
	b.config.LogRequests = logger != nil
	b.config.LogBodies = logBodies
	return b
}

// WithRateLimit caps outgoing requests per minute with a limiter owned by
// the built client. It replaces any shared limiter.
func (b *HTTPClientBuilder) WithRateLimit(requestsPerMinute, burst int) *HTTPClientBuilder {
	b.config.RequestsPerMinute = requestsPerMinute
	b.config.Burst = burst
	b.config.Limiter = nil
	return b
}

// WithLimiter makes the built client wait on a limiter shared with other clients
func (b *HTTPClientBuilder) WithLimiter(limiter *rate.Limiter) *HTTPClientBuilder {
	b.config.Limiter = limiter
	return b
}

// WithTokenSource authorizes every request with a bearer token from ts
func (b *HTTPClientBuilder) WithTokenSource(ts oauth2.TokenSource) *HTTPClientBuilder {
	b.config.TokenSource = ts
	return b
}

// WithTransport replaces the base transport
func (b *HTTPClientBuilder) WithTransport(rt http.RoundTripper) *HTTPClientBuilder {
	b.config.Transport = rt
	return b
}

// Config returns a copy of the accumulated configuration
func (b *HTTPClientBuilder) Config() HTTPClientConfig {
	return b.config
}

// Build creates the HTTP client
func (b *HTTPClientBuilder) Build() *http.Client {
	return NewHTTPClient(b.config)
}
