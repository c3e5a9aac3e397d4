// Package common holds the pieces shared by every provider factory:
// property-bag validation, HTTP client construction per descriptor, and the
// ChatClient adapter over langchaingo models.
package common

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	studiohttp "github.com/samzhu/studio/pkg/http"
	"github.com/samzhu/studio/pkg/types"
)

// Property keys understood by the provider factories
const (
	PropAPIKey            = "api-key"
	PropBaseURL           = "base-url"
	PropAPIVersion        = "api-version"
	PropEmbeddingModel    = "embedding-model"
	PropOrganization      = "organization"
	PropProjectID         = "project-id"
	PropLocation          = "location"
	PropAccessToken       = "access-token"
	PropCredentialsJSON   = "credentials-json"
	PropCredentialsFile   = "credentials-file"
	PropTimeout           = "timeout"
	PropRequestsPerMinute = "requests-per-minute"
)

// Options carries the process-wide settings every factory closes over
type Options struct {
	HTTP studiohttp.HTTPClientConfig

	// Limiters holds the limiters for descriptors that override
	// requests-per-minute, keyed by provider and descriptor id.
	Limiters *studiohttp.LimiterSet
}

// NewOptions returns prepared options for httpCfg
func NewOptions(httpCfg studiohttp.HTTPClientConfig) Options {
	return Options{HTTP: httpCfg}.Prepared()
}

// Prepared fills in the state that must outlive a single client: one base
// transport, one limiter for the global requests-per-minute and the
// per-descriptor limiter set. Fields already set are kept.
func (o Options) Prepared() Options {
	if o.HTTP.Transport == nil {
		o.HTTP.Transport = studiohttp.NewSharedTransport()
	}
	if o.HTTP.Limiter == nil && o.HTTP.RequestsPerMinute > 0 {
		o.HTTP.Limiter = studiohttp.NewRateLimiter(o.HTTP.RequestsPerMinute, o.HTTP.Burst)
	}
	if o.Limiters == nil {
		o.Limiters = studiohttp.NewLimiterSet()
	}
	return o
}

// ConfigHelper validates and extracts descriptor settings for one provider
type ConfigHelper struct {
	providerName string
	providerType types.ProviderType
}

// NewConfigHelper creates a helper; providerName is used in error messages
func NewConfigHelper(providerName string, providerType types.ProviderType) *ConfigHelper {
	return &ConfigHelper{providerName: providerName, providerType: providerType}
}

// ProviderName returns the display name used in error messages
func (h *ConfigHelper) ProviderName() string {
	return h.providerName
}

// CheckProvider rejects descriptors addressed to another provider
func (h *ConfigHelper) CheckProvider(model types.LLMModel) error {
	if model.Provider != h.providerType {
		return types.NewConfigError(types.ErrCodeInvalidConfig,
			fmt.Sprintf("invalid provider type for %s: %s", h.providerName, model.Provider)).
			WithProvider(h.providerType).WithField("provider").WithModel(types.ModelKindLLM, model.ID)
	}
	return nil
}

// RequireModel fails when the descriptor has no provider-side model name
func (h *ConfigHelper) RequireModel(model types.LLMModel) error {
	if strings.TrimSpace(model.Model) == "" {
		return types.NewConfigError(types.ErrCodeInvalidConfig,
			fmt.Sprintf("%s model name must be provided", h.providerName)).
			WithProvider(h.providerType).WithField("model").WithModel(types.ModelKindLLM, model.ID)
	}
	return nil
}

// RequireProperty returns the trimmed value stored under key, or a
// configuration error naming label when it is absent or blank.
func (h *ConfigHelper) RequireProperty(model types.LLMModel, key, label string) (string, error) {
	value := strings.TrimSpace(model.Properties.Get(key))
	if value == "" {
		return "", types.NewMissingPropertyError(h.providerType, key, h.providerName+" "+label).
			WithModel(types.ModelKindLLM, model.ID)
	}
	return value, nil
}

// RequireAPIKey is RequireProperty for the "api-key" property
func (h *ConfigHelper) RequireAPIKey(model types.LLMModel) (string, error) {
	return h.RequireProperty(model, PropAPIKey, "API key")
}

// Property returns the trimmed value under key or def when blank
func (h *ConfigHelper) Property(model types.LLMModel, key, def string) string {
	if v := strings.TrimSpace(model.Properties.Get(key)); v != "" {
		return v
	}
	return def
}

// BaseURL returns the "base-url" property or def, validated as an absolute
// http(s) URL without a trailing slash.
func (h *ConfigHelper) BaseURL(model types.LLMModel, def string) (string, error) {
	raw := h.Property(model, PropBaseURL, def)
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		cfgErr := types.NewConfigError(types.ErrCodeInvalidConfig,
			fmt.Sprintf("%s base URL %q is not an absolute http(s) URL", h.providerName, raw)).
			WithProvider(h.providerType).WithField(PropBaseURL).WithModel(types.ModelKindLLM, model.ID)
		if err != nil {
			cfgErr = cfgErr.WithErr(err)
		}
		return "", cfgErr
	}
	return strings.TrimRight(raw, "/"), nil
}

// HTTPClient builds a fresh *http.Client from the shared options, applying
// the descriptor's "timeout" and "requests-per-minute" overrides.
func (h *ConfigHelper) HTTPClient(opts Options, model types.LLMModel) (*http.Client, error) {
	builder, err := h.HTTPClientBuilder(opts, model)
	if err != nil {
		return nil, err
	}
	return builder.Build(), nil
}

// HTTPClientBuilder is HTTPClient for callers that need to add layers
func (h *ConfigHelper) HTTPClientBuilder(opts Options, model types.LLMModel) (*studiohttp.HTTPClientBuilder, error) {
	builder := studiohttp.NewHTTPClientBuilderFrom(opts.HTTP)

	if raw := h.Property(model, PropTimeout, ""); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil || timeout <= 0 {
			return nil, h.invalidProperty(model, PropTimeout, raw, err)
		}
		builder.WithTimeout(timeout)
	}

	if raw := h.Property(model, PropRequestsPerMinute, ""); raw != "" {
		rpm, err := strconv.Atoi(raw)
		if err != nil || rpm <= 0 {
			return nil, h.invalidProperty(model, PropRequestsPerMinute, raw, err)
		}
		if opts.Limiters != nil {
			builder.WithLimiter(opts.Limiters.Get(string(h.providerType)+"/"+model.ID, rpm, opts.HTTP.Burst))
		} else {
			builder.WithRateLimit(rpm, opts.HTTP.Burst)
		}
	}

	return builder, nil
}

func (h *ConfigHelper) invalidProperty(model types.LLMModel, key, raw string, err error) error {
	cfgErr := types.NewConfigError(types.ErrCodeInvalidConfig,
		fmt.Sprintf("%s property %s has invalid value %q", h.providerName, key, raw)).
		WithProvider(h.providerType).WithField(key).WithModel(types.ModelKindLLM, model.ID)
	if err != nil {
		cfgErr = cfgErr.WithErr(err)
	}
	return cfgErr
}

// WrapClientError reports a failure from the client library while building a
// client as an invalid configuration.
func (h *ConfigHelper) WrapClientError(model types.LLMModel, err error) error {
	return types.NewConfigError(types.ErrCodeInvalidConfig,
		fmt.Sprintf("failed to create %s client", h.providerName)).
		WithProvider(h.providerType).WithModel(types.ModelKindLLM, model.ID).WithErr(err)
}
