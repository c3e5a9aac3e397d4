// Package mistral builds chat clients for La Plateforme (Mistral AI).
package mistral

import (
	"github.com/samzhu/studio/pkg/providers/common"
	"github.com/samzhu/studio/pkg/types"
	"github.com/tmc/langchaingo/llms/mistral"
)

const (
	// BaseURL is the default Mistral API root
	BaseURL = "https://api.mistral.ai"

	CompletionsPath = "/v1/chat/completions"
	EmbeddingsPath  = "/v1/embeddings"

	// the Mistral SDK retries on its own; studio leaves retry policy to it
	sdkMaxRetries = 5
)

// Factory creates Mistral chat clients.
//
// The Mistral SDK owns its HTTP client, so only the timeout from the shared
// HTTP settings (or the "timeout" property) reaches it; request logging and
// rate limiting do not apply to this provider, and a "requests-per-minute"
// property is rejected.
type Factory struct {
	opts   common.Options
	helper *common.ConfigHelper
}

// NewFactory creates a Mistral factory
func NewFactory(opts common.Options) *Factory {
	return &Factory{
		opts:   opts,
		helper: common.NewConfigHelper("Mistral", types.ProviderTypeMistral),
	}
}

// Provider returns types.ProviderTypeMistral
func (f *Factory) Provider() types.ProviderType {
	return types.ProviderTypeMistral
}

// CreateClient requires "api-key"; "base-url" and "timeout" are optional.
// "requests-per-minute" is not supported.
func (f *Factory) CreateClient(model types.LLMModel) (types.ChatClient, error) {
	if err := f.helper.CheckProvider(model); err != nil {
		return nil, err
	}
	// the SDK accepts an empty key and would fail on first use
	apiKey, err := f.helper.RequireAPIKey(model)
	if err != nil {
		return nil, err
	}
	if err := f.helper.RequireModel(model); err != nil {
		return nil, err
	}
	baseURL, err := f.helper.BaseURL(model, BaseURL)
	if err != nil {
		return nil, err
	}
	if raw := f.helper.Property(model, common.PropRequestsPerMinute, ""); raw != "" {
		return nil, types.NewConfigError(types.ErrCodeInvalidConfig,
			"Mistral does not support property "+common.PropRequestsPerMinute).
			WithProvider(types.ProviderTypeMistral).WithField(common.PropRequestsPerMinute).
			WithModel(types.ModelKindLLM, model.ID)
	}
	httpClient, err := f.helper.HTTPClient(f.opts, model)
	if err != nil {
		return nil, err
	}

	llm, err := mistral.New(
		mistral.WithAPIKey(apiKey),
		mistral.WithEndpoint(baseURL),
		mistral.WithModel(model.Model),
		mistral.WithTimeout(httpClient.Timeout),
		mistral.WithMaxRetries(sdkMaxRetries),
	)
	if err != nil {
		return nil, f.helper.WrapClientError(model, err)
	}

	return common.NewLLMClient(llm, types.Binding{
		Provider:        types.ProviderTypeMistral,
		BaseURL:         baseURL,
		CompletionsPath: CompletionsPath,
		EmbeddingsPath:  EmbeddingsPath,
		Model:           model.Model,
		Credential:      apiKey,
	}), nil
}
