// Package anthropic builds chat clients for the Anthropic Messages API.
package anthropic

import (
	"github.com/samzhu/studio/pkg/providers/common"
	"github.com/samzhu/studio/pkg/types"
	"github.com/tmc/langchaingo/llms/anthropic"
)

const (
	// BaseURL is the default Anthropic API root
	BaseURL = "https://api.anthropic.com/v1"

	// CompletionsPath is the Messages API path under BaseURL
	CompletionsPath = "/messages"

	// PropBetaHeader optionally sets the anthropic-beta header
	PropBetaHeader = "beta"
)

// Factory creates Anthropic chat clients
type Factory struct {
	opts   common.Options
	helper *common.ConfigHelper
}

// NewFactory creates an Anthropic factory
func NewFactory(opts common.Options) *Factory {
	return &Factory{
		opts:   opts,
		helper: common.NewConfigHelper("Anthropic", types.ProviderTypeAnthropic),
	}
}

// Provider returns types.ProviderTypeAnthropic
func (f *Factory) Provider() types.ProviderType {
	return types.ProviderTypeAnthropic
}

// CreateClient requires "api-key"; "base-url" and "beta" are optional.
func (f *Factory) CreateClient(model types.LLMModel) (types.ChatClient, error) {
	if err := f.helper.CheckProvider(model); err != nil {
		return nil, err
	}
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
	httpClient, err := f.helper.HTTPClient(f.opts, model)
	if err != nil {
		return nil, err
	}

	opts := []anthropic.Option{
		anthropic.WithToken(apiKey),
		anthropic.WithModel(model.Model),
		anthropic.WithBaseURL(baseURL),
		anthropic.WithHTTPClient(httpClient),
	}
	if beta := f.helper.Property(model, PropBetaHeader, ""); beta != "" {
		opts = append(opts, anthropic.WithAnthropicBetaHeader(beta))
	}

	llm, err := anthropic.New(opts...)
	if err != nil {
		return nil, f.helper.WrapClientError(model, err)
	}

	return common.NewLLMClient(llm, types.Binding{
		Provider:        types.ProviderTypeAnthropic,
		BaseURL:         baseURL,
		CompletionsPath: CompletionsPath,
		Model:           model.Model,
		Credential:      apiKey,
	}), nil
}
