// Package openai builds chat clients for the OpenAI API and any endpoint
// that speaks the same protocol.
package openai

import (
	"github.com/samzhu/studio/pkg/providers/common"
	"github.com/samzhu/studio/pkg/types"
	"github.com/tmc/langchaingo/llms/openai"
)

const (
	// BaseURL is the default OpenAI API root
	BaseURL = "https://api.openai.com/v1"

	CompletionsPath = "/chat/completions"
	EmbeddingsPath  = "/embeddings"

	// DefaultEmbeddingModel is used when the "embedding-model" property is unset
	DefaultEmbeddingModel = "text-embedding-3-small"
)

// Factory creates OpenAI chat clients
type Factory struct {
	opts   common.Options
	helper *common.ConfigHelper
}

// NewFactory creates an OpenAI factory
func NewFactory(opts common.Options) *Factory {
	return &Factory{
		opts:   opts,
		helper: common.NewConfigHelper("OpenAI", types.ProviderTypeOpenAI),
	}
}

// Provider returns types.ProviderTypeOpenAI
func (f *Factory) Provider() types.ProviderType {
	return types.ProviderTypeOpenAI
}

// CreateClient requires "api-key"; "base-url", "organization" and
// "embedding-model" are optional.
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

	opts := []openai.Option{
		openai.WithToken(apiKey),
		openai.WithModel(model.Model),
		openai.WithEmbeddingModel(f.helper.Property(model, common.PropEmbeddingModel, DefaultEmbeddingModel)),
		openai.WithBaseURL(baseURL),
		openai.WithHTTPClient(httpClient),
	}
	if org := f.helper.Property(model, common.PropOrganization, ""); org != "" {
		opts = append(opts, openai.WithOrganization(org))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, f.helper.WrapClientError(model, err)
	}

	return common.NewLLMClient(llm, types.Binding{
		Provider:        types.ProviderTypeOpenAI,
		BaseURL:         baseURL,
		CompletionsPath: CompletionsPath,
		EmbeddingsPath:  EmbeddingsPath,
		Model:           model.Model,
		Credential:      apiKey,
	}), nil
}
