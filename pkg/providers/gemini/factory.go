// Package gemini builds chat clients for Google Gemini through its
// OpenAI-compatible endpoint.
package gemini

import (
	"github.com/samzhu/studio/pkg/providers/common"
	"github.com/samzhu/studio/pkg/types"
	"github.com/tmc/langchaingo/llms/openai"
)

const (
	// BaseURL is the Gemini API root
	BaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// CompletionsPath is the OpenAI-compatible chat completions path under BaseURL
	CompletionsPath = "/openai/chat/completions"

	// EmbeddingsPath is the OpenAI-compatible embeddings path under BaseURL
	EmbeddingsPath = "/openai/embeddings"

	// DefaultEmbeddingModel is used when the "embedding-model" property is unset
	DefaultEmbeddingModel = "text-embedding-004"

	compatPrefix = "/openai"
)

// Factory creates Gemini chat clients
type Factory struct {
	opts   common.Options
	helper *common.ConfigHelper
}

// NewFactory creates a Gemini factory
func NewFactory(opts common.Options) *Factory {
	return &Factory{
		opts:   opts,
		helper: common.NewConfigHelper("Gemini", types.ProviderTypeGemini),
	}
}

// Provider returns types.ProviderTypeGemini
func (f *Factory) Provider() types.ProviderType {
	return types.ProviderTypeGemini
}

// CreateClient requires the "api-key" property. "base-url" may replace
// BaseURL, e.g. for a proxy.
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

	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithModel(model.Model),
		openai.WithEmbeddingModel(f.helper.Property(model, common.PropEmbeddingModel, DefaultEmbeddingModel)),
		openai.WithBaseURL(baseURL+compatPrefix),
		openai.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, f.helper.WrapClientError(model, err)
	}

	return common.NewLLMClient(llm, types.Binding{
		Provider:        types.ProviderTypeGemini,
		BaseURL:         baseURL,
		CompletionsPath: CompletionsPath,
		EmbeddingsPath:  EmbeddingsPath,
		Model:           model.Model,
		Credential:      apiKey,
	}), nil
}
