// Package azure builds chat clients for Azure OpenAI deployments.
package azure

import (
	"github.com/samzhu/studio/pkg/providers/common"
	"github.com/samzhu/studio/pkg/types"
	"github.com/tmc/langchaingo/llms/openai"
)

const (
	// DefaultAPIVersion is sent when the "api-version" property is unset
	DefaultAPIVersion = openai.DefaultAPIVersion

	CompletionsPath = "/chat/completions"
	EmbeddingsPath  = "/embeddings"

	deploymentsPrefix = "/openai/deployments/"
)

// Factory creates Azure OpenAI chat clients. The descriptor's model is the
// deployment name.
type Factory struct {
	opts   common.Options
	helper *common.ConfigHelper
}

// NewFactory creates an Azure OpenAI factory
func NewFactory(opts common.Options) *Factory {
	return &Factory{
		opts:   opts,
		helper: common.NewConfigHelper("Azure OpenAI", types.ProviderTypeAzureOpenAI),
	}
}

// Provider returns types.ProviderTypeAzureOpenAI
func (f *Factory) Provider() types.ProviderType {
	return types.ProviderTypeAzureOpenAI
}

// CreateClient requires "api-key" and "base-url" (the resource endpoint).
// "api-version" and "embedding-model" (an embeddings deployment) are optional.
func (f *Factory) CreateClient(model types.LLMModel) (types.ChatClient, error) {
	if err := f.helper.CheckProvider(model); err != nil {
		return nil, err
	}
	apiKey, err := f.helper.RequireAPIKey(model)
	if err != nil {
		return nil, err
	}
	if _, err := f.helper.RequireProperty(model, common.PropBaseURL, "endpoint (base-url)"); err != nil {
		return nil, err
	}
	if err := f.helper.RequireModel(model); err != nil {
		return nil, err
	}
	baseURL, err := f.helper.BaseURL(model, "")
	if err != nil {
		return nil, err
	}
	httpClient, err := f.helper.HTTPClient(f.opts, model)
	if err != nil {
		return nil, err
	}

	apiVersion := f.helper.Property(model, common.PropAPIVersion, DefaultAPIVersion)
	llm, err := openai.New(
		openai.WithAPIType(openai.APITypeAzure),
		openai.WithAPIVersion(apiVersion),
		openai.WithToken(apiKey),
		openai.WithModel(model.Model),
		openai.WithEmbeddingModel(f.helper.Property(model, common.PropEmbeddingModel, model.Model)),
		openai.WithBaseURL(baseURL),
		openai.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, f.helper.WrapClientError(model, err)
	}

	query := "?api-version=" + apiVersion
	return common.NewLLMClient(llm, types.Binding{
		Provider:        types.ProviderTypeAzureOpenAI,
		BaseURL:         baseURL + deploymentsPrefix + model.Model,
		CompletionsPath: CompletionsPath + query,
		EmbeddingsPath:  EmbeddingsPath + query,
		Model:           model.Model,
		Credential:      apiKey,
	}), nil
}
