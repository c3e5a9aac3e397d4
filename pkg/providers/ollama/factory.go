// Package ollama builds chat clients for a local or remote Ollama server.
package ollama

import (
	"github.com/samzhu/studio/pkg/providers/common"
	"github.com/samzhu/studio/pkg/types"
	"github.com/tmc/langchaingo/llms/ollama"
)

const (
	// BaseURL is the default Ollama server address
	BaseURL = "http://localhost:11434"

	CompletionsPath = "/api/chat"
	EmbeddingsPath  = "/api/embed"

	// PropKeepAlive sets how long the server keeps the model loaded, e.g. "5m"
	PropKeepAlive = "keep-alive"
)

// Factory creates Ollama chat clients. Ollama needs no credential.
type Factory struct {
	opts   common.Options
	helper *common.ConfigHelper
}

// NewFactory creates an Ollama factory
func NewFactory(opts common.Options) *Factory {
	return &Factory{
		opts:   opts,
		helper: common.NewConfigHelper("Ollama", types.ProviderTypeOllama),
	}
}

// Provider returns types.ProviderTypeOllama
func (f *Factory) Provider() types.ProviderType {
	return types.ProviderTypeOllama
}

func (f *Factory) CreateClient(model types.LLMModel) (types.ChatClient, error) {
	if err := f.helper.CheckProvider(model); err != nil {
		return nil, err
	}
	if err := f.helper.RequireModel(model); err != nil {
		return nil, err
	}
	// validated here because ollama.WithServerURL exits the process on a bad URL
	baseURL, err := f.helper.BaseURL(model, BaseURL)
	if err != nil {
		return nil, err
	}
	httpClient, err := f.helper.HTTPClient(f.opts, model)
	if err != nil {
		return nil, err
	}

	opts := []ollama.Option{
		ollama.WithServerURL(baseURL),
		ollama.WithModel(model.Model),
		ollama.WithHTTPClient(httpClient),
	}
	if keepAlive := f.helper.Property(model, PropKeepAlive, ""); keepAlive != "" {
		opts = append(opts, ollama.WithKeepAlive(keepAlive))
	}

	llm, err := ollama.New(opts...)
	if err != nil {
		return nil, f.helper.WrapClientError(model, err)
	}

	return common.NewLLMClient(llm, types.Binding{
		Provider:        types.ProviderTypeOllama,
		BaseURL:         baseURL,
		CompletionsPath: CompletionsPath,
		EmbeddingsPath:  EmbeddingsPath,
		Model:           model.Model,
	}), nil
}
