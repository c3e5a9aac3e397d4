package factory

import (
	"net/url"
	"strings"

	studiohttp "github.com/samzhu/studio/pkg/http"
	"github.com/samzhu/studio/pkg/types"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// CreateEmbedder returns an embedder for an OpenAI-compatible embeddings
// endpoint at model.BaseURL, authenticated with model.APIKey.
func (d *DefaultClientFactory) CreateEmbedder(model types.EmbeddingModel) (types.Embedder, error) {
	for _, f := range []struct{ name, value string }{
		{"baseUrl", model.BaseURL},
		{"apikey", model.APIKey},
		{"model", model.Model},
	} {
		if strings.TrimSpace(f.value) == "" {
			return nil, types.NewMissingFieldError(types.ModelKindEmbedding, model.ID, f.name)
		}
	}

	u, err := url.Parse(model.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		cfgErr := types.NewConfigError(types.ErrCodeInvalidConfig, "baseUrl is not an absolute http(s) URL").
			WithField("baseUrl").WithModel(types.ModelKindEmbedding, model.ID)
		if err != nil {
			cfgErr = cfgErr.WithErr(err)
		}
		return nil, cfgErr
	}

	llm, err := openai.New(
		openai.WithToken(model.APIKey),
		openai.WithBaseURL(strings.TrimRight(model.BaseURL, "/")),
		openai.WithModel(model.Model),
		openai.WithEmbeddingModel(model.Model),
		openai.WithHTTPClient(studiohttp.NewHTTPClient(d.opts.HTTP)),
	)
	if err != nil {
		return nil, types.NewConfigError(types.ErrCodeInvalidConfig, "failed to create embedding client").
			WithModel(types.ModelKindEmbedding, model.ID).WithErr(err)
	}

	embedder, err := embeddings.NewEmbedder(llm)
	if err != nil {
		return nil, types.NewConfigError(types.ErrCodeInvalidConfig, "failed to create embedder").
			WithModel(types.ModelKindEmbedding, model.ID).WithErr(err)
	}
	return embedder, nil
}
