package testutil

import (
	"github.com/samzhu/studio/pkg/types"
)

// LLMModel returns a descriptor for provider with the given properties
func LLMModel(id string, provider types.ProviderType, model string, props types.Properties) types.LLMModel {
	if props == nil {
		props = types.Properties{}
	}
	return types.LLMModel{
		ID:          id,
		Name:        id + " name",
		Description: id + " description",
		Model:       model,
		Provider:    provider,
		Properties:  props,
	}
}

// StudioProperties returns a valid configuration with one descriptor per
// provider and one per non-LLM kind. Defaults point at the Gemini model
// "g1" and the first descriptor of every other kind.
func StudioProperties() types.StudioProperties {
	return types.StudioProperties{
		DefaultModelSetting: types.DefaultModelSetting{
			LLMModelID:       "g1",
			EmbeddingModelID: "e1",
			AudioModelID:     "a1",
			ImageModelID:     "i1",
		},
		LLMModels: []types.LLMModel{
			LLMModel("g1", types.ProviderTypeGemini, "gemini-1.5-flash", types.Properties{"api-key": "K"}),
			LLMModel("v1", types.ProviderTypeVertexAI, "google/gemini-1.5-pro", types.Properties{
				"project-id": "studio-dev", "location": "us-central1", "access-token": "ya29.token",
			}),
			LLMModel("oa1", types.ProviderTypeOpenAI, "gpt-4o-mini", types.Properties{"api-key": "sk-test"}),
			LLMModel("az1", types.ProviderTypeAzureOpenAI, "gpt-4o-deployment", types.Properties{
				"api-key": "azure-key", "base-url": "https://studio.openai.azure.com",
			}),
			LLMModel("an1", types.ProviderTypeAnthropic, "claude-3-5-sonnet-latest", types.Properties{"api-key": "ant-key"}),
			LLMModel("mi1", types.ProviderTypeMistral, "mistral-small-latest", types.Properties{"api-key": "mis-key"}),
			LLMModel("ol1", types.ProviderTypeOllama, "llama3", nil),
		},
		EmbeddingModels: []types.EmbeddingModel{
			{
				ID: "e1", Name: "Embedding", Description: "openai embeddings",
				BaseURL: "https://api.openai.com/v1", Model: "text-embedding-3-small", APIKey: "sk-embed",
				Properties: types.Properties{},
			},
		},
		AudioModels: []types.AudioModel{
			{ID: "a1", Name: "Whisper", Description: "speech to text", BaseURL: "https://api.openai.com/v1", APIKey: "sk-audio"},
		},
		ImageModels: []types.ImageModel{
			{ID: "i1", Name: "Dall-E", Description: "image generation", BaseURL: "https://api.openai.com/v1", APIKey: "sk-image"},
		},
	}
}
