package azure

import (
	"context"
	"testing"

	"github.com/samzhu/studio/internal/testutil"
	"github.com/samzhu/studio/pkg/providers/common"
	"github.com/samzhu/studio/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func azureModel(props types.Properties) types.LLMModel {
	return testutil.LLMModel("az1", types.ProviderTypeAzureOpenAI, "gpt-4o-deployment", props)
}

// TestCreateClient tests the deployment binding and default api version
func TestCreateClient(t *testing.T) {
	client, err := NewFactory(common.Options{}).CreateClient(azureModel(types.Properties{
		"api-key":  "azure-key",
		"base-url": "https://studio.openai.azure.com/",
	}))
	require.NoError(t, err)

	binding := client.Binding()
	assert.Equal(t, types.ProviderTypeAzureOpenAI, client.Provider())
	assert.Equal(t, "https://studio.openai.azure.com/openai/deployments/gpt-4o-deployment", binding.BaseURL)
	assert.Equal(t, "/chat/completions?api-version=2023-05-15", binding.CompletionsPath)
	assert.Equal(t, "gpt-4o-deployment", client.ModelName())
	assert.Equal(t, "azure-key", binding.Credential)
}

// TestCreateClient_Errors tests required properties
func TestCreateClient_Errors(t *testing.T) {
	tests := []struct {
		name     string
		props    types.Properties
		contains string
	}{
		{"missing api key", types.Properties{"base-url": "https://x.openai.azure.com"}, "Azure OpenAI API key must be provided"},
		{"missing endpoint", types.Properties{"api-key": "k"}, "Azure OpenAI endpoint (base-url) must be provided"},
		{"invalid endpoint", types.Properties{"api-key": "k", "base-url": "x.openai.azure.com"}, "not an absolute"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFactory(common.Options{}).CreateClient(azureModel(tt.props))
			require.Error(t, err)
			assert.ErrorIs(t, err, types.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

// TestClient_Call tests the Azure URL layout and api-key header
func TestClient_Call(t *testing.T) {
	server := testutil.NewOpenAIServer(t, "from azure")

	client, err := NewFactory(common.Options{}).CreateClient(azureModel(types.Properties{
		"api-key":     "azure-key",
		"base-url":    server.URL,
		"api-version": "2024-06-01",
	}))
	require.NoError(t, err)

	got, err := client.Call(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "from azure", got)

	req := server.LastRequest(t)
	assert.Equal(t, "/openai/deployments/gpt-4o-deployment/chat/completions", req.Path)
	assert.Equal(t, "api-version=2024-06-01", req.Query)
	assert.Equal(t, "azure-key", req.Header.Get("api-key"))
	assert.Empty(t, req.Header.Get("Authorization"))
}
