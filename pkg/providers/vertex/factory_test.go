package vertex

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/samzhu/studio/internal/testutil"
	"github.com/samzhu/studio/pkg/providers/common"
	"github.com/samzhu/studio/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vertexModel(props types.Properties) types.LLMModel {
	return testutil.LLMModel("v1", types.ProviderTypeVertexAI, "google/gemini-1.5-flash", props)
}

func TestEndpoint(t *testing.T) {
	assert.Equal(t,
		"https://europe-west4-aiplatform.googleapis.com/v1beta1/projects/p1/locations/europe-west4/endpoints/openapi",
		Endpoint("p1", "europe-west4"))
}

func TestCreateClient_AccessToken(t *testing.T) {
	client, err := NewFactory(common.Options{}).CreateClient(vertexModel(types.Properties{
		"project-id":   "studio-dev",
		"access-token": "ya29.token",
	}))
	require.NoError(t, err)

	binding := client.Binding()
	assert.Equal(t, Endpoint("studio-dev", "us-central1"), binding.BaseURL)
	assert.Equal(t, "/chat/completions", binding.CompletionsPath)
	assert.Equal(t, "ya29.token", binding.Credential)
	assert.Equal(t, "google/gemini-1.5-flash", client.ModelName())
}

func TestCreateClient_Errors(t *testing.T) {
	tests := []struct {
		name     string
		props    types.Properties
		field    string
		contains string
	}{
		{
			name:     "missing project",
			props:    types.Properties{"access-token": "t"},
			field:    "project-id",
			contains: "Vertex AI project ID must be provided",
		},
		{
			name:     "missing credentials",
			props:    types.Properties{"project-id": "p"},
			field:    "access-token",
			contains: "credentials-file must be provided",
		},
		{
			name:     "malformed credentials json",
			props:    types.Properties{"project-id": "p", "credentials-json": "{not json"},
			field:    "credentials-json",
			contains: "credentials are not valid",
		},
		{
			name:     "unreadable credentials file",
			props:    types.Properties{"project-id": "p", "credentials-file": filepath.Join(t.TempDir(), "missing.json")},
			field:    "credentials-file",
			contains: "could not be read",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewFactory(common.Options{}).CreateClient(vertexModel(tt.props))
			require.Error(t, err)
			assert.Nil(t, client)
			assert.ErrorIs(t, err, types.ErrInvalidConfig)
			assert.Contains(t, err.Error(), "field="+tt.field)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestClient_Call(t *testing.T) {
	server := testutil.NewOpenAIServer(t, "from vertex")

	client, err := NewFactory(common.Options{}).CreateClient(vertexModel(types.Properties{
		"project-id":   "studio-dev",
		"access-token": "ya29.token",
		"base-url":     server.URL,
	}))
	require.NoError(t, err)

	got, err := client.Call(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "from vertex", got)

	req := server.LastRequest(t)
	assert.Equal(t, "/chat/completions", req.Path)
	assert.Equal(t, "Bearer ya29.token", req.Header.Get("Authorization"))
	assert.Equal(t, "google/gemini-1.5-flash", req.Body["model"])
}
