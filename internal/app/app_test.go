package app

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/samzhu/studio/internal/testutil"
	"github.com/samzhu/studio/pkg/config"
	"github.com/samzhu/studio/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.Config{Studio: testutil.StudioProperties()}

	a, err := New(context.Background(), cfg, testLogger(&buf))
	require.NoError(t, err)

	assert.Len(t, a.Registry().LLMModels(), 7)
	assert.ElementsMatch(t, types.AllProviderTypes(), a.Factory().GetSupportedProviders())
	assert.Same(t, cfg, a.Config())
	assert.Contains(t, buf.String(), "model registry loaded")
	assert.Contains(t, buf.String(), "default_llm=g1")
}

func TestNew_NilConfig(t *testing.T) {
	_, err := New(context.Background(), nil, nil)
	require.Error(t, err)
}

func TestNew_InvalidRegistry(t *testing.T) {
	props := testutil.StudioProperties()
	props.DefaultModelSetting.LLMModelID = "missing"

	_, err := New(context.Background(), &config.Config{Studio: props}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrUnknownDefault)
}

func TestNew_InvalidCredentials(t *testing.T) {
	props := testutil.StudioProperties()
	props.LLMModels[0].Properties = types.Properties{}

	_, err := New(context.Background(), &config.Config{Studio: props}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "model=llm/g1")
	assert.Contains(t, err.Error(), "field=api-key")
}

func TestNew_InvalidEmbeddingBaseURL(t *testing.T) {
	props := testutil.StudioProperties()
	props.EmbeddingModels[0].BaseURL = "api.openai.com/v1"

	_, err := New(context.Background(), &config.Config{Studio: props}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "model=embedding/e1")
	assert.Contains(t, err.Error(), "field=baseUrl")
}

func TestNew_WarnsOnUnresolvedVariables(t *testing.T) {
	cfg, err := config.Parse([]byte(`
studio:
  defaultModelSetting:
    llmModelId: ol1
  llmModels:
    - id: ol1
      name: Local
      description: local llama
      model: llama3
      provider: ollama
      properties:
        keep-alive: ${STUDIO_APP_TEST_UNSET_VAR}
`))
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = New(context.Background(), cfg, testLogger(&buf))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "STUDIO_APP_TEST_UNSET_VAR")
	assert.Contains(t, buf.String(), "level=WARN")
}

func TestChatClient(t *testing.T) {
	server := testutil.NewOpenAIServer(t, "pong")
	props := testutil.StudioProperties()
	props.LLMModels[2].Properties["base-url"] = server.URL

	var buf bytes.Buffer
	cfg := &config.Config{Studio: props, HTTP: config.HTTPConfig{UserAgent: "studio-test/1.0"}}
	a, err := New(context.Background(), cfg, testLogger(&buf))
	require.NoError(t, err)

	def, err := a.ChatClient("")
	require.NoError(t, err)
	assert.Equal(t, types.ProviderTypeGemini, def.Provider())

	client, err := a.ChatClient("oa1")
	require.NoError(t, err)
	got, err := client.Call(context.Background(), "ping")
	require.NoError(t, err)
	assert.Equal(t, "pong", got)
	assert.Equal(t, "studio-test/1.0", server.LastRequest(t).Header.Get("User-Agent"))

	_, err = a.ChatClient("nope")
	assert.ErrorIs(t, err, types.ErrModelNotFound)
}

func TestChatClient_RateLimitSpansClients(t *testing.T) {
	server := testutil.NewOpenAIServer(t, "pong")
	props := testutil.StudioProperties()
	props.LLMModels[2].Properties["base-url"] = server.URL

	cfg := &config.Config{Studio: props, HTTP: config.HTTPConfig{RequestsPerMinute: 1, Burst: 1}}
	a, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)

	first, err := a.ChatClient("oa1")
	require.NoError(t, err)
	_, err = first.Call(context.Background(), "ping")
	require.NoError(t, err)

	// a fresh client must wait on the same budget
	second, err := a.ChatClient("oa1")
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err = second.Call(ctx, "ping")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit wait")
	assert.Len(t, server.Requests(), 1)
}

func TestChatClient_DescriptorRateLimit(t *testing.T) {
	server := testutil.NewOpenAIServer(t, "pong")
	props := testutil.StudioProperties()
	props.LLMModels[2].Properties["base-url"] = server.URL
	props.LLMModels[2].Properties["requests-per-minute"] = "1"

	a, err := New(context.Background(), &config.Config{Studio: props}, nil)
	require.NoError(t, err)

	client, err := a.ChatClient("oa1")
	require.NoError(t, err)
	_, err = client.Call(context.Background(), "ping")
	require.NoError(t, err)

	client, err = a.ChatClient("oa1")
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err = client.Call(ctx, "ping")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit wait")
	assert.Len(t, server.Requests(), 1)
}

func TestChatClient_LogsRequests(t *testing.T) {
	server := testutil.NewOpenAIServer(t, "pong")
	props := testutil.StudioProperties()
	props.LLMModels[2].Properties["base-url"] = server.URL

	var buf bytes.Buffer
	cfg := &config.Config{Studio: props, HTTP: config.HTTPConfig{LogRequests: true}}
	a, err := New(context.Background(), cfg, testLogger(&buf))
	require.NoError(t, err)

	client, err := a.ChatClient("oa1")
	require.NoError(t, err)
	_, err = client.Call(context.Background(), "ping")
	require.NoError(t, err)

	logs := buf.String()
	assert.Contains(t, logs, "=== Http Request ===")
	assert.Contains(t, logs, "=== Http Response ===")
	assert.NotContains(t, logs, "sk-test")
}

func TestEmbedder(t *testing.T) {
	server := testutil.NewOpenAIServer(t, "")
	props := testutil.StudioProperties()
	props.EmbeddingModels[0].BaseURL = server.URL

	a, err := New(context.Background(), &config.Config{Studio: props}, nil)
	require.NoError(t, err)

	embedder, err := a.Embedder("")
	require.NoError(t, err)
	vector, err := embedder.EmbedQuery(context.Background(), "hello")
	require.NoError(t, err)
	assert.Len(t, vector, 3)

	_, err = a.Embedder("missing")
	assert.ErrorIs(t, err, types.ErrModelNotFound)
}

func TestChatClient_Concurrent(t *testing.T) {
	a, err := New(context.Background(), &config.Config{Studio: testutil.StudioProperties()}, nil)
	require.NoError(t, err)

	ids := []string{"g1", "v1", "oa1", "az1", "an1", "mi1", "ol1"}
	errs := make(chan error, len(ids)*10)
	for i := 0; i < 10; i++ {
		for _, id := range ids {
			go func(id string) {
				c, err := a.ChatClient(id)
				if err == nil && c.ModelName() == "" {
					err = fmt.Errorf("%s: empty model name", id)
				}
				errs <- err
			}(id)
		}
	}
	for i := 0; i < len(ids)*10; i++ {
		assert.NoError(t, <-errs)
	}
}
