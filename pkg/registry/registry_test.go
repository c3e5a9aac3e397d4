package registry

import (
	"fmt"
	"sync"
	"testing"

	"github.com/samzhu/studio/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProperties() types.StudioProperties {
	return types.StudioProperties{
		DefaultModelSetting: types.DefaultModelSetting{
			LLMModelID:       "g1",
			EmbeddingModelID: "e1",
			AudioModelID:     "a1",
			ImageModelID:     "i1",
		},
		LLMModels: []types.LLMModel{
			{
				ID: "g1", Name: "Gemini", Description: "flash", Model: "gemini-1.5-flash",
				Provider: types.ProviderTypeGemini, Properties: types.Properties{"api-key": "K"},
			},
			{
				ID: "o1", Name: "Ollama", Description: "local", Model: "llama3",
				Provider: types.ProviderTypeOllama,
			},
		},
		EmbeddingModels: []types.EmbeddingModel{
			{ID: "e1", Name: "Embed", Description: "small", BaseURL: "https://api.openai.com/v1", Model: "text-embedding-3-small", APIKey: "ek"},
		},
		AudioModels: []types.AudioModel{
			{ID: "a1", Name: "Whisper", Description: "speech", BaseURL: "https://api.openai.com/v1", APIKey: "ak"},
		},
		ImageModels: []types.ImageModel{
			{ID: "i1", Name: "Dalle", Description: "images", BaseURL: "https://api.openai.com/v1", APIKey: "ik"},
			{ID: "i2", Name: "Flux", Description: "images", BaseURL: "https://example.com", APIKey: "fk"},
		},
	}
}

func newTestRegistry(t *testing.T) *ModelRegistry {
	t.Helper()
	r, err := New(testProperties())
	require.NoError(t, err)
	return r
}

// TestFindByID tests lookups per kind for present and absent ids
func TestFindByID(t *testing.T) {
	r := newTestRegistry(t)

	llm, ok := r.FindLLMModelByID("g1")
	require.True(t, ok)
	assert.Equal(t, "gemini-1.5-flash", llm.Model)
	assert.Equal(t, types.ProviderTypeGemini, llm.Provider)

	_, ok = r.FindLLMModelByID("missing")
	assert.False(t, ok)

	emb, ok := r.FindEmbeddingModelByID("e1")
	require.True(t, ok)
	assert.Equal(t, "ek", emb.APIKey)
	_, ok = r.FindEmbeddingModelByID("g1")
	assert.False(t, ok, "ids are scoped to their kind")

	audio, ok := r.FindAudioModelByID("a1")
	require.True(t, ok)
	assert.Equal(t, "Whisper", audio.Name)
	_, ok = r.FindAudioModelByID("")
	assert.False(t, ok)

	img, ok := r.FindImageModelByID("i2")
	require.True(t, ok)
	assert.Equal(t, "Flux", img.Name)
	_, ok = r.FindImageModelByID("i3")
	assert.False(t, ok)
}

// TestFind tests the generic lookup against every configured id
func TestFind(t *testing.T) {
	props := testProperties()
	r := newTestRegistry(t)

	configured := map[types.ModelKind][]string{
		types.ModelKindLLM:       {"g1", "o1"},
		types.ModelKindEmbedding: {"e1"},
		types.ModelKindAudio:     {"a1"},
		types.ModelKindImage:     {"i1", "i2"},
	}

	for kind, ids := range configured {
		for _, id := range ids {
			d, ok := r.Find(kind, id)
			require.True(t, ok, "%s/%s", kind, id)
			assert.Equal(t, id, d.GetID())
			assert.Equal(t, kind, d.Kind())
		}
		_, ok := r.Find(kind, "not-"+ids[0])
		assert.False(t, ok)
	}

	_, ok := r.Find("video", "g1")
	assert.False(t, ok)

	assert.Len(t, r.Descriptors(types.ModelKindLLM), len(props.LLMModels))
	assert.Len(t, r.Descriptors(types.ModelKindImage), len(props.ImageModels))
	assert.Empty(t, r.Descriptors("video"))
}

// TestDefaults tests the default accessors and resolvers
func TestDefaults(t *testing.T) {
	r := newTestRegistry(t)

	llm, ok := r.DefaultLLMModel()
	require.True(t, ok)
	assert.Equal(t, "g1", llm.ID)

	emb, ok := r.DefaultEmbeddingModel()
	require.True(t, ok)
	assert.Equal(t, "e1", emb.ID)

	audio, ok := r.DefaultAudioModel()
	require.True(t, ok)
	assert.Equal(t, "a1", audio.ID)

	img, ok := r.DefaultImageModel()
	require.True(t, ok)
	assert.Equal(t, "i1", img.ID)

	resolved, err := r.ResolveLLMModel("")
	require.NoError(t, err)
	assert.Equal(t, "g1", resolved.ID)

	resolved, err = r.ResolveLLMModel("o1")
	require.NoError(t, err)
	assert.Equal(t, "o1", resolved.ID)

	_, err = r.ResolveLLMModel("nope")
	assert.ErrorIs(t, err, types.ErrModelNotFound)

	_, err = r.ResolveEmbeddingModel("nope")
	assert.ErrorIs(t, err, types.ErrModelNotFound)
}

// TestNew_NormalizesProperties tests that absent properties become empty maps
func TestNew_NormalizesProperties(t *testing.T) {
	r := newTestRegistry(t)

	ollama, ok := r.FindLLMModelByID("o1")
	require.True(t, ok)
	assert.NotNil(t, ollama.Properties)
	assert.Empty(t, ollama.Properties)

	emb, ok := r.FindEmbeddingModelByID("e1")
	require.True(t, ok)
	assert.NotNil(t, emb.Properties)
}

// TestRegistry_Immutable tests that neither the input nor returned values alias registry state
func TestRegistry_Immutable(t *testing.T) {
	props := testProperties()
	r, err := New(props)
	require.NoError(t, err)

	props.LLMModels[0].Properties["api-key"] = "changed"
	props.LLMModels[0].Model = "changed"

	got, _ := r.FindLLMModelByID("g1")
	assert.Equal(t, "K", got.Properties["api-key"])
	assert.Equal(t, "gemini-1.5-flash", got.Model)

	got.Properties["api-key"] = "mutated"
	again, _ := r.FindLLMModelByID("g1")
	assert.Equal(t, "K", again.Properties["api-key"])

	list := r.LLMModels()
	list[0].ID = "x"
	_, ok := r.FindLLMModelByID("g1")
	assert.True(t, ok)
}

// TestNew_Validation tests fail-fast validation
func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(p *types.StudioProperties)
		code     types.ErrorCode
		sentinel error
		contains string
	}{
		{
			name: "duplicate llm id",
			mutate: func(p *types.StudioProperties) {
				dup := p.LLMModels[0]
				dup.Name = "copy"
				p.LLMModels = append(p.LLMModels, dup)
			},
			code:     types.ErrCodeDuplicateID,
			sentinel: types.ErrDuplicateID,
			contains: "model=llm/g1",
		},
		{
			name: "duplicate image id",
			mutate: func(p *types.StudioProperties) {
				p.ImageModels[1].ID = "i1"
			},
			code:     types.ErrCodeDuplicateID,
			sentinel: types.ErrDuplicateID,
			contains: "model=image/i1",
		},
		{
			name: "default llm not configured",
			mutate: func(p *types.StudioProperties) {
				p.DefaultModelSetting.LLMModelID = "missing"
			},
			code:     types.ErrCodeUnknownDefault,
			sentinel: types.ErrUnknownDefault,
			contains: `"missing"`,
		},
		{
			name: "default audio empty",
			mutate: func(p *types.StudioProperties) {
				p.DefaultModelSetting.AudioModelID = ""
			},
			code:     types.ErrCodeUnknownDefault,
			sentinel: types.ErrUnknownDefault,
			contains: "audioModelId",
		},
		{
			name: "missing model name",
			mutate: func(p *types.StudioProperties) {
				p.LLMModels[1].Model = ""
			},
			code:     types.ErrCodeInvalidConfig,
			sentinel: types.ErrInvalidConfig,
			contains: "field=model",
		},
		{
			name: "missing provider",
			mutate: func(p *types.StudioProperties) {
				p.LLMModels[1].Provider = ""
			},
			code:     types.ErrCodeInvalidConfig,
			sentinel: types.ErrInvalidConfig,
			contains: "field=provider",
		},
		{
			name: "unknown provider",
			mutate: func(p *types.StudioProperties) {
				p.LLMModels[1].Provider = "bedrock"
			},
			code:     types.ErrCodeUnsupportedProvider,
			sentinel: types.ErrUnsupportedProvider,
			contains: "bedrock",
		},
		{
			name: "embedding without api key",
			mutate: func(p *types.StudioProperties) {
				p.EmbeddingModels[0].APIKey = " "
			},
			code:     types.ErrCodeInvalidConfig,
			sentinel: types.ErrInvalidConfig,
			contains: "field=apikey",
		},
		{
			name: "image without base url",
			mutate: func(p *types.StudioProperties) {
				p.ImageModels[0].BaseURL = ""
			},
			code:     types.ErrCodeInvalidConfig,
			sentinel: types.ErrInvalidConfig,
			contains: "field=baseUrl",
		},
		{
			name: "embedding with relative base url",
			mutate: func(p *types.StudioProperties) {
				p.EmbeddingModels[0].BaseURL = "api.openai.com/v1"
			},
			code:     types.ErrCodeInvalidConfig,
			sentinel: types.ErrInvalidConfig,
			contains: "model=embedding/e1",
		},
		{
			name: "audio with non-http base url",
			mutate: func(p *types.StudioProperties) {
				p.AudioModels[0].BaseURL = "ftp://files.example.com"
			},
			code:     types.ErrCodeInvalidConfig,
			sentinel: types.ErrInvalidConfig,
			contains: "field=baseUrl",
		},
		{
			name: "image with unparsable base url",
			mutate: func(p *types.StudioProperties) {
				p.ImageModels[1].BaseURL = "https://exa mple.com/%zz"
			},
			code:     types.ErrCodeInvalidConfig,
			sentinel: types.ErrInvalidConfig,
			contains: "model=image/i2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			props := testProperties()
			tt.mutate(&props)

			r, err := New(props)
			require.Error(t, err)
			assert.Nil(t, r)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.True(t, types.IsConfigError(err, tt.code))
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

// TestNew_ReportsAllErrors tests that validation collects every problem
func TestNew_ReportsAllErrors(t *testing.T) {
	props := testProperties()
	props.LLMModels[0].Name = ""
	props.AudioModels[0].APIKey = ""
	props.DefaultModelSetting.ImageModelID = "i9"

	_, err := New(props)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrInvalidConfig)
	assert.ErrorIs(t, err, types.ErrUnknownDefault)
	assert.Contains(t, err.Error(), "field=name")
	assert.Contains(t, err.Error(), "field=apikey")
	assert.Contains(t, err.Error(), `"i9"`)
}

// TestNew_EmptyKinds tests that kinds without descriptors may omit defaults
func TestNew_EmptyKinds(t *testing.T) {
	r, err := New(types.StudioProperties{})
	require.NoError(t, err)

	_, ok := r.DefaultLLMModel()
	assert.False(t, ok)
	assert.Empty(t, r.LLMModels())

	_, err = r.ResolveLLMModel("")
	assert.ErrorIs(t, err, types.ErrModelNotFound)
}

// TestRegistry_ConcurrentReads tests that lookups are safe without locking
func TestRegistry_ConcurrentReads(t *testing.T) {
	r := newTestRegistry(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("i%d", i%2+1)
			m, ok := r.FindImageModelByID(id)
			assert.True(t, ok)
			assert.Equal(t, id, m.ID)
			_, ok = r.DefaultLLMModel()
			assert.True(t, ok)
		}(i)
	}
	wg.Wait()
}
