package types

import "fmt"

// ModelKind groups descriptors by the capability they expose
type ModelKind string

const (
	ModelKindLLM       ModelKind = "llm"
	ModelKindEmbedding ModelKind = "embedding"
	ModelKindAudio     ModelKind = "audio"
	ModelKindImage     ModelKind = "image"
)

// AllModelKinds returns the four descriptor kinds in configuration order
func AllModelKinds() []ModelKind {
	return []ModelKind{ModelKindLLM, ModelKindEmbedding, ModelKindAudio, ModelKindImage}
}

// ParseModelKind converts a user supplied kind name
func ParseModelKind(s string) (ModelKind, error) {
	switch ModelKind(s) {
	case ModelKindLLM, ModelKindEmbedding, ModelKindAudio, ModelKindImage:
		return ModelKind(s), nil
	}
	return "", fmt.Errorf("unknown model kind %q (expected llm, embedding, audio or image)", s)
}

// Properties holds provider-specific key/value overrides such as "api-key".
type Properties map[string]string

// Get returns the value stored under key; a nil map behaves as empty.
func (p Properties) Get(key string) string {
	if p == nil {
		return ""
	}
	return p[key]
}

// Clone returns a non-nil copy of p
func (p Properties) Clone() Properties {
	out := make(Properties, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Descriptor is implemented by every model descriptor shape
type Descriptor interface {
	GetID() string
	GetName() string
	GetDescription() string
	Kind() ModelKind
}

// LLMModel describes a chat model served by one of the supported providers.
// Endpoint and credentials live in Properties and are interpreted by the
// provider's factory.
type LLMModel struct {
	ID          string       `yaml:"id" json:"id"`
	Name        string       `yaml:"name" json:"name"`
	Description string       `yaml:"description" json:"description"`
	Model       string       `yaml:"model" json:"model"`
	Provider    ProviderType `yaml:"provider" json:"provider"`
	Properties  Properties   `yaml:"properties" json:"properties"`
}

// EmbeddingModel describes an OpenAI-compatible embedding endpoint
type EmbeddingModel struct {
	ID          string     `yaml:"id" json:"id"`
	Name        string     `yaml:"name" json:"name"`
	Description string     `yaml:"description" json:"description"`
	BaseURL     string     `yaml:"baseUrl" json:"baseUrl"`
	Model       string     `yaml:"model" json:"model"`
	APIKey      string     `yaml:"apikey" json:"apikey"`
	Properties  Properties `yaml:"properties" json:"properties"`
}

// AudioModel describes an audio (speech) endpoint
type AudioModel struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	BaseURL     string `yaml:"baseUrl" json:"baseUrl"`
	APIKey      string `yaml:"apikey" json:"apikey"`
}

// ImageModel describes an image generation endpoint
type ImageModel struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	BaseURL     string `yaml:"baseUrl" json:"baseUrl"`
	APIKey      string `yaml:"apikey" json:"apikey"`
}

func (m LLMModel) GetID() string          { return m.ID }
func (m LLMModel) GetName() string        { return m.Name }
func (m LLMModel) GetDescription() string { return m.Description }
func (m LLMModel) Kind() ModelKind        { return ModelKindLLM }

func (m EmbeddingModel) GetID() string          { return m.ID }
func (m EmbeddingModel) GetName() string        { return m.Name }
func (m EmbeddingModel) GetDescription() string { return m.Description }
func (m EmbeddingModel) Kind() ModelKind        { return ModelKindEmbedding }

func (m AudioModel) GetID() string          { return m.ID }
func (m AudioModel) GetName() string        { return m.Name }
func (m AudioModel) GetDescription() string { return m.Description }
func (m AudioModel) Kind() ModelKind        { return ModelKindAudio }

func (m ImageModel) GetID() string          { return m.ID }
func (m ImageModel) GetName() string        { return m.Name }
func (m ImageModel) GetDescription() string { return m.Description }
func (m ImageModel) Kind() ModelKind        { return ModelKindImage }

// DefaultModelSetting names the descriptor used for each kind when a caller
// does not pick one explicitly.
type DefaultModelSetting struct {
	LLMModelID       string `yaml:"llmModelId" json:"llmModelId"`
	EmbeddingModelID string `yaml:"embeddingModelId" json:"embeddingModelId"`
	AudioModelID     string `yaml:"audioModelId" json:"audioModelId"`
	ImageModelID     string `yaml:"imageModelId" json:"imageModelId"`
}

// IDFor returns the default id configured for kind
func (d DefaultModelSetting) IDFor(kind ModelKind) string {
	switch kind {
	case ModelKindLLM:
		return d.LLMModelID
	case ModelKindEmbedding:
		return d.EmbeddingModelID
	case ModelKindAudio:
		return d.AudioModelID
	case ModelKindImage:
		return d.ImageModelID
	}
	return ""
}

// StudioProperties is the "studio" configuration section
type StudioProperties struct {
	DefaultModelSetting DefaultModelSetting `yaml:"defaultModelSetting" json:"defaultModelSetting"`
	LLMModels           []LLMModel          `yaml:"llmModels" json:"llmModels"`
	EmbeddingModels     []EmbeddingModel    `yaml:"embeddingModels" json:"embeddingModels"`
	AudioModels         []AudioModel        `yaml:"audioModels" json:"audioModels"`
	ImageModels         []ImageModel        `yaml:"imageModels" json:"imageModels"`
}
