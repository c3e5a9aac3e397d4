// Package registry holds the configured model descriptors.
// A ModelRegistry is validated once at construction and is read-only
// afterwards, so it can be shared across goroutines without locking.
package registry

import (
	"fmt"

	"github.com/samzhu/studio/pkg/types"
)

// ModelRegistry is the immutable catalog of LLM, embedding, audio and image
// descriptors plus the default selection for each kind.
type ModelRegistry struct {
	llmModels       []types.LLMModel
	embeddingModels []types.EmbeddingModel
	audioModels     []types.AudioModel
	imageModels     []types.ImageModel
	defaults        types.DefaultModelSetting
}

// New validates props and builds a registry from a private copy of it.
// All problems are reported together; the returned error matches the
// relevant types sentinels via errors.Is.
func New(props types.StudioProperties) (*ModelRegistry, error) {
	if err := Validate(props); err != nil {
		return nil, err
	}

	r := &ModelRegistry{
		llmModels:       make([]types.LLMModel, len(props.LLMModels)),
		embeddingModels: make([]types.EmbeddingModel, len(props.EmbeddingModels)),
		audioModels:     append([]types.AudioModel(nil), props.AudioModels...),
		imageModels:     append([]types.ImageModel(nil), props.ImageModels...),
		defaults:        props.DefaultModelSetting,
	}
	for i, m := range props.LLMModels {
		m.Properties = m.Properties.Clone()
		r.llmModels[i] = m
	}
	for i, m := range props.EmbeddingModels {
		m.Properties = m.Properties.Clone()
		r.embeddingModels[i] = m
	}
	return r, nil
}

// FindLLMModelByID returns the first LLM descriptor with the given id
func (r *ModelRegistry) FindLLMModelByID(id string) (types.LLMModel, bool) {
	for _, m := range r.llmModels {
		if m.ID == id {
			return copyLLM(m), true
		}
	}
	return types.LLMModel{}, false
}

// FindEmbeddingModelByID returns the first embedding descriptor with the given id
func (r *ModelRegistry) FindEmbeddingModelByID(id string) (types.EmbeddingModel, bool) {
	for _, m := range r.embeddingModels {
		if m.ID == id {
			return copyEmbedding(m), true
		}
	}
	return types.EmbeddingModel{}, false
}

// FindAudioModelByID returns the first audio descriptor with the given id
func (r *ModelRegistry) FindAudioModelByID(id string) (types.AudioModel, bool) {
	for _, m := range r.audioModels {
		if m.ID == id {
			return m, true
		}
	}
	return types.AudioModel{}, false
}

// FindImageModelByID returns the first image descriptor with the given id
func (r *ModelRegistry) FindImageModelByID(id string) (types.ImageModel, bool) {
	for _, m := range r.imageModels {
		if m.ID == id {
			return m, true
		}
	}
	return types.ImageModel{}, false
}

// Find looks up id within kind. Unknown kinds are reported as not found.
func (r *ModelRegistry) Find(kind types.ModelKind, id string) (types.Descriptor, bool) {
	switch kind {
	case types.ModelKindLLM:
		if m, ok := r.FindLLMModelByID(id); ok {
			return m, true
		}
	case types.ModelKindEmbedding:
		if m, ok := r.FindEmbeddingModelByID(id); ok {
			return m, true
		}
	case types.ModelKindAudio:
		if m, ok := r.FindAudioModelByID(id); ok {
			return m, true
		}
	case types.ModelKindImage:
		if m, ok := r.FindImageModelByID(id); ok {
			return m, true
		}
	}
	return nil, false
}

// Defaults returns the configured default ids
func (r *ModelRegistry) Defaults() types.DefaultModelSetting {
	return r.defaults
}

// DefaultLLMModel returns the default LLM descriptor
func (r *ModelRegistry) DefaultLLMModel() (types.LLMModel, bool) {
	return r.FindLLMModelByID(r.defaults.LLMModelID)
}

// DefaultEmbeddingModel returns the default embedding descriptor
func (r *ModelRegistry) DefaultEmbeddingModel() (types.EmbeddingModel, bool) {
	return r.FindEmbeddingModelByID(r.defaults.EmbeddingModelID)
}

// DefaultAudioModel returns the default audio descriptor
func (r *ModelRegistry) DefaultAudioModel() (types.AudioModel, bool) {
	return r.FindAudioModelByID(r.defaults.AudioModelID)
}

// DefaultImageModel returns the default image descriptor
func (r *ModelRegistry) DefaultImageModel() (types.ImageModel, bool) {
	return r.FindImageModelByID(r.defaults.ImageModelID)
}

// ResolveLLMModel returns the descriptor for id, or the default when id is
// empty. An unknown id yields an error wrapping types.ErrModelNotFound.
func (r *ModelRegistry) ResolveLLMModel(id string) (types.LLMModel, error) {
	if id == "" {
		id = r.defaults.LLMModelID
	}
	if m, ok := r.FindLLMModelByID(id); ok {
		return m, nil
	}
	return types.LLMModel{}, fmt.Errorf("llm model %q: %w", id, types.ErrModelNotFound)
}

// ResolveEmbeddingModel is ResolveLLMModel for embedding descriptors
func (r *ModelRegistry) ResolveEmbeddingModel(id string) (types.EmbeddingModel, error) {
	if id == "" {
		id = r.defaults.EmbeddingModelID
	}
	if m, ok := r.FindEmbeddingModelByID(id); ok {
		return m, nil
	}
	return types.EmbeddingModel{}, fmt.Errorf("embedding model %q: %w", id, types.ErrModelNotFound)
}

// LLMModels returns the LLM descriptors in configured order
func (r *ModelRegistry) LLMModels() []types.LLMModel {
	out := make([]types.LLMModel, len(r.llmModels))
	for i, m := range r.llmModels {
		out[i] = copyLLM(m)
	}
	return out
}

// EmbeddingModels returns the embedding descriptors in configured order
func (r *ModelRegistry) EmbeddingModels() []types.EmbeddingModel {
	out := make([]types.EmbeddingModel, len(r.embeddingModels))
	for i, m := range r.embeddingModels {
		out[i] = copyEmbedding(m)
	}
	return out
}

// AudioModels returns the audio descriptors in configured order
func (r *ModelRegistry) AudioModels() []types.AudioModel {
	return append([]types.AudioModel(nil), r.audioModels...)
}

// ImageModels returns the image descriptors in configured order
func (r *ModelRegistry) ImageModels() []types.ImageModel {
	return append([]types.ImageModel(nil), r.imageModels...)
}

// Descriptors returns every descriptor of kind in configured order
func (r *ModelRegistry) Descriptors(kind types.ModelKind) []types.Descriptor {
	var out []types.Descriptor
	switch kind {
	case types.ModelKindLLM:
		for _, m := range r.LLMModels() {
			out = append(out, m)
		}
	case types.ModelKindEmbedding:
		for _, m := range r.EmbeddingModels() {
			out = append(out, m)
		}
	case types.ModelKindAudio:
		for _, m := range r.audioModels {
			out = append(out, m)
		}
	case types.ModelKindImage:
		for _, m := range r.imageModels {
			out = append(out, m)
		}
	}
	return out
}

// property maps are reference types; callers get their own copy so the
// registry stays immutable
func copyLLM(m types.LLMModel) types.LLMModel {
	m.Properties = m.Properties.Clone()
	return m
}

func copyEmbedding(m types.EmbeddingModel) types.EmbeddingModel {
	m.Properties = m.Properties.Clone()
	return m
}
