package types

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ProviderType represents the type of AI provider
type ProviderType string

const (
	ProviderTypeGemini      ProviderType = "google-gemini"
	ProviderTypeVertexAI    ProviderType = "google-vertex-ai"
	ProviderTypeOpenAI      ProviderType = "openai"
	ProviderTypeAzureOpenAI ProviderType = "azure-openai"
	ProviderTypeAnthropic   ProviderType = "anthropic"
	ProviderTypeMistral     ProviderType = "mistral"
	ProviderTypeOllama      ProviderType = "ollama"
)

var allProviderTypes = []ProviderType{
	ProviderTypeGemini,
	ProviderTypeVertexAI,
	ProviderTypeOpenAI,
	ProviderTypeAzureOpenAI,
	ProviderTypeAnthropic,
	ProviderTypeMistral,
	ProviderTypeOllama,
}

// AllProviderTypes returns every provider tag studio knows about, in
// declaration order.
func AllProviderTypes() []ProviderType {
	out := make([]ProviderType, len(allProviderTypes))
	copy(out, allProviderTypes)
	return out
}

// Valid reports whether p is one of the known provider tags
func (p ProviderType) Valid() bool {
	for _, known := range allProviderTypes {
		if p == known {
			return true
		}
	}
	return false
}

// String returns the provider tag
func (p ProviderType) String() string {
	return string(p)
}

// ParseProviderType converts a configuration value into a ProviderType.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseProviderType(s string) (ProviderType, error) {
	p := ProviderType(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", NewUnsupportedProviderError(ProviderType(s))
	}
	return p, nil
}

// UnmarshalYAML rejects unknown provider tags while the configuration is
// being decoded.
func (p *ProviderType) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("provider must be a string: %w", err)
	}
	parsed, err := ParseProviderType(raw)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*p = parsed
	return nil
}
