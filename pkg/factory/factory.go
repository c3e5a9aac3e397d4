package factory

import (
	"fmt"
	"sort"

	"github.com/samzhu/studio/pkg/providers/common"
	"github.com/samzhu/studio/pkg/types"
)

// DefaultClientFactory is the dispatch table from provider tag to factory
type DefaultClientFactory struct {
	factories map[types.ProviderType]types.ClientFactory
	opts      common.Options
}

// NewClientFactory builds a dispatch table from factories. Registering two
// factories for the same provider is an error; registration order does not
// matter.
func NewClientFactory(factories ...types.ClientFactory) (*DefaultClientFactory, error) {
	table := make(map[types.ProviderType]types.ClientFactory, len(factories))
	for _, f := range factories {
		if f == nil {
			return nil, types.NewConfigError(types.ErrCodeInvalidConfig, "client factory must not be nil")
		}
		provider := f.Provider()
		if _, exists := table[provider]; exists {
			return nil, types.NewConfigError(types.ErrCodeDuplicateProvider,
				fmt.Sprintf("a client factory for provider %q is already registered", provider)).
				WithProvider(provider)
		}
		table[provider] = f
	}
	return &DefaultClientFactory{factories: table}, nil
}

// CreateClient returns a client for model from the factory registered for
// model.Provider.
func (d *DefaultClientFactory) CreateClient(model types.LLMModel) (types.ChatClient, error) {
	f, ok := d.factories[model.Provider]
	if !ok {
		return nil, types.NewUnsupportedProviderError(model.Provider).WithModel(types.ModelKindLLM, model.ID)
	}
	return f.CreateClient(model)
}

// Supports reports whether a factory is registered for provider
func (d *DefaultClientFactory) Supports(provider types.ProviderType) bool {
	_, ok := d.factories[provider]
	return ok
}

// GetSupportedProviders returns the registered provider tags in sorted order
func (d *DefaultClientFactory) GetSupportedProviders() []types.ProviderType {
	providers := make([]types.ProviderType, 0, len(d.factories))
	for p := range d.factories {
		providers = append(providers, p)
	}
	sort.Slice(providers, func(i, j int) bool { return providers[i] < providers[j] })
	return providers
}
