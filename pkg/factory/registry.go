package factory

import (
	"github.com/samzhu/studio/pkg/providers/anthropic"
	"github.com/samzhu/studio/pkg/providers/azure"
	"github.com/samzhu/studio/pkg/providers/common"
	"github.com/samzhu/studio/pkg/providers/gemini"
	"github.com/samzhu/studio/pkg/providers/mistral"
	"github.com/samzhu/studio/pkg/providers/ollama"
	"github.com/samzhu/studio/pkg/providers/openai"
	"github.com/samzhu/studio/pkg/providers/vertex"
	"github.com/samzhu/studio/pkg/types"
)

// DefaultFactories returns one factory per supported provider, all sharing opts
func DefaultFactories(opts common.Options) []types.ClientFactory {
	return []types.ClientFactory{
		gemini.NewFactory(opts),
		vertex.NewFactory(opts),
		openai.NewFactory(opts),
		azure.NewFactory(opts),
		anthropic.NewFactory(opts),
		mistral.NewFactory(opts),
		ollama.NewFactory(opts),
	}
}

// NewDefaultClientFactory registers every built-in provider factory and
// verifies that each tag in types.AllProviderTypes has one. opts is
// prepared once here so every client built later shares its transport and
// rate limiters.
func NewDefaultClientFactory(opts common.Options) (*DefaultClientFactory, error) {
	opts = opts.Prepared()
	d, err := NewClientFactory(DefaultFactories(opts)...)
	if err != nil {
		return nil, err
	}
	if err := CheckComplete(d); err != nil {
		return nil, err
	}
	d.opts = opts
	return d, nil
}
