package factory

import (
	"errors"

	"github.com/samzhu/studio/pkg/types"
)

// CheckComplete returns an unsupported_provider error for every known
// provider tag without a registered factory.
func CheckComplete(d *DefaultClientFactory) error {
	var errs []error
	for _, provider := range types.AllProviderTypes() {
		if !d.Supports(provider) {
			errs = append(errs, types.NewConfigError(types.ErrCodeUnsupportedProvider,
				"no client factory registered for provider").WithProvider(provider))
		}
	}
	return errors.Join(errs...)
}

// ValidateModels builds a client for each descriptor and reports every
// failure. Nothing is sent over the network.
func (d *DefaultClientFactory) ValidateModels(models []types.LLMModel) error {
	var errs []error
	for _, m := range models {
		if _, err := d.CreateClient(m); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ValidateEmbeddings builds an embedder for each descriptor and reports
// every failure.
func (d *DefaultClientFactory) ValidateEmbeddings(models []types.EmbeddingModel) error {
	var errs []error
	for _, m := range models {
		if _, err := d.CreateEmbedder(m); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
