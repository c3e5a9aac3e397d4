// Package app wires configuration, the model registry and client dispatch
// into a ready-to-use application.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/samzhu/studio/pkg/config"
	"github.com/samzhu/studio/pkg/factory"
	studiohttp "github.com/samzhu/studio/pkg/http"
	"github.com/samzhu/studio/pkg/providers/common"
	"github.com/samzhu/studio/pkg/registry"
	"github.com/samzhu/studio/pkg/types"
)

// App holds the registry and dispatch table built from one configuration
type App struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *registry.ModelRegistry
	factory  *factory.DefaultClientFactory
}

// New validates cfg and builds the application. Every LLM and embedding
// descriptor is turned into a client once so that bad credentials or
// endpoints stop the process at startup.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	for _, name := range cfg.Unresolved() {
		logger.WarnContext(ctx, "environment variable referenced by config is not set", "name", name)
	}

	reg, err := registry.New(cfg.Studio)
	if err != nil {
		return nil, fmt.Errorf("invalid model configuration: %w", err)
	}

	dispatch, err := factory.NewDefaultClientFactory(Options(cfg, logger))
	if err != nil {
		return nil, fmt.Errorf("failed to build client factory: %w", err)
	}

	if err := errors.Join(
		dispatch.ValidateModels(reg.LLMModels()),
		dispatch.ValidateEmbeddings(reg.EmbeddingModels()),
	); err != nil {
		return nil, fmt.Errorf("invalid model configuration: %w", err)
	}

	defaults := reg.Defaults()
	logger.InfoContext(ctx, "model registry loaded",
		"llm_models", len(reg.LLMModels()),
		"embedding_models", len(reg.EmbeddingModels()),
		"audio_models", len(reg.AudioModels()),
		"image_models", len(reg.ImageModels()),
		"default_llm", defaults.LLMModelID,
		"default_embedding", defaults.EmbeddingModelID,
	)

	return &App{cfg: cfg, logger: logger, registry: reg, factory: dispatch}, nil
}

// Options converts the http section of cfg into factory options. The
// returned options own one base transport and the rate limiters, so every
// client built from them shares a connection pool and request budget.
func Options(cfg *config.Config, logger *slog.Logger) common.Options {
	return common.NewOptions(studiohttp.HTTPClientConfig{
		Timeout:           cfg.HTTP.Timeout,
		Headers:           cfg.HTTP.Headers,
		UserAgent:         cfg.HTTP.UserAgent,
		LogRequests:       cfg.HTTP.LogRequests,
		LogBodies:         cfg.HTTP.LogBodies,
		RequestsPerMinute: cfg.HTTP.RequestsPerMinute,
		Burst:             cfg.HTTP.Burst,
		Logger:            logger,
	})
}

// Config returns the configuration the app was built from
func (a *App) Config() *config.Config { return a.cfg }

// Registry returns the model registry
func (a *App) Registry() *registry.ModelRegistry { return a.registry }

// Factory returns the client dispatch table
func (a *App) Factory() *factory.DefaultClientFactory { return a.factory }

// Logger returns the application logger
func (a *App) Logger() *slog.Logger { return a.logger }

// ChatClient returns a new client for the LLM descriptor id, or for the
// default LLM when id is empty.
func (a *App) ChatClient(id string) (types.ChatClient, error) {
	model, err := a.registry.ResolveLLMModel(id)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("creating chat client", "model_id", model.ID, "provider", model.Provider, "model", model.Model)
	return a.factory.CreateClient(model)
}

// Embedder returns a new embedder for the embedding descriptor id, or for
// the default embedding model when id is empty.
func (a *App) Embedder(id string) (types.Embedder, error) {
	model, err := a.registry.ResolveEmbeddingModel(id)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("creating embedder", "model_id", model.ID, "model", model.Model)
	return a.factory.CreateEmbedder(model)
}
