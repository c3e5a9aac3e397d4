// Package cli implements the studio command line.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/samzhu/studio/internal/app"
	"github.com/samzhu/studio/pkg/config"
	"github.com/spf13/cobra"
)

// ConfigEnv overrides the default config file path
const ConfigEnv = "STUDIO_CONFIG"

// DefaultConfigPath is used when neither --config nor STUDIO_CONFIG is set
const DefaultConfigPath = "studio.yaml"

var (
	appVersion = "dev"
	appCommit  = "none"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

// SetVersionInfo sets the version and commit shown by --version
func SetVersionInfo(version, commit string) {
	appVersion = version
	appCommit = commit
}

// NewRootCommand builds the studio command tree
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "studio",
		Short:         "Inspect and exercise the configured AI models",
		Long:          "studio loads a model registry from YAML and builds clients for Gemini, Vertex AI, OpenAI, Azure OpenAI, Anthropic, Mistral and Ollama.",
		Version:       appVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate(fmt.Sprintf("studio %s (commit: %s)\n", appVersion, appCommit))

	defaultPath := DefaultConfigPath
	if env := os.Getenv(ConfigEnv); env != "" {
		defaultPath = env
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", defaultPath, "config file path (env "+ConfigEnv+")")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override logging.level: debug, info, warn or error")

	root.AddCommand(newValidateCommand(opts))
	root.AddCommand(newModelsCommand(opts))
	root.AddCommand(newProvidersCommand())
	root.AddCommand(newChatCommand(opts))

	return root
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		os.Exit(1)
	}
}

// loadApp reads the config file and bootstraps the application, logging to
// the command's stderr.
func loadApp(ctx context.Context, cmd *cobra.Command, opts *rootOptions) (*app.App, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}

	logger, err := config.NewLogger(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return nil, fmt.Errorf("configuring logger: %w", err)
	}

	return app.New(ctx, cfg, logger)
}
