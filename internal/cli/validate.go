package cli

import (
	"fmt"

	"github.com/samzhu/studio/pkg/factory"
	"github.com/samzhu/studio/pkg/providers/common"
	"github.com/spf13/cobra"
)

func newValidateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load the config and build a client for every LLM model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(cmd.Context(), cmd, opts)
			if err != nil {
				return err
			}

			reg := a.Registry()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: OK\n", opts.configPath)
			fmt.Fprintf(out, "  llm models:       %d\n", len(reg.LLMModels()))
			fmt.Fprintf(out, "  embedding models: %d\n", len(reg.EmbeddingModels()))
			fmt.Fprintf(out, "  audio models:     %d\n", len(reg.AudioModels()))
			fmt.Fprintf(out, "  image models:     %d\n", len(reg.ImageModels()))
			if unresolved := a.Config().Unresolved(); len(unresolved) > 0 {
				fmt.Fprintf(out, "  unset variables:  %v\n", unresolved)
			}
			return nil
		},
	}
}

func newProvidersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List the supported provider tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := factory.NewDefaultClientFactory(common.Options{})
			if err != nil {
				return err
			}
			for _, p := range d.GetSupportedProviders() {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
}
