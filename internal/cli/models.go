package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	studiohttp "github.com/samzhu/studio/pkg/http"
	"github.com/samzhu/studio/pkg/providers/common"
	"github.com/samzhu/studio/pkg/types"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// properties whose values are masked by "models show"
var secretProperties = map[string]bool{
	common.PropAPIKey:          true,
	common.PropAccessToken:     true,
	common.PropCredentialsJSON: true,
}

func newModelsCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "Inspect the model registry",
	}
	cmd.AddCommand(newModelsListCommand(opts))
	cmd.AddCommand(newModelsShowCommand(opts))
	return cmd
}

func newModelsListCommand(opts *rootOptions) *cobra.Command {
	var kindFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List configured models; the default of each kind is marked with *",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kinds := types.AllModelKinds()
			if kindFlag != "" {
				kind, err := types.ParseModelKind(kindFlag)
				if err != nil {
					return err
				}
				kinds = []types.ModelKind{kind}
			}

			a, err := loadApp(cmd.Context(), cmd, opts)
			if err != nil {
				return err
			}
			reg := a.Registry()
			defaults := reg.Defaults()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "\tKIND\tID\tNAME\tTARGET\n")
			for _, kind := range kinds {
				for _, d := range reg.Descriptors(kind) {
					marker := ""
					if d.GetID() == defaults.IDFor(kind) {
						marker = "*"
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", marker, kind, d.GetID(), d.GetName(), target(d))
				}
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&kindFlag, "kind", "k", "", "only list one kind: llm, embedding, audio or image")
	return cmd
}

func newModelsShowCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <kind> <id>",
		Short: "Print one model descriptor as YAML with credentials masked",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := types.ParseModelKind(args[0])
			if err != nil {
				return err
			}

			a, err := loadApp(cmd.Context(), cmd, opts)
			if err != nil {
				return err
			}
			d, ok := a.Registry().Find(kind, args[1])
			if !ok {
				return fmt.Errorf("%s model %q: %w", kind, args[1], types.ErrModelNotFound)
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(maskDescriptor(d)); err != nil {
				return fmt.Errorf("encoding descriptor: %w", err)
			}
			return enc.Close()
		},
	}
}

// target summarizes where a descriptor sends requests
func target(d types.Descriptor) string {
	switch m := d.(type) {
	case types.LLMModel:
		return fmt.Sprintf("%s %s", m.Provider, m.Model)
	case types.EmbeddingModel:
		return fmt.Sprintf("%s %s", m.BaseURL, m.Model)
	case types.AudioModel:
		return m.BaseURL
	case types.ImageModel:
		return m.BaseURL
	}
	return ""
}

// maskDescriptor returns a copy of d with secrets replaced by MaskSecret
func maskDescriptor(d types.Descriptor) types.Descriptor {
	switch m := d.(type) {
	case types.LLMModel:
		m.Properties = maskProperties(m.Properties)
		return m
	case types.EmbeddingModel:
		m.APIKey = studiohttp.MaskSecret(m.APIKey)
		m.Properties = maskProperties(m.Properties)
		return m
	case types.AudioModel:
		m.APIKey = studiohttp.MaskSecret(m.APIKey)
		return m
	case types.ImageModel:
		m.APIKey = studiohttp.MaskSecret(m.APIKey)
		return m
	}
	return d
}

func maskProperties(props types.Properties) types.Properties {
	out := props.Clone()
	for k, v := range out {
		if secretProperties[strings.ToLower(k)] {
			out[k] = studiohttp.MaskSecret(v)
		}
	}
	return out
}
