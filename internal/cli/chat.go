package cli

import (
	"fmt"
	"strings"

	"github.com/samzhu/studio/pkg/types"
	"github.com/spf13/cobra"
)

func newChatCommand(opts *rootOptions) *cobra.Command {
	var (
		modelID string
		system  string
	)

	cmd := &cobra.Command{
		Use:   "chat [flags] <prompt...>",
		Short: "Send one prompt to an LLM model and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd.Context(), cmd, opts)
			if err != nil {
				return err
			}
			client, err := a.ChatClient(modelID)
			if err != nil {
				return err
			}

			var messages []types.ChatMessage
			if system != "" {
				messages = append(messages, types.ChatMessage{Role: types.ChatRoleSystem, Content: system})
			}
			messages = append(messages, types.ChatMessage{Role: types.ChatRoleUser, Content: strings.Join(args, " ")})

			reply, err := client.Chat(cmd.Context(), messages)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), reply)
			return nil
		},
	}
	cmd.Flags().StringVarP(&modelID, "model", "m", "", "LLM model id (default: defaultModelSetting.llmModelId)")
	cmd.Flags().StringVarP(&system, "system", "s", "", "system prompt")
	return cmd
}
