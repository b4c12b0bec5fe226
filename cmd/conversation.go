package cmd

import (
	"github.com/spf13/cobra"
)

var conversationCmd = &cobra.Command{
	Use:     "conversation",
	Aliases: []string{"convo"},
	Short:   "Run the scripted two-turn memory test",
	Long: `Run a fixed two-turn conversation against the server: tell the
assistant a name, then ask for it back with the full prior turns
included. The reply is printed, not asserted — this checks that the
server accepts and forwards conversation history, not that the model
answers correctly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()
		r := newRunner()

		modelID, err := resolveModel(cmd.Context(), client)
		if err != nil {
			reportCmdFailure(err)
			return nil
		}

		if err := r.ChatConversation(cmd.Context(), modelID); err != nil {
			r.ReportFailure(err)
		}
		return nil
	},
}
