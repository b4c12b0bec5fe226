package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/arin/chatprobe/internal/api"
	"github.com/arin/chatprobe/internal/config"
	"github.com/arin/chatprobe/internal/runner"
	"github.com/arin/chatprobe/internal/ui"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var chatModel string

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Send a single-turn chat message",
	Long: `Send one message to the server and print the reply.

The model is taken from --model, then the config file, then picked
from what the server advertises by preference order. Without a message
argument the default smoke-test prompt is used.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()

		modelID, err := resolveModel(cmd.Context(), client)
		if err != nil {
			reportCmdFailure(err)
			return nil
		}

		message := runner.DefaultChatMessage
		if len(args) > 0 {
			message = strings.Join(args, " ")
		}

		cyan := color.New(color.FgCyan, color.Bold)
		dim := color.New(color.FgHiBlack)

		sp := ui.NewSpinner(fmt.Sprintf("Asking %s...", modelID))
		sp.Start()
		res, err := client.Chat(cmd.Context(), modelID, []api.Message{
			{Role: api.RoleUser, Content: message},
		})
		if err != nil {
			sp.Fail("no response")
			reportCmdFailure(err)
			return nil
		}
		sp.Stop()

		fmt.Fprintf(os.Stdout, "Status: %d\n", res.Status)
		if res.Reply == nil {
			color.New(color.FgRed).Fprintf(os.Stdout, "Error: %s\n", chatErrorBody(res))
			return nil
		}
		cyan.Fprint(os.Stdout, modelID+" → ")
		fmt.Fprintln(os.Stdout, res.Reply.Content)
		dim.Fprintf(os.Stdout, "Usage: %s\n", formatCmdUsage(res.Reply))
		return nil
	},
}

func init() {
	chatCmd.Flags().StringVarP(&chatModel, "model", "m", "", "Model id to chat with (default: auto-select)")
	conversationCmd.Flags().StringVarP(&chatModel, "model", "m", "", "Model id to chat with (default: auto-select)")
}

// resolveModel picks the model to talk to: flag, then config, then the
// server's advertised list filtered through the preference order.
func resolveModel(ctx context.Context, client *api.Client) (string, error) {
	if chatModel != "" {
		return chatModel, nil
	}
	cfg, _ := config.Load()
	if cfg.Model != "" {
		return cfg.Model, nil
	}

	list, err := client.ListModels(ctx)
	if err != nil {
		return "", err
	}
	m, ok := api.SelectPreferredModel(list.Models)
	if !ok {
		return "", errors.New("no models available — make sure the server has a provider configured")
	}
	return m.ID, nil
}

// reportCmdFailure prints the same remediation the runner would, but
// for subcommands that talk to the client directly.
func reportCmdFailure(err error) {
	red := color.New(color.FgRed)
	var ce *api.ConnectError
	if errors.As(err, &ce) {
		red.Fprintln(os.Stdout, "ERROR: Could not connect to server.")
		fmt.Fprintf(os.Stdout, "Make sure it is running at %s.\n", ce.URL)
		return
	}
	red.Fprintf(os.Stdout, "ERROR: %v\n", err)
}

func chatErrorBody(res *api.ChatResult) string {
	if res.Raw == nil {
		return "N/A (unreadable response body)"
	}
	return string(res.Raw)
}

func formatCmdUsage(reply *api.ChatReply) string {
	if reply.Usage == nil {
		return "N/A"
	}
	parts := make([]string, 0, len(reply.Usage))
	for k, v := range reply.Usage {
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	return strings.Join(parts, " ")
}
