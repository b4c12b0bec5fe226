package cmd

import (
	"os"

	"github.com/arin/chatprobe/internal/api"
	"github.com/arin/chatprobe/internal/config"
	"github.com/arin/chatprobe/internal/runner"
	"github.com/spf13/cobra"
)

var flagURL string

var rootCmd = &cobra.Command{
	Use:   "chatprobe",
	Short: "Smoke-test a local chat-completion server",
	Long: `chatprobe drives a fixed sequence of checks against a chat-completion
HTTP server: health, model listing, a single-turn chat and a scripted
multi-turn conversation that verifies the server keeps context when
given full prior turns.

Failures are reported as text and the exit code is always 0, so the
tool is safe to run from setup scripts without aborting them.

Examples:
  chatprobe
  chatprobe --url http://localhost:3434
  chatprobe chat "What is the capital of France?"
  chatprobe conversation`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		newRunner().Run(cmd.Context())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagURL, "url", "", "Base URL of the server (default from config, or http://localhost:3434)")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(conversationCmd)
	rootCmd.AddCommand(configCmd)
}

// SetVersion wires the build-time version into the root command.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute is the entry point called from main.
func Execute() error {
	return rootCmd.Execute()
}

// resolveBaseURL applies the precedence flag > env > config file >
// default.
func resolveBaseURL() string {
	if flagURL != "" {
		return flagURL
	}
	cfg, _ := config.Load()
	return cfg.BaseURL
}

func newClient() *api.Client {
	return api.NewClient(resolveBaseURL())
}

func newRunner() *runner.Runner {
	return runner.New(newClient(), os.Stdout)
}
