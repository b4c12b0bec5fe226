package cmd

import (
	"fmt"

	"github.com/arin/chatprobe/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage chatprobe configuration",
}

var setURLCmd = &cobra.Command{
	Use:   "set-url <base-url>",
	Short: "Set the server base URL (default: http://localhost:3434)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SetBaseURL(args[0]); err != nil {
			return fmt.Errorf("failed to save base URL: %w", err)
		}
		fmt.Printf("Base URL set to %s.\n", args[0])
		return nil
	},
}

var setModelCmd = &cobra.Command{
	Use:   "set-model <model-id>",
	Short: "Pin the model to test (default: auto-select by preference)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SetModel(args[0]); err != nil {
			return fmt.Errorf("failed to save model: %w", err)
		}
		fmt.Printf("Model set to %s.\n", args[0])
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		model := cfg.Model
		if model == "" {
			model = "(auto-select)"
		}
		fmt.Printf("Base URL:   %s\n", cfg.BaseURL)
		fmt.Printf("Model:      %s\n", model)
		fmt.Printf("Config Dir: %s\n", config.Dir())
		return nil
	},
}

func init() {
	configCmd.AddCommand(setURLCmd)
	configCmd.AddCommand(setModelCmd)
	configCmd.AddCommand(showCmd)
}
