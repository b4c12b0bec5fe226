package cmd

import (
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the server /health endpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		r := newRunner()
		if err := r.CheckHealth(cmd.Context()); err != nil {
			r.ReportFailure(err)
		}
		return nil
	},
}
