package cmd

import (
	"fmt"
	"os"

	"github.com/arin/chatprobe/internal/api"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the models the server advertises",
	RunE: func(cmd *cobra.Command, args []string) error {
		r := newRunner()
		list, err := r.ListModels(cmd.Context())
		if err != nil {
			r.ReportFailure(err)
			return nil
		}
		if m, ok := api.SelectPreferredModel(list.Models); ok {
			dim := color.New(color.FgHiBlack)
			dim.Fprintf(os.Stdout, "Default test target: %s\n", m.ID)
		} else if list.Decoded {
			fmt.Fprintln(os.Stdout, "No models available. Make sure the server has a provider configured.")
		}
		return nil
	},
}
