package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/tangle/internal/domain"
	m "github.com/mouse-blink/tangle/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View the report of a previous scramble run",
		Long:  "View the report of a previous scramble run from a report file.",
		Args:  cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			return workflow.View(domain.ViewArgs{Report: m.Path(reportOutputFlag)})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
