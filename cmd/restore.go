package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/tangle/internal/domain"
	m "github.com/mouse-blink/tangle/internal/model"
)

// restoreCmd represents the restore command.
var restoreCmd = newRestoreCmd()

func newRestoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore <backup> [target]",
		Short: "Restore a manifest from a backup",
		Long:  restoreLongDescription,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(_ *cobra.Command, args []string) error {
			restoreArgs := domain.RestoreArgs{Backup: m.Path(args[0])}
			if len(args) > 1 {
				restoreArgs.Target = m.Path(args[1])
			}

			return workflow.Restore(restoreArgs)
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(restoreCmd)
}
