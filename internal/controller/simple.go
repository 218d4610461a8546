package controller

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/mouse-blink/tangle/internal/model"
)

// SimpleUI implements UI as plain text through the cobra command's output.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayResults prints one change table per scrambled manifest, followed
// by the issue log.
func (s *SimpleUI) DisplayResults(results []m.ScrambleResult) error {
	for i := range results {
		s.displayResult(&results[i])
	}

	return nil
}

// DisplayRestore confirms a completed restore.
func (s *SimpleUI) DisplayRestore(backup, target m.Path) {
	s.printf("Restored %s from %s\n", target, backup)
}

func (s *SimpleUI) displayResult(result *m.ScrambleResult) {
	s.printf("%s: %d dependencies scrambled\n", result.Target, result.TotalScrambled())

	if result.BackupPath != "" {
		s.printf("backup: %s\n", result.BackupPath)
	}

	changes := result.Changes()
	if len(changes) == 0 {
		s.printf("nothing to do\n")

		return
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Category", "Package", "Before", "After"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
	})

	for _, change := range changes {
		table.Append([]string{
			string(change.Category),
			change.Package,
			change.Before,
			change.After,
		})
	}

	table.SetFooter([]string{
		"Total",
		fmt.Sprintf("%d", len(changes)),
		"",
		"",
	})

	table.Render()
	s.printf("\n%s\n", tableBuffer.String())

	for _, issue := range result.Issues {
		s.printf("  - %s\n", issue)
	}
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
