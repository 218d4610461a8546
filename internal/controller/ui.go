// Package controller provides output adapters for displaying scramble
// results.
package controller

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	m "github.com/mouse-blink/tangle/internal/model"
)

// UI displays the outcome of scramble and restore runs. Implementations
// can use different output methods (plain text, interactive TUI).
type UI interface {
	DisplayResults(results []m.ScrambleResult) error
	DisplayRestore(backup, target m.Path)
}

// NewUI creates a UI for the command's output. An interactive terminal
// gets the Bubble Tea browser, anything else (pipes, files, CI) gets plain
// text.
func NewUI(cmd *cobra.Command, useTTY bool) UI {
	if useTTY {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether the writer is an interactive terminal.
func IsTTY(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	info, err := file.Stat()
	if err != nil {
		return false
	}

	return (info.Mode() & os.ModeCharDevice) != 0
}
