package controller

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/mouse-blink/tangle/internal/model"
)

// TUI implements UI using Bubble Tea: an interactive browser over every
// specifier change a run produced.
type TUI struct {
	output io.Writer
}

// NewTUI creates a new TUI writing to output.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// DisplayResults opens the interactive change browser. With nothing
// scrambled it prints a one-liner instead of starting a program.
func (t *TUI) DisplayResults(results []m.ScrambleResult) error {
	items := make([]list.Item, 0, 16)

	for i := range results {
		target := results[i].Target
		for _, change := range results[i].Changes() {
			items = append(items, changeItem{target: target, change: change})
		}
	}

	if len(items) == 0 {
		_, _ = fmt.Fprintln(t.output, "nothing was scrambled")

		return nil
	}

	delegate := changeDelegate{}

	changeList := list.New(items, delegate, defaultListWidth, defaultListHeight)
	changeList.Title = fmt.Sprintf("%d scrambled dependencies", len(items))
	changeList.SetShowStatusBar(false)
	changeList.Styles.Title = lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("6")).
		Bold(true).
		Padding(0, 1)

	program := tea.NewProgram(resultsModel{list: changeList}, tea.WithOutput(t.output))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("display results: %w", err)
	}

	return nil
}

// DisplayRestore confirms a completed restore.
func (t *TUI) DisplayRestore(backup, target m.Path) {
	_, _ = fmt.Fprintf(t.output, "Restored %s from %s\n", target, backup)
}

const (
	defaultListWidth  = 80
	defaultListHeight = 20
)

type changeItem struct {
	target m.Path
	change m.Change
}

func (i changeItem) FilterValue() string {
	return i.change.Package
}

type changeDelegate struct{}

func (d changeDelegate) Height() int  { return 1 }
func (d changeDelegate) Spacing() int { return 0 }

func (d changeDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d changeDelegate) Render(w io.Writer, lm list.Model, index int, item list.Item) {
	change, ok := item.(changeItem)
	if !ok {
		return
	}

	categoryStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Width(22)
	packageStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	arrowStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	if index == lm.Index() {
		selected := lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("6")).
			Bold(true)
		categoryStyle = selected.Width(22)
		packageStyle = selected
		arrowStyle = selected
	}

	line := fmt.Sprintf("%s %s %s",
		categoryStyle.Render(string(change.change.Category)),
		packageStyle.Render(change.change.Package),
		arrowStyle.Render(fmt.Sprintf("%s → %s", change.change.Before, change.change.After)),
	)

	_, _ = fmt.Fprint(w, line)
}

type resultsModel struct {
	list list.Model
}

func (mo resultsModel) Init() tea.Cmd {
	return nil
}

func (mo resultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return mo, tea.Quit
		}
	case tea.WindowSizeMsg:
		mo.list.SetSize(msg.Width, msg.Height-1)
	}

	var cmd tea.Cmd
	mo.list, cmd = mo.list.Update(msg)

	return mo, cmd
}

func (mo resultsModel) View() string {
	return mo.list.View()
}
