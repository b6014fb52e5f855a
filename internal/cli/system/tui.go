package system

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"dewy/internal/cli"
	"dewy/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	// Perform automatic backup on TUI startup (after successful load)
	ctx.PerformAutomaticBackup()

	tr, err := ctx.LoadTracker()
	if err != nil {
		return err
	}

	commit := func() error { return ctx.Commit(tr) }
	p := tea.NewProgram(tui.NewModel(tr, commit), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
	return nil
}
