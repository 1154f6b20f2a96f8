package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"habitmind/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	if err := ctx.loadTracker(); err != nil {
		return err
	}

	program := tea.NewProgram(tui.New(ctx.Tracker), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
