package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jugucan/gymsched/internal/cli"
	"github.com/jugucan/gymsched/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	p := tea.NewProgram(tui.NewModel(ctx.Store, ctx.Scheduler, ctx.Now), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui exited with error: %w", err)
	}
	return nil
}
