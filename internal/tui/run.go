package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive UI over wf and blocks until the user quits or ctx
// is canceled.
func Run(ctx context.Context, wf Workflow, opts ...Option) error {
	if wf == nil {
		return fmt.Errorf("workflow is required")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	surface := newChannelSurface()
	wf.SetSurface(surface)
	defer func() {
		wf.SetSurface(nil)
		surface.close()
	}()

	program := tea.NewProgram(
		newModel(ctx, wf, surface, cfg),
		tea.WithContext(ctx),
		tea.WithMouseCellMotion(),
	)

	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
