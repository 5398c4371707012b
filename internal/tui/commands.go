package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/trendscope/internal/controller"
	"github.com/Veraticus/trendscope/internal/model"
	tea "github.com/charmbracelet/bubbletea"
)

// waitForSurface blocks until the controller pushes a message or the surface closes.
func waitForSurface(msgs <-chan tea.Msg, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-msgs:
			return msg
		case <-done:
			return surfaceClosedMsg{}
		}
	}
}

// dispatch runs a controller operation off the update loop.
func dispatch(ctx context.Context, wf Workflow, ev controller.Event) tea.Cmd {
	return func() tea.Msg {
		err := wf.Dispatch(ctx, ev)
		return dispatchDoneMsg{err: err, event: fmt.Sprintf("%T", ev)}
	}
}

// dismissAfter schedules removal of n when it expires.
func dismissAfter(n model.Notification, now time.Time) tea.Cmd {
	d := max(n.ExpiresAt.Sub(now), 0)
	id := n.ID
	return tea.Tick(d, func(time.Time) tea.Msg {
		return dismissMsg{id: id}
	})
}
