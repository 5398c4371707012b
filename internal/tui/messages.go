package tui

import (
	"github.com/Veraticus/trendscope/internal/controller"
	"github.com/Veraticus/trendscope/internal/model"
)

// Messages pushed by the controller through the surface.
type renderMsg struct {
	snapshot controller.Snapshot
}

type notifyMsg struct {
	notification model.Notification
}

type scrollToResultsMsg struct{}

// surfaceClosedMsg is delivered once the surface stops forwarding.
type surfaceClosedMsg struct{}

// Notification lifetime.
type dismissMsg struct {
	id string
}

// Result of a controller operation run as a command.
type dispatchDoneMsg struct {
	err   error
	event string
}
