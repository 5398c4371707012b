package tui

import (
	"sync"

	"github.com/Veraticus/trendscope/internal/controller"
	"github.com/Veraticus/trendscope/internal/model"
	tea "github.com/charmbracelet/bubbletea"
)

const surfaceBuffer = 64

// channelSurface turns controller callbacks into tea messages. Sends block
// only until the program stops listening.
type channelSurface struct {
	msgs chan tea.Msg
	done chan struct{}
	once sync.Once
}

// Ensure we implement the interface.
var _ controller.Surface = (*channelSurface)(nil)

func newChannelSurface() *channelSurface {
	return &channelSurface{
		msgs: make(chan tea.Msg, surfaceBuffer),
		done: make(chan struct{}),
	}
}

func (s *channelSurface) Render(snap controller.Snapshot) {
	s.send(renderMsg{snapshot: snap})
}

func (s *channelSurface) Notify(n model.Notification) {
	s.send(notifyMsg{notification: n})
}

func (s *channelSurface) ScrollToResults() {
	s.send(scrollToResultsMsg{})
}

func (s *channelSurface) send(msg tea.Msg) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.msgs <- msg:
	case <-s.done:
	}
}

func (s *channelSurface) close() {
	s.once.Do(func() { close(s.done) })
}

// listen returns a command that waits for the next surface message.
func (s *channelSurface) listen() tea.Cmd {
	return waitForSurface(s.msgs, s.done)
}
