package tui

import (
	"context"
	"log/slog"

	"github.com/Veraticus/trendscope/internal/controller"
	"github.com/Veraticus/trendscope/internal/model"
	"github.com/Veraticus/trendscope/internal/tui/components"
	"github.com/Veraticus/trendscope/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Workflow is the part of the controller the TUI drives.
type Workflow interface {
	controller.Dispatcher
	Snapshot() controller.Snapshot
	SetSurface(s controller.Surface)
	DismissNotification(id string) bool
}

// Model holds the main TUI state.
type Model struct {
	ctx           context.Context
	theme         themes.Theme
	workflow      Workflow
	surface       *channelSurface
	config        Config
	keymap        KeyMap
	help          help.Model
	spinner       spinner.Model
	viewport      viewport.Model
	form          components.FormModel
	preview       components.PreviewModel
	results       components.ResultsModel
	notifications components.NotificationsModel
	snapshot      controller.Snapshot
	width         int
	height        int
	quitting      bool
}

// newModel creates a new model bound to wf through surface.
func newModel(ctx context.Context, wf Workflow, surface *channelSurface, cfg Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(cfg.Theme.Primary)

	h := help.New()
	h.ShowAll = false

	m := Model{
		ctx:           ctx,
		theme:         cfg.Theme,
		workflow:      wf,
		surface:       surface,
		config:        cfg,
		keymap:        DefaultKeyMap(),
		help:          h,
		spinner:       s,
		viewport:      viewport.New(cfg.Width, cfg.Height),
		form:          components.NewFormModel(cfg.Theme),
		preview:       components.NewPreviewModel(cfg.Theme),
		results:       components.NewResultsModel(cfg.Theme),
		notifications: components.NewNotificationsModel(cfg.Theme),
		width:         cfg.Width,
		height:        cfg.Height,
	}
	m.applySnapshot(wf.Snapshot())
	m.handleResize()

	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		m.surface.listen(),
		m.spinner.Tick,
		textinput.Blink,
	}

	if m.config.CheckHealth {
		cmds = append(cmds, dispatch(m.ctx, m.workflow, controller.HealthCheckRequested{}))
	}
	if m.config.InitialPath != "" {
		cmds = append(cmds, dispatch(m.ctx, m.workflow, controller.PathSelected{Path: m.config.InitialPath}))
	}

	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		return m, nil

	case renderMsg:
		m.applySnapshot(msg.snapshot)
		m.handleResize()
		return m, m.surface.listen()

	case notifyMsg:
		m.notifications.Push(msg.notification)
		m.handleResize()
		return m, tea.Batch(
			m.surface.listen(),
			dismissAfter(msg.notification, m.config.Now()),
		)

	case scrollToResultsMsg:
		m.scrollToResults()
		return m, m.surface.listen()

	case surfaceClosedMsg:
		return m, nil

	case dismissMsg:
		m.notifications.Dismiss(msg.id)
		m.workflow.DismissNotification(msg.id)
		m.handleResize()
		return m, nil

	case dispatchDoneMsg:
		if msg.err != nil {
			slog.Debug("Operation finished with error", "event", msg.event, "error", msg.err)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleKey routes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.ForceQuit), key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.handleResize()
		return m, nil

	case key.Matches(msg, m.keymap.Submit):
		return m, m.submit()

	case key.Matches(msg, m.keymap.Select):
		if m.form.Focused() == components.FieldPath {
			return m, m.selectPath()
		}
		return m, m.submit()

	case key.Matches(msg, m.keymap.Clear):
		if m.snapshot.Busy {
			return m, nil
		}
		m.form.SetValue(components.FieldPath, "")
		return m, dispatch(m.ctx, m.workflow, controller.FileCleared{})

	case key.Matches(msg, m.keymap.NextField):
		return m, m.form.FocusNext()

	case key.Matches(msg, m.keymap.PrevField):
		return m, m.form.FocusPrev()

	case key.Matches(msg, m.keymap.ScrollUp), key.Matches(msg, m.keymap.ScrollDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

// submit sends the form unless a prediction is already in flight.
func (m Model) submit() tea.Cmd {
	if !m.snapshot.SubmitEnabled {
		return nil
	}
	return dispatch(m.ctx, m.workflow, controller.FormSubmitted{Form: m.form.Values()})
}

func (m Model) selectPath() tea.Cmd {
	path := m.form.Path()
	if path == "" || m.snapshot.Busy {
		return nil
	}
	return dispatch(m.ctx, m.workflow, controller.PathSelected{Path: path})
}

// applySnapshot projects controller state onto the components.
func (m *Model) applySnapshot(snap controller.Snapshot) {
	m.snapshot = snap
	m.form.SetDisabled(snap.Busy)
	m.preview.Set(snap.Image, snap.Preview)
	m.results.Set(snap.Results)
	if snap.Image != nil && snap.Image.Path != "" && m.form.Path() == "" {
		m.form.SetValue(components.FieldPath, snap.Image.Path)
	}
	m.viewport.SetContent(m.body())
}

// handleResize sizes the components and gives the rest of the screen to the viewport.
func (m *Model) handleResize() {
	inner := max(m.width-2, 20)
	m.form.SetWidth(inner)
	m.preview.SetWidth(inner)
	m.results.SetWidth(inner)
	m.notifications.SetWidth(inner)
	m.help.Width = inner

	chrome := lipgloss.Height(m.renderHeader()) + lipgloss.Height(m.renderForm()) + lipgloss.Height(m.renderFooter())
	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-chrome, 3)
	m.viewport.SetContent(m.body())
}

// scrollToResults brings the top of the results panel into view.
func (m *Model) scrollToResults() {
	if !m.results.Visible() {
		return
	}
	m.viewport.SetYOffset(lipgloss.Height(m.preview.View()) + 1)
}

// State returns the controller state the model last rendered.
func (m Model) State() model.UIState {
	return m.snapshot.State
}
