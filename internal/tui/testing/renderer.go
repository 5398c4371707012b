// Package testing provides test utilities for TUI components.
package testing

import (
	tea "github.com/charmbracelet/bubbletea"
)

// TestRenderer captures the output of a Bubble Tea model without requiring a real terminal.
type TestRenderer struct {
	// Output contains the last rendered view
	Output string
}

// NewTestRenderer creates a new test renderer.
func NewTestRenderer() *TestRenderer {
	return &TestRenderer{}
}

// Update sends a message to the model and captures the rendered result.
func (r *TestRenderer) Update(model tea.Model, msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := model.Update(msg)
	r.Output = newModel.View()
	return newModel, cmd
}

// Apply sends msgs in order and returns the resulting model.
func (r *TestRenderer) Apply(model tea.Model, msgs ...tea.Msg) tea.Model {
	for _, msg := range msgs {
		model, _ = r.Update(model, msg)
	}
	return model
}

// Plain returns the last output without styling.
func (r *TestRenderer) Plain() string {
	return Plain(r.Output)
}
