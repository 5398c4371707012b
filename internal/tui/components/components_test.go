package components

import (
	"testing"
	"time"

	"github.com/Veraticus/trendscope/internal/model"
	"github.com/Veraticus/trendscope/internal/presenter"
	tuitest "github.com/Veraticus/trendscope/internal/tui/testing"
	"github.com/Veraticus/trendscope/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func typeInto(m FormModel, text string) FormModel {
	for _, msg := range tuitest.Type(text) {
		m, _ = m.Update(msg)
	}
	return m
}

func TestFormModel_FocusCycle(t *testing.T) {
	m := NewFormModel(themes.Default)
	assert.Equal(t, FieldPath, m.Focused())

	m.FocusNext()
	assert.Equal(t, FieldYMin, m.Focused())

	m.FocusPrev()
	m.FocusPrev()
	assert.Equal(t, FieldHorizon, m.Focused(), "focus wraps backwards")

	m.FocusNext()
	assert.Equal(t, FieldPath, m.Focused(), "focus wraps forwards")

	assert.Nil(t, m.FocusField(Field(99)))
	assert.Equal(t, FieldPath, m.Focused())
}

func TestFormModel_Values(t *testing.T) {
	m := NewFormModel(themes.Default)
	m = typeInto(m, " charts/spy.png ")

	fields := []struct {
		field Field
		text  string
	}{
		{FieldYMin, "100"},
		{FieldYMax, "250.5"},
		{FieldNPoints, "120"},
		{FieldRiskProfile, "moderate"},
		{FieldHorizon, "1d"},
	}
	for _, f := range fields {
		m.FocusField(f.field)
		m = typeInto(m, f.text)
	}

	assert.Equal(t, "charts/spy.png", m.Path())
	assert.Equal(t, model.FormValues{
		YMin:        "100",
		YMax:        "250.5",
		NPoints:     "120",
		RiskProfile: "moderate",
		Horizon:     "1d",
	}, m.Values())
}

func TestFormModel_DisabledIgnoresInput(t *testing.T) {
	m := NewFormModel(themes.Default)
	m.SetDisabled(true)
	m = typeInto(m, "abc")
	assert.Empty(t, m.Path())

	m.SetDisabled(false)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Equal(t, "x", m.Path())
}

func TestFormModel_View(t *testing.T) {
	m := NewFormModel(themes.Default)
	m.SetWidth(80)
	view := tuitest.Plain(m.View())
	assert.True(t, tuitest.ContainsInOrder(view, "Chart image", "Y-axis Min", "Y-axis Max", "Points", "Risk profile", "Horizon"))
}

func TestPreviewModel_View(t *testing.T) {
	m := NewPreviewModel(themes.Default)
	m.SetWidth(80)
	assert.Contains(t, tuitest.Plain(m.View()), "No chart selected")

	m.Set(&model.SelectedImage{Name: "spy.jpg", Size: 10 * 1024 * 1024},
		&model.Preview{Format: "jpeg", Width: 1280, Height: 720})
	view := tuitest.Plain(m.View())
	assert.Contains(t, view, "spy.jpg")
	assert.Contains(t, view, "JPEG • 1280×720 px • 10 MiB")
}

func TestResultsModel_View(t *testing.T) {
	m := NewResultsModel(themes.CatppuccinMocha)
	m.SetWidth(120)
	assert.False(t, m.Visible())
	assert.Empty(t, m.View())

	view := presenter.Present(model.PredictionResponse{
		Trend:          model.TrendDown,
		ChatbotMessage: "Sellers are in **control**.",
		Probabilities:  model.Probabilities{Down: 0.8, Sideways: 0.15, Up: 0.05},
		Meta: model.PredictionMeta{
			FileName:       "qqq.png",
			SeriesLength:   250,
			UsedWindowSize: 32,
			RiskProfile:    "high",
			Horizon:        "long",
		},
	})
	m.Set(&view)
	assert.True(t, m.Visible())

	out := tuitest.Plain(m.View())
	assert.True(t, tuitest.ContainsInOrder(out, "Down", "High confidence prediction", "80.0%", "15.0%", "5.0%"))
	assert.Contains(t, out, "Sellers are in control.")
	assert.Contains(t, out, "File: qqq.png • Series length: 250 • Window size: 32 • Risk: high • Horizon: long")
	assert.Equal(t, m.View(), m.View(), "rendering is deterministic")
}

func TestNotificationsModel(t *testing.T) {
	m := NewNotificationsModel(themes.Default)
	assert.Empty(t, m.View())

	now := time.Now()
	m.Push(model.Notification{ID: "a", Message: "first", Severity: model.SeverityInfo, ExpiresAt: now})
	m.Push(model.Notification{ID: "b", Message: "second", Severity: model.SeverityError, ExpiresAt: now})
	assert.True(t, tuitest.ContainsInOrder(tuitest.Plain(m.View()), "first", "second"))

	m.Dismiss("a")
	assert.Len(t, m.Items(), 1)
	assert.NotContains(t, m.View(), "first")

	m.Dismiss("missing")
	assert.Len(t, m.Items(), 1)
}
