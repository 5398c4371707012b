package tui

import (
	"time"

	"github.com/Veraticus/trendscope/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme       themes.Theme
	Now         func() time.Time
	InitialPath string
	Width       int
	Height      int
	CheckHealth bool
	ShowHelp    bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:       themes.Default,
		Now:         time.Now,
		Width:       80,
		Height:      24,
		ShowHelp:    true,
		CheckHealth: true,
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithInitialPath preselects a chart image on start.
func WithInitialPath(path string) Option {
	return func(c *Config) {
		c.InitialPath = path
	}
}

// WithHealthCheck controls the backend ping on start.
func WithHealthCheck(enabled bool) Option {
	return func(c *Config) {
		c.CheckHealth = enabled
	}
}

// WithHelp controls whether the key help line is shown.
func WithHelp(enabled bool) Option {
	return func(c *Config) {
		c.ShowHelp = enabled
	}
}

// WithClock overrides the time source used to schedule notification dismissal.
func WithClock(now func() time.Time) Option {
	return func(c *Config) {
		if now != nil {
			c.Now = now
		}
	}
}
