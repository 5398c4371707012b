package main

import (
	"fmt"
	"io"
	"os"

	"github.com/Veraticus/trendscope/internal/api"
	"github.com/Veraticus/trendscope/internal/config"
	"github.com/Veraticus/trendscope/internal/controller"
	"github.com/Veraticus/trendscope/internal/upload"
	"github.com/mattn/go-isatty"
	"github.com/spf13/viper"
)

// app bundles what every command needs once configuration is loaded.
type app struct {
	ctrl *controller.Controller
	cfg  config.Config
}

func newApp(surface controller.Surface) (*app, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}

	client := api.NewClient(api.Config{
		BaseURL:   cfg.API.BaseURL,
		UserAgent: fmt.Sprintf("%s/%s", cfg.API.UserAgent, version),
		Timeout:   cfg.API.Timeout,
	})

	ctrl, err := controller.New(client,
		controller.WithDecoder(upload.NewDecoder()),
		controller.WithRules(upload.Rules{
			AllowedTypes: cfg.Upload.AllowedTypes,
			MaxBytes:     cfg.Upload.MaxBytes,
		}),
		controller.WithRequestTimeout(cfg.API.Timeout),
		controller.WithHealthCheck(cfg.API.BaseURL, cfg.API.HealthTimeout, cfg.API.HealthAttempts),
		controller.WithNotificationTTL(cfg.Notifications.TTL),
		controller.WithSurface(surface),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create controller: %w", err)
	}

	return &app{cfg: cfg, ctrl: ctrl}, nil
}

// isTerminal reports whether w writes to an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
