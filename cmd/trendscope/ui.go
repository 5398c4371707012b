package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/trendscope/internal/config"
	"github.com/Veraticus/trendscope/internal/tui"
	"github.com/Veraticus/trendscope/internal/tui/themes"
	"github.com/spf13/cobra"
)

func uiCmd() *cobra.Command {
	var skipHealth bool

	cmd := &cobra.Command{
		Use:   "ui [IMAGE]",
		Short: "Open the interactive predictor",
		Long: `Open a full-screen interface for choosing a chart, entering the axis
bounds and reading the prediction. Logs go to logging.file while it runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(nil)
			if err != nil {
				return err
			}

			logFile, err := config.OpenLogFile(a.cfg.Logging.File)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := logFile.Close(); closeErr != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "failed to close log file: %v\n", closeErr)
				}
			}()
			if err := setupLogging(logFile); err != nil {
				return fmt.Errorf("failed to setup logging: %w", err)
			}
			slog.Info("Starting interactive UI", "api", a.cfg.API.BaseURL, "theme", a.cfg.UI.Theme)

			opts := []tui.Option{
				tui.WithTheme(themes.GetTheme(a.cfg.UI.Theme)),
				tui.WithHealthCheck(!skipHealth),
			}
			if len(args) == 1 {
				opts = append(opts, tui.WithInitialPath(args[0]))
			}

			return tui.Run(cmd.Context(), a.ctrl, opts...)
		},
	}

	cmd.Flags().BoolVar(&skipHealth, "skip-health", false, "do not ping the API on startup")

	return cmd
}
