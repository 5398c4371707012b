package main

import (
	"fmt"

	"github.com/Veraticus/trendscope/internal/cli"
	"github.com/spf13/cobra"
)

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the prediction API is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			console := cli.NewConsole(cmd.OutOrStdout(), cli.WithErrorWriter(cmd.ErrOrStderr()))
			defer console.Close()

			a, err := newApp(console)
			if err != nil {
				return err
			}

			if err := a.ctrl.CheckBackendHealth(cmd.Context()); err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Prediction API is up at "+a.cfg.API.BaseURL))
			return err
		},
	}
}
