package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/trendscope/internal/cli"
	"github.com/Veraticus/trendscope/internal/model"
	"github.com/spf13/cobra"
)

var errPredictionFailed = errors.New("prediction failed")

type predictOptions struct {
	output     string
	form       model.FormValues
	skipHealth bool
}

func predictCmd() *cobra.Command {
	var opts predictOptions

	cmd := &cobra.Command{
		Use:   "predict IMAGE",
		Short: "Predict the trend of a chart image",
		Long: `Upload a PNG or JPEG chart screenshot and print the predicted trend.

The Y-axis bounds calibrate the chart's price scale. Missing bounds are
prompted for on standard input.`,
		Example: `  trendscope predict aapl.png --y-min 150 --y-max 190
  trendscope predict btc.jpg --y-min 20000 --y-max 30000 --horizon long --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPredict(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.form.YMin, "y-min", "", "lowest value on the chart's Y axis")
	cmd.Flags().StringVar(&opts.form.YMax, "y-max", "", "highest value on the chart's Y axis")
	cmd.Flags().StringVar(&opts.form.NPoints, "n-points", "", "number of points to sample from the chart (default 300)")
	cmd.Flags().StringVar(&opts.form.RiskProfile, "risk-profile", "", "risk profile forwarded to the model (default medium)")
	cmd.Flags().StringVar(&opts.form.Horizon, "horizon", "", "forecast horizon forwarded to the model (default short)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", cli.OutputText, "output format (text, json)")
	cmd.Flags().BoolVar(&opts.skipHealth, "skip-health", false, "do not ping the API before uploading")

	return cmd
}

func runPredict(cmd *cobra.Command, path string, opts predictOptions) error {
	switch opts.output {
	case cli.OutputText, cli.OutputJSON:
	default:
		return fmt.Errorf("invalid output format %q: must be text or json", opts.output)
	}

	errOut := cmd.ErrOrStderr()
	console := cli.NewConsole(cmd.OutOrStdout(),
		cli.WithErrorWriter(errOut),
		cli.WithFormat(opts.output),
		cli.WithSpinner(opts.output == cli.OutputText && isTerminal(errOut)),
	)
	defer console.Close()

	a, err := newApp(console)
	if err != nil {
		return err
	}

	interrupts := cli.NewInterruptHandler(errOut)
	ctx, stop := interrupts.HandleInterrupts(cmd.Context())
	defer stop()

	if !opts.skipHealth {
		// A failed ping is only a warning; the console already showed it.
		if err := a.ctrl.CheckBackendHealth(ctx); err != nil {
			slog.Debug("Health check failed", "error", err)
		}
	}

	if err := a.ctrl.SelectPath(ctx, path); err != nil {
		return fmt.Errorf("failed to select %s: %w", path, err)
	}

	form := opts.form
	if strings.TrimSpace(form.YMin) == "" || strings.TrimSpace(form.YMax) == "" {
		form, err = cli.NewPrompter(cmd.InOrStdin(), errOut).CompleteForm(ctx, form)
		if err != nil {
			return fmt.Errorf("failed to read Y-axis bounds: %w", err)
		}
	}

	// The console already showed why the prediction failed.
	if err := a.ctrl.Submit(ctx, form); err != nil {
		slog.Debug("Prediction failed", "error", err)
		if interrupts.WasInterrupted() {
			return errors.New("prediction interrupted")
		}
		return errPredictionFailed
	}

	return nil
}
