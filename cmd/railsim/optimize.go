package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/railsim/internal/config"
	"github.com/san-kum/railsim/internal/optim"
	"github.com/san-kum/railsim/internal/sweep"
	"github.com/san-kum/railsim/internal/viz"
)

func newOptimizeCmd() *cobra.Command {
	var (
		axes    []string
		workers int
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:     "optimize --axis field=min:max:step [--axis ...]",
		Short:   "grid search the inputs for the most efficient shot",
		Example: "  railsim optimize --axis voltage=1000:4000:500 --axis capacitance=100e-6:1000e-6:100e-6",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(axes) == 0 {
				return errors.New("at least one --axis is required")
			}
			parsed := make([]optim.Axis, len(axes))
			for i, a := range axes {
				ax, err := optim.ParseAxis(a)
				if err != nil {
					return err
				}
				parsed[i] = ax
			}
			g, err := optim.NewGridSearch(parsed...)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(cmd, config.DefaultConfig())
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("workers") {
				cfg.Workers = workers
			}
			sim, err := cfg.Simulator()
			if err != nil {
				return err
			}
			opts, err := cfg.DriverOptions()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			start := time.Now()
			best, err := g.Search(ctx, sweep.NewDriver(sim, opts...), cfg.Params)
			if err != nil {
				return err
			}
			slog.Debug("grid search finished", "evaluated", best.Evaluated, "elapsed", time.Since(start))

			fmt.Println(optimizeSummary(parsed, best))
			return nil
		},
	}

	addParamFlags(cmd.Flags())
	cmd.Flags().Bool("interpolate", false, "interpolate the muzzle crossing between samples")
	cmd.Flags().StringArrayVar(&axes, "axis", nil, "swept input as field=min:max:step in SI units")
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent shots (0 = GOMAXPROCS)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "abort after this long (0 = no limit)")

	return cmd
}

func optimizeSummary(axes []optim.Axis, best *optim.Best) string {
	rows := []viz.Row{
		{Label: "evaluated", Value: fmt.Sprintf("%d", best.Evaluated)},
		{Label: "exited", Value: fmt.Sprintf("%d", best.Exited)},
	}
	for _, a := range axes {
		rows = append(rows, viz.Row{
			Label: a.Field.Label(),
			Value: fmt.Sprintf("%.4g %s", a.Field.Get(best.Params)*a.Field.Scale(), a.Field.Unit()),
		})
	}
	rows = append(rows,
		viz.Row{Label: "efficiency", Value: fmt.Sprintf("%.3g %%", best.Point.Efficiency.Percent)},
		viz.Row{Label: "exit speed", Value: fmt.Sprintf("%.4g km/s", best.Point.Exit.Speed*1e-3)},
		viz.Row{Label: "stored energy", Value: fmt.Sprintf("%.4g J", best.Params.StoredEnergy())},
	)
	return viz.Summary("optimum", rows)
}
