package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/railsim/internal/config"
	"github.com/san-kum/railsim/internal/integrators"
	"github.com/san-kum/railsim/internal/shot"
)

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [integrator ...]",
		Short: "fire the same shot with several integrators",
		RunE:  compareIntegrators,
	}
	addParamFlags(cmd.Flags())
	return cmd
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, config.DefaultConfig())
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		names = integrators.Names()
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	fmt.Printf("comparing integrators (dt=%.3g s, duration=%.3g s)\n\n", cfg.Params.TimeStep, cfg.Params.Duration)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tEXIT_US\tSPEED_KM_S\tEFFICIENCY_%\tENERGY_DRIFT\tSTEPS\tTIME_MS")

	for _, name := range names {
		sim, err := shot.New(name, shot.WithMaxSteps(cfg.MaxSteps))
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}

		start := time.Now()
		out, err := sim.Fire(ctx, cfg.Params, cfg.InterpolateExit)
		elapsed := time.Since(start)

		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}

		fmt.Fprintf(w, "%s\t%.4g\t%.6g\t%.4g\t%.2e\t%d\t%.1f\n",
			name,
			out.Exit.Time*1e6,
			out.Exit.Speed*1e-3,
			out.Efficiency.Percent,
			out.Result.Metrics[shot.MetricEnergyDrift],
			out.Result.StepsTaken,
			float64(elapsed.Microseconds())/1000,
		)
	}

	return w.Flush()
}
