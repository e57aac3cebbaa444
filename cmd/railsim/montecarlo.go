package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/railsim/internal/automation"
	"github.com/san-kum/railsim/internal/config"
	"github.com/san-kum/railsim/internal/viz"
)

type monteCarloFlags struct {
	trials  int
	perturb float64
	seed    int64
	workers int
	params  []string
	csvPath string
	plot    bool
	timeout time.Duration
}

func newMonteCarloCmd() *cobra.Command {
	var f monteCarloFlags

	cmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "fire shots with randomly perturbed inputs and report the spread",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMonteCarlo(cmd, f)
		},
	}

	addParamFlags(cmd.Flags())
	cmd.Flags().Bool("interpolate", false, "interpolate the muzzle crossing between samples")
	cmd.Flags().IntVar(&f.trials, "trials", 100, "number of shots")
	cmd.Flags().Float64Var(&f.perturb, "perturb", 0.05, "relative half-width of the uniform perturbation")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "random seed (0 = time based)")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "concurrent shots (0 = GOMAXPROCS)")
	cmd.Flags().StringSliceVar(&f.params, "params", nil, "inputs to perturb (default: toleranced inputs)")
	cmd.Flags().StringVar(&f.csvPath, "csv", "", "write every trial as CSV (- for stdout)")
	cmd.Flags().BoolVar(&f.plot, "plot", false, "plot exit speed per trial")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "abort after this long (0 = no limit)")

	return cmd
}

func runMonteCarlo(cmd *cobra.Command, f monteCarloFlags) error {
	cfg, err := loadConfig(cmd, config.DefaultConfig())
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = f.workers
	}

	sim, err := cfg.Simulator()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	seed := f.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	slog.Debug("monte carlo started", "trials", f.trials, "perturb", f.perturb, "seed", seed)

	results, err := automation.RunMonteCarlo(ctx, sim, automation.MonteCarloConfig{
		Base:         cfg.Params,
		Params:       f.params,
		Perturbation: f.perturb,
		Trials:       f.trials,
		Seed:         seed,
		Workers:      cfg.Workers,
		Interpolate:  cfg.InterpolateExit,
	})
	if err != nil {
		return err
	}

	st := automation.Summarize(results)
	fmt.Println(viz.Summary("monte carlo", []viz.Row{
		{Label: "trials", Value: fmt.Sprintf("%d", len(results))},
		{Label: "seed", Value: fmt.Sprintf("%d", seed)},
		{Label: "exited", Value: fmt.Sprintf("%d", st.Exited)},
		{Label: "missed", Value: fmt.Sprintf("%d", st.Missed)},
		{Label: "exit speed", Value: fmt.Sprintf("%.4g ± %.2g km/s", st.MeanSpeed*1e-3, st.StdSpeed*1e-3)},
		{Label: "efficiency", Value: fmt.Sprintf("%.3g ± %.2g %%", st.MeanEfficiency, st.StdEfficiency)},
	}))

	if f.plot {
		speeds := make([]float64, len(results))
		for i, r := range results {
			speeds[i] = r.Exit.Speed
			if r.Err != nil {
				speeds[i] = math.NaN()
			}
		}
		fmt.Println(viz.Chart(speeds, 1e-3, "exit speed per trial (km/s)"))
	}

	return writeTo(f.csvPath, func(w io.Writer) error { return automation.WriteMonteCarloCSV(w, results) })
}
