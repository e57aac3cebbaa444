package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/railsim/internal/config"
	"github.com/san-kum/railsim/internal/export"
	"github.com/san-kum/railsim/internal/sweep"
	"github.com/san-kum/railsim/internal/viz"
)

type sweepFlags struct {
	out     outputFlags
	timeout time.Duration
	workers int
	abort   bool
	tui     bool
	min     float64
	max     float64
	step    float64
}

func newSweepCmd() *cobra.Command {
	var f sweepFlags

	cmd := &cobra.Command{
		Use:   "sweep [capacitance|length|pressure|voltage]",
		Short: "sweep one input and report exit speed and efficiency",
		Long: "Fires one shot per value of the swept input. Without range flags the\n" +
			"range and base parameters come from the preset named after the field.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(cmd, args, f)
		},
	}

	addParamFlags(cmd.Flags())
	cmd.Flags().Float64Var(&f.min, "min", 0, "first swept value (SI)")
	cmd.Flags().Float64Var(&f.max, "max", 0, "upper bound of the swept values, excluded (SI)")
	cmd.Flags().Float64Var(&f.step, "step", 0, "spacing of swept values (SI)")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "concurrent shots (0 = GOMAXPROCS)")
	cmd.Flags().BoolVar(&f.abort, "abort", false, "stop at the first failed point instead of marking it")
	cmd.Flags().BoolVar(&f.tui, "tui", false, "show an interactive progress bar")
	cmd.Flags().Bool("interpolate", false, "interpolate the muzzle crossing between samples")
	cmd.Flags().BoolVar(&f.out.plot, "plot", false, "plot exit quantities against the swept value")
	cmd.Flags().StringVar(&f.out.csvPath, "csv", "", "write points as CSV (- for stdout)")
	cmd.Flags().StringVar(&f.out.jsonPath, "json", "", "write points as JSON (- for stdout)")
	cmd.Flags().StringVar(&f.out.svgPath, "svg", "", "write an efficiency chart as SVG")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "abort after this long (0 = no limit)")

	return cmd
}

// resolveField picks the swept field from the argument, falling back to
// the config file.
func resolveField(args []string) (sweep.Field, *config.Config, error) {
	name := ""
	if len(args) > 0 {
		name = args[0]
	} else if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to load config: %w", err)
		}
		name = cfg.Sweep.Field
	}
	if name == "" {
		return 0, nil, fmt.Errorf("no sweep field given (one of capacitance, length, pressure, voltage)")
	}

	field, err := sweep.ParseField(name)
	if err != nil {
		return 0, nil, err
	}
	return field, config.PresetFor(field), nil
}

func runSweep(cmd *cobra.Command, args []string, f sweepFlags) error {
	field, fallback, err := resolveField(args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd, fallback)
	if err != nil {
		return err
	}

	rng, err := sweepRange(cmd, cfg, fallback, field, f)
	if err != nil {
		return err
	}
	fs := cmd.Flags()
	if fs.Changed("workers") {
		cfg.Workers = f.workers
	}
	if fs.Changed("abort") {
		cfg.Policy = sweep.Mark.String()
		if f.abort {
			cfg.Policy = sweep.Abort.String()
		}
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
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var res *sweep.Result
	if f.tui {
		title := fmt.Sprintf("sweeping %s", field.Label())
		err = viz.RunProgress(title, cancel, func(progress func(done, total int)) error {
			var runErr error
			d := sweep.NewDriver(sim, append(opts, sweep.WithProgress(progress))...)
			res, runErr = d.Run(ctx, cfg.Params, field, rng)
			return runErr
		})
	} else {
		d := sweep.NewDriver(sim, append(opts, sweep.WithLogger(slog.Default()), sweep.WithProgress(logProgress(field)))...)
		res, err = d.Run(ctx, cfg.Params, field, rng)
	}
	if err != nil {
		return err
	}

	fmt.Println(sweepSummary(res))

	if f.out.plot {
		for _, chart := range viz.SweepCharts(res) {
			fmt.Println(chart)
			fmt.Println()
		}
	}

	if err := writeTo(f.out.csvPath, func(w io.Writer) error { return export.WriteSweepCSV(w, res) }); err != nil {
		return err
	}
	if err := writeTo(f.out.jsonPath, func(w io.Writer) error { return export.WriteSweepJSON(w, res) }); err != nil {
		return err
	}
	return writeTo(f.out.svgPath, func(w io.Writer) error {
		xs := res.Values()
		for i := range xs {
			xs[i] *= field.Scale()
		}
		chart := export.Chart{
			Title:  "efficiency vs " + field.Label(),
			XLabel: fmt.Sprintf("%s (%s)", field.Label(), field.Unit()),
			YLabel: "efficiency (%)",
		}
		return export.WriteSVG(w, chart, xs, res.Efficiencies())
	})
}

// sweepRange takes the range from cfg only when cfg sweeps the same field;
// otherwise the preset of field supplies it. Range flags override either.
func sweepRange(cmd *cobra.Command, cfg, fallback *config.Config, field sweep.Field, f sweepFlags) (sweep.Range, error) {
	rng := fallback.Sweep.Range
	if cfg.Sweep.Step != 0 {
		own := cfg.Sweep.Field == ""
		if !own {
			configured, err := sweep.ParseField(cfg.Sweep.Field)
			if err != nil {
				return sweep.Range{}, err
			}
			own = configured == field
		}
		if own {
			rng = cfg.Sweep.Range
		} else {
			slog.Debug("ignoring configured range of another field",
				"configured", cfg.Sweep.Field, "swept", field.String())
		}
	}

	fs := cmd.Flags()
	if fs.Changed("min") {
		rng.Min = f.min
	}
	if fs.Changed("max") {
		rng.Max = f.max
	}
	if fs.Changed("step") {
		rng.Step = f.step
	}
	return rng, nil
}

// logProgress logs at debug level every tenth of the sweep.
func logProgress(field sweep.Field) func(done, total int) {
	next := 0
	return func(done, total int) {
		if done*10 < next*total && done != total {
			return
		}
		next = done*10/total + 1
		slog.Debug("sweep progress", "field", field.String(), "done", done, "total", total)
	}
}

func sweepSummary(res *sweep.Result) string {
	f := res.Field
	rows := []viz.Row{
		{Label: "field", Value: f.Label()},
		{Label: "points", Value: fmt.Sprintf("%d", len(res.Points))},
		{Label: "exited", Value: fmt.Sprintf("%d", len(res.Succeeded()))},
		{Label: "failed", Value: fmt.Sprintf("%d", len(res.Failed()))},
	}
	if best, ok := res.Best(); ok {
		rows = append(rows,
			viz.Row{Label: "best value", Value: fmt.Sprintf("%.4g %s", best.Value*f.Scale(), f.Unit())},
			viz.Row{Label: "best efficiency", Value: fmt.Sprintf("%.3g %%", best.Efficiency.Percent)},
			viz.Row{Label: "exit speed there", Value: fmt.Sprintf("%.4g km/s", best.Exit.Speed*1e-3)},
		)
	}
	return viz.Summary("sweep", rows)
}
