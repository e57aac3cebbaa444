package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/railsim/internal/analysis"
	"github.com/san-kum/railsim/internal/config"
	"github.com/san-kum/railsim/internal/export"
	"github.com/san-kum/railsim/internal/shot"
	"github.com/san-kum/railsim/internal/viz"
)

func newShotCmd() *cobra.Command {
	var (
		out     outputFlags
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "shot",
		Short: "simulate a single shot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShot(cmd, out, timeout)
		},
	}

	addParamFlags(cmd.Flags())
	cmd.Flags().BoolVar(&out.plot, "plot", false, "plot voltage, current, speed and position")
	cmd.Flags().StringVar(&out.csvPath, "csv", "", "write samples as CSV (- for stdout)")
	cmd.Flags().StringVar(&out.jsonPath, "json", "", "write the shot as JSON (- for stdout)")
	cmd.Flags().StringVar(&out.svgPath, "svg", "", "write a speed chart as SVG")
	cmd.Flags().BoolVar(&out.phase, "phase", false, "show phase portraits and the current spectrum")
	cmd.Flags().Bool("interpolate", false, "interpolate the muzzle crossing between samples")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "abort after this long (0 = no limit)")

	return cmd
}

func runShot(cmd *cobra.Command, out outputFlags, timeout time.Duration) error {
	cfg, err := loadConfig(cmd, config.DefaultConfig())
	if err != nil {
		return err
	}

	sim, err := cfg.Simulator()
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

	slog.Debug("firing shot", "integrator", sim.Integrator(), "samples", cfg.Params.Steps())
	start := time.Now()
	outcome, fireErr := sim.Fire(ctx, cfg.Params, cfg.InterpolateExit)
	if outcome == nil {
		return fireErr
	}
	slog.Debug("shot finished", "elapsed", time.Since(start), "steps", outcome.Result.StepsTaken)

	fmt.Println(shotSummary(outcome, fireErr))

	if out.plot {
		for _, chart := range viz.ShotCharts(outcome.Result) {
			fmt.Println(chart)
			fmt.Println()
		}
	}
	if out.phase {
		fmt.Println(phaseReport(outcome.Result))
	}

	res := outcome.Result
	if err := writeTo(out.csvPath, func(w io.Writer) error { return export.WriteShotCSV(w, res) }); err != nil {
		return err
	}
	if err := writeTo(out.jsonPath, func(w io.Writer) error { return export.WriteShotJSON(w, outcome, fireErr) }); err != nil {
		return err
	}
	if err := writeTo(out.svgPath, func(w io.Writer) error {
		us := make([]float64, res.Len())
		kms := make([]float64, res.Len())
		for i := range us {
			us[i] = res.Time[i] * 1e6
			kms[i] = res.Speed[i] * 1e-3
		}
		return export.WriteSVG(w, export.Chart{Title: "projectile speed", XLabel: "time (μs)", YLabel: "speed (km/s)"}, us, kms)
	}); err != nil {
		return err
	}

	return fireErr
}

func shotSummary(out *shot.Outcome, failure error) string {
	res := out.Result
	rows := []viz.Row{
		{Label: "integrator", Value: res.Integrator},
		{Label: "samples / steps", Value: fmt.Sprintf("%d / %d", res.Len(), res.StepsTaken)},
		{Label: "drive Q", Value: fmt.Sprintf("%.4g", res.Norm.Drive)},
		{Label: "ω₀", Value: fmt.Sprintf("%.4g rad/s", res.Norm.Omega0)},
		{Label: "energy drift", Value: fmt.Sprintf("%.3g", res.Metrics[shot.MetricEnergyDrift])},
		{Label: "peak current", Value: fmt.Sprintf("%.4g kA", res.Metrics[shot.MetricPeakCurrent]*1e-3)},
		{Label: "peak speed", Value: fmt.Sprintf("%.4g km/s", res.Metrics[shot.MetricPeakSpeed]*1e-3)},
	}

	if failure != nil {
		return viz.Summary("shot", rows) + "\n" + viz.ErrorText.Render(failure.Error())
	}

	e, eff := out.Exit, out.Efficiency
	rows = append(rows,
		viz.Row{Label: "exit time", Value: fmt.Sprintf("%.4g μs (sample %d)", e.Time*1e6, e.Index)},
		viz.Row{Label: "exit speed", Value: fmt.Sprintf("%.4g km/s", e.Speed*1e-3)},
		viz.Row{Label: "exit voltage", Value: fmt.Sprintf("%.4g kV", e.Voltage*1e-3)},
		viz.Row{Label: "exit current", Value: fmt.Sprintf("%.4g kA", e.Current*1e-3)},
		viz.Row{Label: "gas mass", Value: fmt.Sprintf("%.4g mg", eff.GasMass*1e6)},
		viz.Row{Label: "kinetic energy", Value: fmt.Sprintf("%.4g J", eff.KineticEnergy)},
		viz.Row{Label: "stored energy", Value: fmt.Sprintf("%.4g J", eff.StoredEnergy)},
		viz.Row{Label: "efficiency", Value: fmt.Sprintf("%.3g %%", eff.Percent)},
	)
	return viz.Summary("shot", rows)
}

func phaseReport(res *shot.Result) string {
	rows := []viz.Row{
		{Label: "current reversals", Value: fmt.Sprintf("%d", len(analysis.ZeroCrossings(res.Time, res.Current)))},
	}
	if f, ok := analysis.CurrentSpectrum(res).Dominant(); ok {
		rows = append(rows, viz.Row{Label: "ringing frequency", Value: fmt.Sprintf("%.4g kHz", f*1e-3)})
	}

	var sb strings.Builder
	sb.WriteString(viz.Summary("discharge", rows))
	sb.WriteString("\n\n")
	sb.WriteString(analysis.CircuitPortrait(res).ASCII(72, 20))
	sb.WriteString("\n")
	sb.WriteString(analysis.MechanicalPortrait(res).ASCII(72, 20))
	return sb.String()
}
