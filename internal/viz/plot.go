package viz

import (
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/railsim/internal/shot"
	"github.com/san-kum/railsim/internal/sweep"
)

const (
	plotWidth  = 80
	plotHeight = 12
)

// Chart plots ys as a line, scaling every value by scale. NaN values are
// left as gaps. It returns "" when nothing is plottable.
func Chart(ys []float64, scale float64, caption string) string {
	data := make([]float64, len(ys))
	finite := false
	for i, y := range ys {
		data[i] = y * scale
		if !math.IsNaN(data[i]) && !math.IsInf(data[i], 0) {
			finite = true
		} else {
			data[i] = math.NaN()
		}
	}
	if !finite {
		return ""
	}

	return asciigraph.Plot(data,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
	)
}

// ShotCharts plots voltage, current, speed and position of a shot.
func ShotCharts(res *shot.Result) []string {
	span := fmt.Sprintf("t = 0 … %.4g μs", res.Time[res.Len()-1]*1e6)
	return nonEmpty(
		Chart(res.Voltage, 1e-3, "voltage (kV), "+span),
		Chart(res.Current, 1e-3, "current (kA), "+span),
		Chart(res.Speed, 1e-3, "speed (km/s), "+span),
		Chart(res.Position, 1, "position (m), "+span),
	)
}

// SweepCharts plots exit speed, kinetic energy and efficiency against the
// swept value.
func SweepCharts(res *sweep.Result) []string {
	f := res.Field
	axis := "vs " + f.Label() + " (" + f.Unit() + ")"
	if len(res.Points) > 0 {
		first := res.Points[0].Value * f.Scale()
		last := res.Points[len(res.Points)-1].Value * f.Scale()
		axis += fmt.Sprintf(" %.4g … %.4g", first, last)
	}
	return nonEmpty(
		Chart(res.Speeds(), 1e-3, "exit speed (km/s) "+axis),
		Chart(res.Voltages(), 1e-3, "exit voltage (kV) "+axis),
		Chart(res.Currents(), 1e-3, "exit current (kA) "+axis),
		Chart(res.KineticEnergies(), 1, "kinetic energy (J) "+axis),
		Chart(res.Efficiencies(), 1, "efficiency (%) "+axis),
	)
}

func nonEmpty(charts ...string) []string {
	out := charts[:0]
	for _, c := range charts {
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}
