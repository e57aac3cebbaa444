package shot

import "github.com/san-kum/railsim/internal/physics"

// Metric names recorded on every Result.
const (
	MetricEnergyDrift = "energy_drift"
	MetricPeakCurrent = "peak_current"
	MetricPeakSpeed   = "peak_speed"
)

// Result is the SI time series of one shot. All series have the same
// length, one entry per grid sample.
type Result struct {
	Params     physics.Params
	Norm       physics.Normalization
	Integrator string

	Time     []float64 // s
	Position []float64 // m
	Speed    []float64 // m/s
	Voltage  []float64 // V
	Current  []float64 // A

	Metrics    map[string]float64
	StepsTaken int
}

// Sample is one row of a Result.
type Sample struct {
	Time     float64
	Position float64
	Speed    float64
	Voltage  float64
	Current  float64
}

func (r *Result) Len() int { return len(r.Time) }

func (r *Result) Sample(i int) Sample {
	return Sample{
		Time:     r.Time[i],
		Position: r.Position[i],
		Speed:    r.Speed[i],
		Voltage:  r.Voltage[i],
		Current:  r.Current[i],
	}
}
