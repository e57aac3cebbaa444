package sweep

import (
	"math"

	"github.com/san-kum/railsim/internal/shot"
)

// Point is the outcome of one swept value. Err is nil when the projectile
// exited and the efficiency could be computed.
type Point struct {
	Value      float64
	Exit       shot.Exit
	Efficiency shot.Efficiency
	Err        error
}

func (p Point) OK() bool { return p.Err == nil }

// Result holds the points of a sweep in the order of the swept values.
type Result struct {
	Field  Field
	Points []Point
}

func (r *Result) Values() []float64 {
	out := make([]float64, len(r.Points))
	for i, p := range r.Points {
		out[i] = p.Value
	}
	return out
}

// series maps every point through fn, using NaN for failed points so the
// output stays aligned with Values.
func (r *Result) series(fn func(Point) float64) []float64 {
	out := make([]float64, len(r.Points))
	for i, p := range r.Points {
		if p.OK() {
			out[i] = fn(p)
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

func (r *Result) Speeds() []float64 {
	return r.series(func(p Point) float64 { return p.Exit.Speed })
}

func (r *Result) Voltages() []float64 {
	return r.series(func(p Point) float64 { return p.Exit.Voltage })
}

func (r *Result) Currents() []float64 {
	return r.series(func(p Point) float64 { return p.Exit.Current })
}

func (r *Result) KineticEnergies() []float64 {
	return r.series(func(p Point) float64 { return p.Efficiency.KineticEnergy })
}

func (r *Result) Efficiencies() []float64 {
	return r.series(func(p Point) float64 { return p.Efficiency.Percent })
}

func (r *Result) Succeeded() []Point {
	var out []Point
	for _, p := range r.Points {
		if p.OK() {
			out = append(out, p)
		}
	}
	return out
}

func (r *Result) Failed() []Point {
	var out []Point
	for _, p := range r.Points {
		if !p.OK() {
			out = append(out, p)
		}
	}
	return out
}

// Best returns the successful point with the highest efficiency.
func (r *Result) Best() (Point, bool) {
	best := math.Inf(-1)
	var bestPoint Point
	found := false

	for _, p := range r.Points {
		if !p.OK() {
			continue
		}
		if p.Efficiency.Percent > best {
			best = p.Efficiency.Percent
			bestPoint = p
			found = true
		}
	}
	return bestPoint, found
}
