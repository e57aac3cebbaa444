package dynamo

import "math"

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// System is an autonomous or time-dependent ODE dX/dt = f(X, t).
type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

// Hamiltonian systems expose a quantity the exact flow conserves.
type Hamiltonian interface {
	Energy(x State) float64
}

// Bounded systems reject states outside their physical domain even when
// every component is finite.
type Bounded interface {
	InDomain(x State) bool
}

type Integrator interface {
	Step(dyn System, x State, t float64, dt float64) State
}

// AdaptiveIntegrator attempts one step of size dt and proposes the next
// step size. A step whose error estimate exceeds tol is returned with
// ErrStepRejected and the unchanged input state.
type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(dyn System, x State, t, dt, tol float64) (State, float64, error)
}

type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

type Config struct {
	Tolerance     float64
	MinDt         float64
	MaxSteps      int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Tolerance:     1e-8,
		MinDt:         1e-12,
		MaxSteps:      10_000_000,
		ValidateState: true,
	}
}

// Trajectory is the solution of an initial value problem sampled on the
// caller's grid: States[i] is the state at Times[i].
type Trajectory struct {
	States     []State
	Times      []float64
	Metrics    map[string]float64
	StepsTaken int
}
