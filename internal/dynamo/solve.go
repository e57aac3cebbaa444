package dynamo

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// Solve integrates dyn from x0 at grid[0] and returns the state at every
// grid point, in order. Fixed-step integrators take exactly one step per
// grid interval. Adaptive integrators sub-step under error control and
// land on each grid point exactly.
//
// Metrics observe every recorded sample. Integration stops with a
// *SimulationError wrapping ErrNumericalDivergence as soon as a sample is
// non-finite or outside a Bounded system's domain.
func Solve(ctx context.Context, dyn System, integ Integrator, x0 State, grid []float64, cfg Config, metrics ...Metric) (*Trajectory, error) {
	adaptive, isAdaptive := integ.(AdaptiveIntegrator)
	if err := validateConfig(cfg, isAdaptive); err != nil {
		return nil, err
	}
	if err := validateGrid(grid); err != nil {
		return nil, err
	}
	if len(x0) != dyn.StateDim() {
		return nil, fmt.Errorf("%w: got %d components, want %d", ErrDimensionMismatch, len(x0), dyn.StateDim())
	}
	if cfg.MaxSteps > 0 && len(grid)-1 > cfg.MaxSteps {
		return nil, fmt.Errorf("%w: grid needs %d steps, limit is %d", ErrStepLimit, len(grid)-1, cfg.MaxSteps)
	}

	traj := &Trajectory{
		States:  make([]State, 0, len(grid)),
		Times:   make([]float64, 0, len(grid)),
		Metrics: make(map[string]float64, len(metrics)),
	}

	for _, m := range metrics {
		m.Reset()
	}

	record := func(x State, t float64) {
		for _, m := range metrics {
			m.Observe(x, t)
		}
		traj.States = append(traj.States, x.Clone())
		traj.Times = append(traj.Times, t)
	}

	x := x0.Clone()
	if err := checkState(dyn, x, cfg); err != nil {
		return nil, &SimulationError{Step: 0, Time: grid[0], State: x, Wrapped: err}
	}
	record(x, grid[0])

	h := 0.0
	for i := 1; i < len(grid); i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		t := grid[i-1]
		span := grid[i] - t

		if isAdaptive {
			var err error
			x, h, err = advance(adaptive, dyn, x, t, span, h, cfg, &traj.StepsTaken)
			if err != nil {
				return nil, &SimulationError{Step: i, Time: t, State: x.Clone(), Wrapped: err}
			}
		} else {
			x = integ.Step(dyn, x, t, span)
			traj.StepsTaken++
		}

		if err := checkState(dyn, x, cfg); err != nil {
			return nil, &SimulationError{Step: i, Time: grid[i], State: x.Clone(), Wrapped: err}
		}
		record(x, grid[i])
	}

	for _, m := range metrics {
		traj.Metrics[m.Name()] = m.Value()
	}

	return traj, nil
}

// advance carries x across [t, t+span] with error-controlled sub-steps.
// h is the step size proposed by the previous interval; zero means none.
func advance(integ AdaptiveIntegrator, dyn System, x State, t, span, h float64, cfg Config, steps *int) (State, float64, error) {
	end := t + span
	if h <= 0 {
		h = span
	}

	for t < end {
		remaining := end - t
		dt := math.Min(h, remaining)
		last := h >= remaining

		next, proposed, err := integ.StepAdaptive(dyn, x, t, dt, cfg.Tolerance)
		*steps++
		if cfg.MaxSteps > 0 && *steps > cfg.MaxSteps {
			return x, h, ErrStepLimit
		}

		if errors.Is(err, ErrStepRejected) {
			if proposed < cfg.MinDt {
				return x, h, ErrStepTooSmall
			}
			h = proposed
			continue
		}
		if err != nil {
			return x, h, err
		}

		if cfg.ValidateState && !next.IsValid() {
			return next, h, ErrNumericalDivergence
		}

		x = next
		if last {
			t = end
		} else {
			t += dt
		}
		if proposed > 0 {
			h = proposed
		}
	}

	return x, h, nil
}

func checkState(dyn System, x State, cfg Config) error {
	if !cfg.ValidateState {
		return nil
	}
	if !x.IsValid() {
		return ErrNumericalDivergence
	}
	if b, ok := dyn.(Bounded); ok && !b.InDomain(x) {
		return ErrNumericalDivergence
	}
	return nil
}

func validateConfig(cfg Config, adaptive bool) error {
	if cfg.MaxSteps < 0 {
		return fmt.Errorf("%w: max steps must not be negative, got %d", ErrInvalidConfig, cfg.MaxSteps)
	}
	if adaptive && cfg.Tolerance <= 0 {
		return fmt.Errorf("%w: tolerance must be positive for adaptive stepping", ErrInvalidConfig)
	}
	if adaptive && cfg.MinDt < 0 {
		return fmt.Errorf("%w: min dt must not be negative, got %g", ErrInvalidConfig, cfg.MinDt)
	}
	return nil
}

func validateGrid(grid []float64) error {
	if len(grid) == 0 {
		return fmt.Errorf("%w: no samples", ErrInvalidGrid)
	}
	for i, t := range grid {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return fmt.Errorf("%w: sample %d is %v", ErrInvalidGrid, i, t)
		}
		if i > 0 && t <= grid[i-1] {
			return fmt.Errorf("%w: sample %d (%g) does not follow %g", ErrInvalidGrid, i, t, grid[i-1])
		}
	}
	return nil
}
