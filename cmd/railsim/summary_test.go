package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/san-kum/railsim/internal/automation"
	"github.com/san-kum/railsim/internal/optim"
	"github.com/san-kum/railsim/internal/physics"
	"github.com/san-kum/railsim/internal/shot"
	"github.com/san-kum/railsim/internal/sweep"
)

func TestOptimizeSummary(t *testing.T) {
	axes := []optim.Axis{
		{Field: sweep.Voltage, Range: sweep.Range{Min: 1000, Max: 3000, Step: 500}},
		{Field: sweep.Capacitance, Range: sweep.Range{Min: 1e-4, Max: 1e-3, Step: 1e-4}},
	}
	p := physics.DefaultParams()
	best := &optim.Best{
		Params:    p,
		Point:     sweep.Point{Value: p.Capacitance, Efficiency: shot.Efficiency{Percent: 42}},
		Evaluated: 36,
		Exited:    30,
	}

	out := optimizeSummary(axes, best)
	for _, want := range []string{"36", "30", "560 μF", "2 kV", "42 %", "1120 J"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestStepSummaryError(t *testing.T) {
	r := automation.StepResult{
		Step: automation.Step{Name: "broken"},
		Err:  errors.New("sweep failed early"),
	}
	out := stepSummary(3, r)
	if !strings.Contains(out, "step 3: broken") || !strings.Contains(out, "sweep failed early") {
		t.Errorf("unexpected summary:\n%s", out)
	}
}
