package automation

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/san-kum/railsim/internal/physics"
	"github.com/san-kum/railsim/internal/shot"
)

// voltageShooter exits at a speed equal to the voltage and misses below
// a threshold.
type voltageShooter struct {
	threshold float64
}

func (v voltageShooter) Fire(ctx context.Context, p physics.Params, _ bool) (*shot.Outcome, error) {
	if p.Voltage < v.threshold {
		return nil, &shot.ExitError{GunLength: p.BarrelLength}
	}
	return &shot.Outcome{
		Exit:       shot.Exit{Speed: p.Voltage},
		Efficiency: shot.Efficiency{Percent: p.Capacitance * 1e5},
	}, nil
}

func TestMonteCarloReproducible(t *testing.T) {
	cfg := MonteCarloConfig{
		Base:         physics.DefaultParams(),
		Perturbation: 0.05,
		Trials:       50,
		Seed:         7,
		Workers:      1,
	}

	serial, err := RunMonteCarlo(context.Background(), voltageShooter{}, cfg)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Workers = 8
	parallel, err := RunMonteCarlo(context.Background(), voltageShooter{}, cfg)
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(serial, parallel, cmpopts.EquateErrors()); diff != "" {
		t.Errorf("results depend on worker count:\n%s", diff)
	}

	base := cfg.Base
	for _, r := range serial {
		if rel := math.Abs(r.Params.Voltage/base.Voltage - 1); rel > 0.05 {
			t.Errorf("trial %d: voltage perturbed by %g", r.TrialID, rel)
		}
		if r.Params.BarrelLength != base.BarrelLength {
			t.Errorf("trial %d: barrel length should not be perturbed", r.TrialID)
		}
	}
}

func TestMonteCarloStats(t *testing.T) {
	cfg := MonteCarloConfig{
		Base:         physics.DefaultParams(),
		Params:       []string{"voltage"},
		Perturbation: 0.1,
		Trials:       200,
		Seed:         1,
	}

	results, err := RunMonteCarlo(context.Background(), voltageShooter{threshold: 2000}, cfg)
	if err != nil {
		t.Fatal(err)
	}

	st := Summarize(results)
	if st.Exited+st.Missed != 200 {
		t.Fatalf("trials lost: %+v", st)
	}
	if st.Exited == 0 || st.Missed == 0 {
		t.Fatalf("expected both outcomes around the threshold: %+v", st)
	}
	if st.MeanSpeed < 2000 || st.MeanSpeed > 2200 {
		t.Errorf("mean speed %g outside the exited band", st.MeanSpeed)
	}
	if st.StdSpeed <= 0 {
		t.Errorf("expected positive spread, got %g", st.StdSpeed)
	}
	if st.StdEfficiency > 1e-9 {
		t.Errorf("capacitance was not perturbed, efficiency spread should be 0, got %g", st.StdEfficiency)
	}
}

func TestMonteCarloValidation(t *testing.T) {
	base := physics.DefaultParams()
	tests := []MonteCarloConfig{
		{Base: base, Trials: 0},
		{Base: base, Trials: 1, Perturbation: 1},
		{Base: base, Trials: 1, Perturbation: -0.1},
		{Base: base, Trials: 1, Params: []string{"mass"}},
	}
	for i, cfg := range tests {
		if _, err := RunMonteCarlo(context.Background(), voltageShooter{}, cfg); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}

	bad := base
	bad.MassNumber = 0
	_, err := RunMonteCarlo(context.Background(), voltageShooter{}, MonteCarloConfig{Base: bad, Trials: 1})
	if !errors.Is(err, physics.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestSummarizeSingle(t *testing.T) {
	st := Summarize([]MonteCarloResult{{Exit: shot.Exit{Speed: 3}, Efficiency: shot.Efficiency{Percent: 4}}})
	if st.MeanSpeed != 3 || st.StdSpeed != 0 || st.MeanEfficiency != 4 {
		t.Errorf("unexpected stats %+v", st)
	}
}

func TestWriteMonteCarloCSV(t *testing.T) {
	results := []MonteCarloResult{
		{TrialID: 0, Params: physics.DefaultParams(), Exit: shot.Exit{Speed: 1.5}, Efficiency: shot.Efficiency{Percent: 40}},
		{TrialID: 1, Params: physics.DefaultParams(), Err: &shot.ExitError{GunLength: 1, MaxPosition: 0.5}},
	}

	var buf bytes.Buffer
	if err := WriteMonteCarloCSV(&buf, results); err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header and 2 rows, got %d", len(rows))
	}

	width := len(physics.Names()) + 4
	for i, row := range rows {
		if len(row) != width {
			t.Errorf("row %d has %d columns, want %d", i, len(row), width)
		}
	}
	if rows[1][width-3] != "1.5" || rows[1][width-1] != "" {
		t.Errorf("unexpected exited row %v", rows[1])
	}
	if rows[2][width-3] != "" || rows[2][width-1] == "" {
		t.Errorf("unexpected missed row %v", rows[2])
	}
}
