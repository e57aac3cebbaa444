package automation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/railsim/internal/shot"
)

const scenarioYAML = `
name: quick
description: one shot and a short voltage sweep
workers: 2
steps:
  - name: reference
    integrator: rk4
    params:
      voltage: 2500
    save_as: %s
  - name: short barrel
    params:
      duration: 2.0e-5
      barrel_length: 5.0
  - name: voltage
    params:
      time_step: 1.0e-7
      duration: 1.0e-4
    preset: voltage
    sweep:
      field: voltage
      min: 1000
      max: 3000
      step: 500
    save_as: %s
`

func writeScenario(t *testing.T) (string, string, string) {
	t.Helper()
	dir := t.TempDir()
	shotCSV := filepath.Join(dir, "shot.csv")
	sweepCSV := filepath.Join(dir, "sweep.csv")
	path := filepath.Join(dir, "scenario.yaml")

	body := strings.Replace(scenarioYAML, "%s", shotCSV, 1)
	body = strings.Replace(body, "%s", sweepCSV, 1)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path, shotCSV, sweepCSV
}

func TestRunScenario(t *testing.T) {
	path, shotCSV, sweepCSV := writeScenario(t)

	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if sc.Name != "quick" || len(sc.Steps) != 3 {
		t.Fatalf("unexpected scenario %+v", sc)
	}

	results, err := RunScenario(context.Background(), sc, nil)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	if results[0].Err != nil || results[0].Shot == nil {
		t.Errorf("reference shot failed: %v", results[0].Err)
	} else if results[0].Shot.Result.Params.Voltage != 2500 {
		t.Errorf("override not applied: %g", results[0].Shot.Result.Params.Voltage)
	}

	if !errors.Is(results[1].Err, shot.ErrProjectileDidNotExit) {
		t.Errorf("expected the short shot to miss the muzzle, got %v", results[1].Err)
	}

	if results[2].Sweep == nil || len(results[2].Sweep.Points) != 4 {
		t.Errorf("expected a 4-point sweep, got %+v", results[2].Sweep)
	}

	for _, p := range []string{shotCSV, sweepCSV} {
		data, err := os.ReadFile(p)
		if err != nil {
			t.Errorf("expected %s to be written: %v", p, err)
			continue
		}
		if len(strings.Split(strings.TrimSpace(string(data)), "\n")) < 2 {
			t.Errorf("%s has no data rows", p)
		}
	}
}

func TestRunScenarioStopsOnBadStep(t *testing.T) {
	sc := &Scenario{Steps: []Step{
		{Name: "ok", Params: map[string]float64{"duration": 2e-5}},
		{Name: "bad", Params: map[string]float64{"mass": 1}},
		{Name: "never"},
	}}

	results, err := RunScenario(context.Background(), sc, nil)
	if err == nil {
		t.Fatal("expected error for unknown parameter")
	}
	if len(results) != 1 {
		t.Errorf("expected results of the first step only, got %d", len(results))
	}

	_, err = RunScenario(context.Background(), &Scenario{Steps: []Step{{Preset: "nope"}}}, nil)
	if err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestRunScenarioCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RunScenario(ctx, &Scenario{Steps: []Step{{Name: "shot"}}}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestLoadScenarioErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadScenario(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	empty := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(empty, []byte("name: nothing\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadScenario(empty); err == nil {
		t.Error("expected error for scenario without steps")
	}
}
