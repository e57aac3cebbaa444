package automation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/railsim/internal/config"
	"github.com/san-kum/railsim/internal/export"
	"github.com/san-kum/railsim/internal/shot"
	"github.com/san-kum/railsim/internal/sweep"
)

// Scenario is a scripted sequence of shots and sweeps.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Workers     int    `yaml:"workers"`
	Steps       []Step `yaml:"steps"`
}

// Step fires one shot, or runs one sweep when Sweep names a field.
// Params override the preset by yaml key.
type Step struct {
	Name       string              `yaml:"name"`
	Preset     string              `yaml:"preset"`
	Integrator string              `yaml:"integrator"`
	Params     map[string]float64  `yaml:"params"`
	Sweep      *config.SweepConfig `yaml:"sweep"`
	SaveAs     string              `yaml:"save_as"`
}

// StepResult holds what a step produced. Err is set when the shot or
// sweep ran but did not produce a usable result.
type StepResult struct {
	Step  Step
	Shot  *shot.Outcome
	Sweep *sweep.Result
	Err   error
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s has no steps", path)
	}
	return &scenario, nil
}

// stepConfig builds the configuration of one step on top of its preset.
func stepConfig(step Step) (*config.Config, error) {
	name := step.Preset
	if name == "" {
		name = "default"
	}
	cfg := config.GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s", name)
	}

	if step.Integrator != "" {
		cfg.Integrator = step.Integrator
	}
	for k, v := range step.Params {
		if err := cfg.Params.Set(k, v); err != nil {
			return nil, err
		}
	}
	if step.Sweep != nil {
		cfg.Sweep = *step.Sweep
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s Step) isSweep() bool { return s.Sweep != nil && s.Sweep.Field != "" }

// RunScenario executes all steps in order. A step whose configuration is
// invalid stops the scenario; a step that fires but fails is recorded and
// the scenario continues.
func RunScenario(ctx context.Context, scenario *Scenario, logger *slog.Logger) ([]StepResult, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		log := logger.With("step", i+1, "name", step.Name)
		log.Info("running scenario step", "of", len(scenario.Steps))

		cfg, err := stepConfig(step)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		if scenario.Workers != 0 {
			cfg.Workers = scenario.Workers
		}

		sim, err := cfg.Simulator()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		res := StepResult{Step: step}
		if step.isSweep() {
			res.Sweep, res.Err = runSweepStep(ctx, sim, cfg, log)
		} else {
			res.Shot, res.Err = sim.Fire(ctx, cfg.Params, cfg.InterpolateExit)
		}

		if res.Err != nil {
			if errors.Is(res.Err, context.Canceled) || errors.Is(res.Err, context.DeadlineExceeded) {
				return results, res.Err
			}
			log.Warn("scenario step failed", "error", res.Err)
		}

		if step.SaveAs != "" {
			if err := save(step.SaveAs, res); err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		results = append(results, res)
	}

	return results, nil
}

func runSweepStep(ctx context.Context, sim *shot.Simulator, cfg *config.Config, log *slog.Logger) (*sweep.Result, error) {
	field, err := sweep.ParseField(cfg.Sweep.Field)
	if err != nil {
		return nil, err
	}
	opts, err := cfg.DriverOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts, sweep.WithLogger(log))
	return sweep.NewDriver(sim, opts...).Run(ctx, cfg.Params, field, cfg.Sweep.Range)
}

func save(path string, res StepResult) error {
	var write func(w io.Writer) error
	switch {
	case res.Sweep != nil:
		write = func(w io.Writer) error { return export.WriteSweepCSV(w, res.Sweep) }
	case res.Shot != nil:
		write = func(w io.Writer) error { return export.WriteShotCSV(w, res.Shot.Result) }
	default:
		return nil
	}

	w, err := export.Create(path)
	if err != nil {
		return err
	}
	if err := write(w); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
