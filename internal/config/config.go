package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/railsim/internal/integrators"
	"github.com/san-kum/railsim/internal/physics"
	"github.com/san-kum/railsim/internal/shot"
	"github.com/san-kum/railsim/internal/sweep"
)

type Config struct {
	Integrator      string         `yaml:"integrator"`
	Workers         int            `yaml:"workers"`
	Policy          string         `yaml:"policy"`
	InterpolateExit bool           `yaml:"interpolate_exit"`
	MaxSteps        int            `yaml:"max_steps"`
	Params          physics.Params `yaml:"params"`
	Sweep           SweepConfig    `yaml:"sweep"`
}

type SweepConfig struct {
	Field       string `yaml:"field"`
	sweep.Range `yaml:",inline"`
}

func DefaultConfig() *Config {
	return &Config{
		Integrator: integrators.Default,
		Policy:     sweep.Mark.String(),
		MaxSteps:   shot.DefaultMaxSteps,
		Params:     physics.DefaultParams(),
	}
}

// Load reads a YAML file over DefaultConfig, so absent keys keep their
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the settings that do not depend on a particular shot.
// Physical parameters are validated when a shot is fired.
func (c *Config) Validate() error {
	if _, err := integrators.Lookup(c.Integrator); err != nil {
		return err
	}
	if _, err := sweep.ParsePolicy(c.Policy); err != nil {
		return err
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.MaxSteps <= 0 {
		return fmt.Errorf("max_steps must be positive, got %d", c.MaxSteps)
	}
	if c.Sweep.Field != "" {
		if _, err := sweep.ParseField(c.Sweep.Field); err != nil {
			return err
		}
	}
	return nil
}

// Simulator builds the shot simulator described by c.
func (c *Config) Simulator() (*shot.Simulator, error) {
	return shot.New(c.Integrator, shot.WithMaxSteps(c.MaxSteps))
}

// DriverOptions translates the sweep settings of c.
func (c *Config) DriverOptions() ([]sweep.Option, error) {
	policy, err := sweep.ParsePolicy(c.Policy)
	if err != nil {
		return nil, err
	}
	opts := []sweep.Option{sweep.WithWorkers(c.Workers), sweep.WithPolicy(policy)}
	if c.InterpolateExit {
		opts = append(opts, sweep.WithInterpolatedExit())
	}
	return opts, nil
}
