package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/san-kum/railsim/internal/config"
	"github.com/san-kum/railsim/internal/physics"
)

type paramFlag struct {
	name  string
	usage string
	field func(p *physics.Params) *float64
}

var paramFlags = []paramFlag{
	{"capacitance", "capacitance (F)", func(p *physics.Params) *float64 { return &p.Capacitance }},
	{"voltage", "charging voltage (V)", func(p *physics.Params) *float64 { return &p.Voltage }},
	{"inductance", "circuit inductance without barrel (H)", func(p *physics.Params) *float64 { return &p.Inductance }},
	{"inner-diameter", "inner electrode diameter (m)", func(p *physics.Params) *float64 { return &p.InnerDiameter }},
	{"outer-diameter", "outer electrode diameter (m)", func(p *physics.Params) *float64 { return &p.OuterDiameter }},
	{"length", "barrel length (m)", func(p *physics.Params) *float64 { return &p.BarrelLength }},
	{"valve-volume", "valve volume (m³)", func(p *physics.Params) *float64 { return &p.ValveVolume }},
	{"pressure", "valve pressure (Pa)", func(p *physics.Params) *float64 { return &p.ValvePressure }},
	{"mass-number", "gas particle mass (amu)", func(p *physics.Params) *float64 { return &p.MassNumber }},
	{"temperature", "gas temperature (K)", func(p *physics.Params) *float64 { return &p.GasTemperature }},
	{"dt", "time step (s)", func(p *physics.Params) *float64 { return &p.TimeStep }},
	{"duration", "simulated duration (s)", func(p *physics.Params) *float64 { return &p.Duration }},
}

// addParamFlags registers one flag per physical input, defaulting to
// physics.DefaultParams.
func addParamFlags(fs *pflag.FlagSet) {
	defaults := physics.DefaultParams()
	for _, f := range paramFlags {
		fs.Float64(f.name, *f.field(&defaults), f.usage)
	}
}

// loadConfig resolves the configuration in order: fallback, --preset,
// --config, then explicitly set flags.
func loadConfig(cmd *cobra.Command, fallback *config.Config) (*config.Config, error) {
	cfg := fallback
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	fs := cmd.Flags()
	for _, f := range paramFlags {
		if !fs.Changed(f.name) {
			continue
		}
		v, err := fs.GetFloat64(f.name)
		if err != nil {
			return nil, err
		}
		*f.field(&cfg.Params) = v
	}
	if fs.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if fs.Changed("interpolate") {
		v, err := fs.GetBool("interpolate")
		if err != nil {
			return nil, err
		}
		cfg.InterpolateExit = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
