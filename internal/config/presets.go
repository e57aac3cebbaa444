package config

import (
	"sort"

	"github.com/san-kum/railsim/internal/physics"
	"github.com/san-kum/railsim/internal/sweep"
)

// Sweep presets share a fine 10 ns step over 100 μs.
func sweepParams(mutate func(p *physics.Params)) physics.Params {
	p := physics.DefaultParams()
	p.TimeStep = 1e-8
	p.Duration = 100e-6
	mutate(&p)
	return p
}

func sweepPreset(field sweep.Field, rng sweep.Range, mutate func(p *physics.Params)) *Config {
	cfg := DefaultConfig()
	cfg.Params = sweepParams(mutate)
	cfg.Sweep = SweepConfig{Field: field.String(), Range: rng}
	return cfg
}

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"capacitance": sweepPreset(sweep.Capacitance,
		sweep.Range{Min: 100e-6, Max: 650e-6, Step: 0.5e-6},
		func(p *physics.Params) { p.BarrelLength = 0.8 }),
	"voltage": sweepPreset(sweep.Voltage,
		sweep.Range{Min: 0.8e3, Max: 6e3, Step: 0.05e3},
		func(p *physics.Params) { p.BarrelLength = 0.8 }),
	"length": sweepPreset(sweep.BarrelLength,
		sweep.Range{Min: 0.2, Max: 1.0, Step: 1e-3},
		func(p *physics.Params) { p.Voltage = 1e3 }),
	"pressure": sweepPreset(sweep.ValvePressure,
		sweep.Range{Min: 0.4e5, Max: 3e5, Step: 0.05e5},
		func(p *physics.Params) { p.Voltage = 3e3; p.BarrelLength = 0.8 }),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

// PresetFor returns the sweep preset of field.
func PresetFor(field sweep.Field) *Config {
	return GetPreset(field.String())
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
