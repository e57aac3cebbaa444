package physics

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParameter reports a physical input outside its valid range.
var ErrInvalidParameter = errors.New("physics: invalid parameter")

// gridEpsilon absorbs floating-point noise in Duration/TimeStep so that an
// exact multiple never gains a spurious trailing sample.
const gridEpsilon = 1e-9

// Params is one complete set of physical inputs for a shot, in SI units.
type Params struct {
	Capacitance    float64 `yaml:"capacitance" json:"capacitance"`         // F
	Voltage        float64 `yaml:"voltage" json:"voltage"`                 // V, initial charge
	Inductance     float64 `yaml:"inductance" json:"inductance"`           // H, circuit without barrel
	InnerDiameter  float64 `yaml:"inner_diameter" json:"inner_diameter"`   // m
	OuterDiameter  float64 `yaml:"outer_diameter" json:"outer_diameter"`   // m
	BarrelLength   float64 `yaml:"barrel_length" json:"barrel_length"`     // m
	ValveVolume    float64 `yaml:"valve_volume" json:"valve_volume"`       // m³
	ValvePressure  float64 `yaml:"valve_pressure" json:"valve_pressure"`   // Pa
	MassNumber     float64 `yaml:"mass_number" json:"mass_number"`         // amu per gas particle
	GasTemperature float64 `yaml:"gas_temperature" json:"gas_temperature"` // K
	TimeStep       float64 `yaml:"time_step" json:"time_step"`             // s
	Duration       float64 `yaml:"duration" json:"duration"`               // s
}

// DefaultParams returns the reference launcher: 560 μF at 2 kV, 270 nH,
// a 10/40 mm coaxial barrel 1 m long and 1 cm³ of hydrogen at 1 atm.
func DefaultParams() Params {
	return Params{
		Capacitance:    560e-6,
		Voltage:        2e3,
		Inductance:     270e-9,
		InnerDiameter:  10e-3,
		OuterDiameter:  40e-3,
		BarrelLength:   1.0,
		ValveVolume:    1e-6,
		ValvePressure:  1e5,
		MassNumber:     2.0,
		GasTemperature: 300.0,
		TimeStep:       1e-7,
		Duration:       100e-6,
	}
}

// ParamError describes the first violated constraint of a Params value.
type ParamError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid %s = %g: %s", e.Field, e.Value, e.Reason)
}

func (e *ParamError) Unwrap() error {
	return ErrInvalidParameter
}

type field struct {
	name  string
	value float64
}

func (p Params) fields() []field {
	return []field{
		{"capacitance", p.Capacitance},
		{"voltage", p.Voltage},
		{"inductance", p.Inductance},
		{"inner_diameter", p.InnerDiameter},
		{"outer_diameter", p.OuterDiameter},
		{"barrel_length", p.BarrelLength},
		{"valve_volume", p.ValveVolume},
		{"valve_pressure", p.ValvePressure},
		{"mass_number", p.MassNumber},
		{"gas_temperature", p.GasTemperature},
		{"time_step", p.TimeStep},
		{"duration", p.Duration},
	}
}

// Set assigns the input named by its yaml key, e.g. "valve_pressure".
func (p *Params) Set(name string, v float64) error {
	ptr, ok := p.lookup(name)
	if !ok {
		return fmt.Errorf("unknown parameter: %s", name)
	}
	*ptr = v
	return nil
}

// Get reads the input named by its yaml key.
func (p Params) Get(name string) (float64, bool) {
	ptr, ok := p.lookup(name)
	if !ok {
		return 0, false
	}
	return *ptr, true
}

// Names lists the yaml keys of every input in declaration order.
func Names() []string {
	fs := Params{}.fields()
	names := make([]string, len(fs))
	for i, f := range fs {
		names[i] = f.name
	}
	return names
}

func (p *Params) lookup(name string) (*float64, bool) {
	switch name {
	case "capacitance":
		return &p.Capacitance, true
	case "voltage":
		return &p.Voltage, true
	case "inductance":
		return &p.Inductance, true
	case "inner_diameter":
		return &p.InnerDiameter, true
	case "outer_diameter":
		return &p.OuterDiameter, true
	case "barrel_length":
		return &p.BarrelLength, true
	case "valve_volume":
		return &p.ValveVolume, true
	case "valve_pressure":
		return &p.ValvePressure, true
	case "mass_number":
		return &p.MassNumber, true
	case "gas_temperature":
		return &p.GasTemperature, true
	case "time_step":
		return &p.TimeStep, true
	case "duration":
		return &p.Duration, true
	}
	return nil, false
}

// Validate checks that every input is finite and strictly positive, that
// the time step is shorter than the duration and that the outer diameter
// exceeds the inner one.
func (p Params) Validate() error {
	for _, f := range p.fields() {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return &ParamError{Field: f.name, Value: f.value, Reason: "must be finite"}
		}
		if f.value <= 0 {
			return &ParamError{Field: f.name, Value: f.value, Reason: "must be positive"}
		}
	}
	if p.TimeStep >= p.Duration {
		return &ParamError{
			Field:  "time_step",
			Value:  p.TimeStep,
			Reason: fmt.Sprintf("must be smaller than duration %g", p.Duration),
		}
	}
	if p.OuterDiameter <= p.InnerDiameter {
		return &ParamError{
			Field:  "outer_diameter",
			Value:  p.OuterDiameter,
			Reason: fmt.Sprintf("must exceed inner diameter %g", p.InnerDiameter),
		}
	}
	return nil
}

// Steps returns the number of samples on the time grid [0, Duration) with
// spacing TimeStep. The start is included and the end excluded.
func (p Params) Steps() int {
	if p.TimeStep <= 0 || p.Duration <= 0 {
		return 0
	}
	n := math.Ceil(p.Duration/p.TimeStep - gridEpsilon)
	if n < 0 || math.IsNaN(n) {
		return 0
	}
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(n)
}

// TimeGrid returns the physical sample times t_i = i·TimeStep.
func (p Params) TimeGrid() []float64 {
	n := p.Steps()
	grid := make([]float64, n)
	for i := range grid {
		grid[i] = float64(i) * p.TimeStep
	}
	return grid
}

// GasMoles is the amount of propellant in the valve, ν = P·V/(R·T).
func (p Params) GasMoles() float64 {
	return p.ValvePressure * p.ValveVolume / (GasConstant * p.GasTemperature)
}

// StoredEnergy is the initial capacitor energy E₀ = C·U₀²/2.
func (p Params) StoredEnergy() float64 {
	return 0.5 * p.Capacitance * p.Voltage * p.Voltage
}
