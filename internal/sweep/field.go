package sweep

import (
	"fmt"
	"strings"

	"github.com/san-kum/railsim/internal/physics"
)

// Field is a physical input that can be swept.
type Field int

const (
	Capacitance Field = iota
	BarrelLength
	ValvePressure
	Voltage
)

type fieldInfo struct {
	name    string
	label   string
	unit    string
	scale   float64
	aliases []string
}

var fields = [...]fieldInfo{
	Capacitance:   {"capacitance", "Capacitance", "μF", 1e6, []string{"c", "cap"}},
	BarrelLength:  {"length", "Barrel length", "cm", 1e2, []string{"l", "barrel", "barrel_length", "gun_length"}},
	ValvePressure: {"pressure", "Valve pressure", "atm", 1e-5, []string{"p", "valve_pressure"}},
	Voltage:       {"voltage", "Voltage", "kV", 1e-3, []string{"u", "v", "u0"}},
}

// Fields lists every sweepable input.
func Fields() []Field {
	return []Field{Capacitance, BarrelLength, ValvePressure, Voltage}
}

// ParseField resolves a field by name or alias, ignoring case.
func ParseField(name string) (Field, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, f := range Fields() {
		info := fields[f]
		if name == info.name {
			return f, nil
		}
		for _, a := range info.aliases {
			if name == a {
				return f, nil
			}
		}
	}
	return 0, fmt.Errorf("unknown sweep field: %q", name)
}

func (f Field) valid() bool { return f >= Capacitance && f <= Voltage }

func (f Field) String() string {
	if !f.valid() {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fields[f].name
}

// Label is the axis title used in plots.
func (f Field) Label() string { return fields[f].label }

// Unit is the display unit of Scale·value.
func (f Field) Unit() string { return fields[f].unit }

// Scale converts an SI value to the display unit.
func (f Field) Scale() float64 { return fields[f].scale }

// Apply returns a copy of p with the field set to v (SI).
func (f Field) Apply(p physics.Params, v float64) physics.Params {
	switch f {
	case Capacitance:
		p.Capacitance = v
	case BarrelLength:
		p.BarrelLength = v
	case ValvePressure:
		p.ValvePressure = v
	case Voltage:
		p.Voltage = v
	}
	return p
}

// Get reads the field from p.
func (f Field) Get(p physics.Params) float64 {
	switch f {
	case Capacitance:
		return p.Capacitance
	case BarrelLength:
		return p.BarrelLength
	case ValvePressure:
		return p.ValvePressure
	case Voltage:
		return p.Voltage
	}
	return 0
}
