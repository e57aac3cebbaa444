package physics

import (
	"math"

	"github.com/san-kum/railsim/internal/dynamo"
)

// Indices into the normalized state vector.
const (
	IdxVelocity = iota
	IdxPosition
	IdxVoltage
	IdxCurrent
	StateDim
)

// Normalization holds the constants derived from one Params value. It is
// only built by Normalize, so it never outlives the parameters it was
// computed from.
type Normalization struct {
	GasMoles            float64 // mol
	GasMass             float64 // kg
	InductancePerLength float64 // H/m, L′
	Omega0              float64 // rad/s, 1/√(L₀·C)
	Drive               float64 // Q, dimensionless

	SpeedScale    float64 // m/s per unit velocity
	PositionScale float64 // m per unit position
	VoltageScale  float64 // V per unit voltage
	CurrentScale  float64 // A per unit current
}

// Normalize validates p and derives its normalization constants.
func Normalize(p Params) (Normalization, error) {
	if err := p.Validate(); err != nil {
		return Normalization{}, err
	}

	moles := p.GasMoles()
	mass := p.MassNumber * AtomicMassUnit * moles * Avogadro
	lPrime := InductancePerLengthCoeff * math.Log(p.OuterDiameter/p.InnerDiameter)
	omega0 := 1.0 / math.Sqrt(p.Inductance*p.Capacitance)

	coupling := lPrime * p.Capacitance * p.Voltage
	drive := coupling * coupling / (2.0 * mass * p.Inductance)

	return Normalization{
		GasMoles:            moles,
		GasMass:             mass,
		InductancePerLength: lPrime,
		Omega0:              omega0,
		Drive:               drive,
		SpeedScale:          1.0 / (lPrime * math.Sqrt(p.Capacitance/p.Inductance)),
		PositionScale:       p.Inductance / lPrime,
		VoltageScale:        p.Voltage,
		CurrentScale:        p.Capacitance * p.Voltage * omega0,
	}, nil
}

// InitialState is the normalized state at τ = 0: at rest, fully charged,
// no current.
func InitialState() dynamo.State {
	return dynamo.State{0, 0, 1, 0}
}

// NormalizedTime maps physical times to τ = ω₀·t.
func (n Normalization) NormalizedTime(t []float64) []float64 {
	tau := make([]float64, len(t))
	for i, v := range t {
		tau[i] = v * n.Omega0
	}
	return tau
}

// TimeScale is the length of one unit of τ in seconds, 1/ω₀.
func (n Normalization) TimeScale() float64 {
	return 1.0 / n.Omega0
}

// PhysicalTime maps τ back to seconds.
func (n Normalization) PhysicalTime(tau float64) float64 {
	return tau / n.Omega0
}

// Denormalize converts a normalized state into SI speed, position,
// voltage and current.
func (n Normalization) Denormalize(x dynamo.State) (speed, position, voltage, current float64) {
	return x[IdxVelocity] * n.SpeedScale,
		x[IdxPosition] * n.PositionScale,
		x[IdxVoltage] * n.VoltageScale,
		x[IdxCurrent] * n.CurrentScale
}

// Launcher returns the dimensionless equations of motion for these
// constants.
func (n Normalization) Launcher() *Launcher {
	return NewLauncher(n.Drive)
}
