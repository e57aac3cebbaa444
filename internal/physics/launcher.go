package physics

import (
	"math"

	"github.com/san-kum/railsim/internal/dynamo"
)

// Launcher implements the normalized launcher equations.
// State: [v, x, U, I]
// Equations:
//
//	dv/dτ = Q·I²
//	dx/dτ = v
//	dU/dτ = -I
//	dI/dτ = (U - v·I) / (1 + x)
type Launcher struct {
	drive float64 // Q
}

func NewLauncher(drive float64) *Launcher {
	return &Launcher{drive: drive}
}

func (l *Launcher) StateDim() int { return StateDim }

func (l *Launcher) Derive(state dynamo.State, _ float64) dynamo.State {
	v, x, u, i := state[IdxVelocity], state[IdxPosition], state[IdxVoltage], state[IdxCurrent]

	return dynamo.State{
		l.drive * i * i,
		v,
		-i,
		(u - v*i) / (1 + x),
	}
}

// Energy implements dynamo.Hamiltonian. It is ½ at τ = 0.
func (l *Launcher) Energy(state dynamo.State) float64 {
	v, x, u, i := state[IdxVelocity], state[IdxPosition], state[IdxVoltage], state[IdxCurrent]
	return 0.5*u*u + 0.5*(1+x)*i*i + v*v/(4*l.drive)
}

// InDomain implements dynamo.Bounded. The armature never moves backwards
// from the breech, so a negative position can only come from a failing
// integration.
func (l *Launcher) InDomain(state dynamo.State) bool {
	x := state[IdxPosition]
	return !math.IsNaN(x) && x >= 0
}
