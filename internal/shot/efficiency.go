package shot

import (
	"fmt"
	"math"

	"github.com/san-kum/railsim/internal/physics"
)

// Efficiency compares the kinetic energy of the gas at the muzzle with the
// energy initially stored in the capacitor bank.
type Efficiency struct {
	GasMoles      float64 // mol
	GasMass       float64 // kg
	KineticEnergy float64 // J
	StoredEnergy  float64 // J
	Percent       float64
}

func ComputeEfficiency(exit Exit, p physics.Params) (Efficiency, error) {
	moles := p.GasMoles()
	mass := p.MassNumber * moles * physics.MolarMassScale
	ke := 0.5 * mass * exit.Speed * exit.Speed
	stored := p.StoredEnergy()

	if stored == 0 || math.IsNaN(stored) || math.IsInf(stored, 0) {
		return Efficiency{}, fmt.Errorf("%w: E0 = %g J", ErrDegenerateEnergy, stored)
	}

	pct := 100 * ke / stored
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return Efficiency{}, fmt.Errorf("%w: efficiency = %g", ErrDegenerateEnergy, pct)
	}
	if pct > 100 {
		return Efficiency{}, fmt.Errorf("%w: kinetic energy %.4g J exceeds stored %.4g J", ErrNonPhysicalEfficiency, ke, stored)
	}

	return Efficiency{
		GasMoles:      moles,
		GasMass:       mass,
		KineticEnergy: ke,
		StoredEnergy:  stored,
		Percent:       pct,
	}, nil
}
