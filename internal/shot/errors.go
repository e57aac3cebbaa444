package shot

import (
	"errors"
	"fmt"
)

var (
	ErrProjectileDidNotExit = errors.New("shot: projectile did not exit the barrel")
	ErrDegenerateEnergy     = errors.New("shot: degenerate stored energy")

	// ErrNonPhysicalEfficiency reports a muzzle kinetic energy above the
	// stored energy.
	ErrNonPhysicalEfficiency = errors.New("shot: efficiency above 100 %")
)

// ExitError reports how far the projectile got when it never passed the
// muzzle within the simulated duration.
type ExitError struct {
	GunLength   float64
	MaxPosition float64
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("projectile reached %.4g m of a %.4g m barrel", e.MaxPosition, e.GunLength)
}

func (e *ExitError) Unwrap() error {
	return ErrProjectileDidNotExit
}
