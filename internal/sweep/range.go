package sweep

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidRange = errors.New("sweep: invalid range")

// MaxPoints bounds the number of values a Range may produce.
const MaxPoints = 10_000_000

const rangeEpsilon = 1e-9

// Range is a half-open interval [Min, Max) sampled every Step.
type Range struct {
	Min  float64 `yaml:"min" json:"min"`
	Max  float64 `yaml:"max" json:"max"`
	Step float64 `yaml:"step" json:"step"`
}

func (r Range) Validate() error {
	for _, v := range []float64{r.Min, r.Max, r.Step} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: bounds and step must be finite, got [%g, %g) step %g", ErrInvalidRange, r.Min, r.Max, r.Step)
		}
	}
	if r.Step <= 0 {
		return fmt.Errorf("%w: step must be positive, got %g", ErrInvalidRange, r.Step)
	}
	if r.Min >= r.Max {
		return fmt.Errorf("%w: min %g must be below max %g", ErrInvalidRange, r.Min, r.Max)
	}
	if r.count() > MaxPoints {
		return fmt.Errorf("%w: %g points exceed limit of %d", ErrInvalidRange, r.count(), MaxPoints)
	}
	return nil
}

func (r Range) count() float64 {
	return math.Ceil((r.Max-r.Min)/r.Step - rangeEpsilon)
}

// Values returns Min + i·Step for every i that stays below Max.
func (r Range) Values() ([]float64, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	n := int(r.count())
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = r.Min + float64(i)*r.Step
	}
	return vals, nil
}
