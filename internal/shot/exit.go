package shot

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/railsim/internal/physics"
)

// Exit is the state of the projectile at the muzzle.
type Exit struct {
	Index   int
	Time    float64 // s
	Speed   float64 // m/s
	Voltage float64 // V
	Current float64 // A
}

// ExtractExit returns the first sample whose position is strictly greater
// than gunLength.
func ExtractExit(res *Result, gunLength float64) (Exit, error) {
	i, err := exitIndex(res, gunLength)
	if err != nil {
		return Exit{}, err
	}
	s := res.Sample(i)
	return Exit{
		Index:   i,
		Time:    s.Time,
		Speed:   s.Speed,
		Voltage: s.Voltage,
		Current: s.Current,
	}, nil
}

// InterpolateExit locates the crossing of gunLength between the two
// samples that straddle it and interpolates every series linearly.
// Index is the first sample past the muzzle, as in ExtractExit.
func InterpolateExit(res *Result, gunLength float64) (Exit, error) {
	i, err := exitIndex(res, gunLength)
	if err != nil {
		return Exit{}, err
	}
	if i == 0 {
		return ExtractExit(res, gunLength)
	}

	a, b := res.Sample(i-1), res.Sample(i)
	f := (gunLength - a.Position) / (b.Position - a.Position)
	lerp := func(x, y float64) float64 { return x + f*(y-x) }

	return Exit{
		Index:   i,
		Time:    lerp(a.Time, b.Time),
		Speed:   lerp(a.Speed, b.Speed),
		Voltage: lerp(a.Voltage, b.Voltage),
		Current: lerp(a.Current, b.Current),
	}, nil
}

func exitIndex(res *Result, gunLength float64) (int, error) {
	if math.IsNaN(gunLength) || math.IsInf(gunLength, 0) || gunLength < 0 {
		return 0, &physics.ParamError{Field: "barrel_length", Value: gunLength, Reason: "must be finite and not negative"}
	}
	for i, x := range res.Position {
		if x > gunLength {
			return i, nil
		}
	}

	maxPos := math.NaN()
	if len(res.Position) > 0 {
		maxPos = floats.Max(res.Position)
	}
	return 0, &ExitError{GunLength: gunLength, MaxPosition: maxPos}
}
