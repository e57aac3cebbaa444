package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/railsim/internal/physics"
	"github.com/san-kum/railsim/internal/shot"
)

func ringing(n int, dt, freq, phase float64) *shot.Result {
	p := physics.DefaultParams()
	p.TimeStep = dt
	res := &shot.Result{Params: p}
	for i := 0; i < n; i++ {
		t := float64(i) * dt
		res.Time = append(res.Time, t)
		res.Current = append(res.Current, math.Sin(2*math.Pi*freq*t+phase))
		res.Voltage = append(res.Voltage, math.Cos(2*math.Pi*freq*t+phase))
		res.Position = append(res.Position, t)
		res.Speed = append(res.Speed, 1)
	}
	return res
}

func TestCurrentSpectrumDominant(t *testing.T) {
	res := ringing(1000, 1e-7, 50e3, 0.5)

	f, ok := CurrentSpectrum(res).Dominant()
	if !ok {
		t.Fatal("expected a dominant frequency")
	}
	if math.Abs(f-50e3) > 1 {
		t.Errorf("dominant frequency = %g, want 50 kHz", f)
	}
}

func TestSpectrumDegenerate(t *testing.T) {
	if _, ok := SpectrumOf([]float64{1}, 1e-7).Dominant(); ok {
		t.Error("single sample should have no dominant frequency")
	}
	if _, ok := SpectrumOf([]float64{2, 2, 2, 2}, 1e-7).Dominant(); ok {
		t.Error("constant series should have no dominant frequency")
	}
}

func TestZeroCrossings(t *testing.T) {
	res := ringing(1000, 1e-7, 50e3, 0.5)

	zs := ZeroCrossings(res.Time, res.Current)
	if len(zs) != 10 {
		t.Fatalf("expected 10 crossings, got %d", len(zs))
	}
	first := (math.Pi - 0.5) / (2 * math.Pi * 50e3)
	if math.Abs(zs[0]-first) > 1e-8 {
		t.Errorf("first crossing at %g, want %g", zs[0], first)
	}
	for i := 1; i < len(zs); i++ {
		if math.Abs(zs[i]-zs[i-1]-10e-6) > 1e-8 {
			t.Errorf("crossings %d and %d are %g apart", i-1, i, zs[i]-zs[i-1])
		}
	}

	if got := ZeroCrossings([]float64{0, 1, 2}, []float64{-1, 0, 1}); len(got) != 1 || got[0] != 1 {
		t.Errorf("exact zero should count once, got %v", got)
	}
}

func TestPortraitASCII(t *testing.T) {
	res := ringing(200, 1e-7, 50e3, 0)

	out := CircuitPortrait(res).ASCII(40, 12)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 13 {
		t.Fatalf("expected title and 12 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "current (A) vs voltage (V)") {
		t.Errorf("unexpected title %q", lines[0])
	}
	if !strings.Contains(out, "•") || !strings.Contains(out, "│") || !strings.Contains(out, "─") {
		t.Error("expected points and both axes")
	}

	if (&Portrait{}).ASCII(40, 12) != "" {
		t.Error("empty portrait should render nothing")
	}
}

func TestPortraitOfShot(t *testing.T) {
	sim, err := shot.New("rk4")
	if err != nil {
		t.Fatal(err)
	}
	res, err := sim.Simulate(t.Context(), physics.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}

	out := MechanicalPortrait(res).ASCII(60, 15)
	if !strings.Contains(out, "•") {
		t.Error("expected plotted points")
	}
	if !strings.Contains(CircuitPortrait(res).ASCII(60, 15), "•") {
		t.Error("expected plotted points")
	}
}
