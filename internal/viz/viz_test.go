package viz

import (
	"errors"
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/railsim/internal/shot"
	"github.com/san-kum/railsim/internal/sweep"
)

func TestChart(t *testing.T) {
	out := Chart([]float64{1000, 2000, math.NaN(), 4000}, 1e-3, "speed (km/s)")
	if out == "" {
		t.Fatal("expected a chart")
	}
	if !strings.Contains(out, "speed (km/s)") {
		t.Error("caption missing")
	}
}

func TestChartNothingToPlot(t *testing.T) {
	if out := Chart([]float64{math.NaN(), math.Inf(1)}, 1, "x"); out != "" {
		t.Errorf("expected empty chart, got %q", out)
	}
	if out := Chart(nil, 1, "x"); out != "" {
		t.Errorf("expected empty chart, got %q", out)
	}
}

func TestShotCharts(t *testing.T) {
	res := &shot.Result{
		Time:     []float64{0, 1e-6, 2e-6},
		Position: []float64{0, 0.1, 0.4},
		Speed:    []float64{0, 1e4, 2e4},
		Voltage:  []float64{2000, 1000, 0},
		Current:  []float64{0, 5e4, 3e4},
	}
	if got := len(ShotCharts(res)); got != 4 {
		t.Errorf("expected 4 charts, got %d", got)
	}
}

func TestSweepChartsSkipsAllFailed(t *testing.T) {
	fail := &sweep.PointError{Field: sweep.Capacitance, Value: 1, Err: shot.ErrProjectileDidNotExit}
	res := &sweep.Result{
		Field:  sweep.Capacitance,
		Points: []sweep.Point{{Value: 1e-4, Err: fail}, {Value: 2e-4, Err: fail}},
	}
	if got := SweepCharts(res); len(got) != 0 {
		t.Errorf("expected no charts, got %d", len(got))
	}

	res.Points[1] = sweep.Point{
		Value:      2e-4,
		Exit:       shot.Exit{Speed: 1e4, Voltage: 100, Current: 1e3},
		Efficiency: shot.Efficiency{KineticEnergy: 10, Percent: 5},
	}
	if got := SweepCharts(res); len(got) != 5 {
		t.Errorf("expected 5 charts, got %d", len(got))
	}
}

func TestSummary(t *testing.T) {
	out := Summary("exit", []Row{{"speed", "109.6 km/s"}, {"efficiency", "43.0 %"}})
	for _, want := range []string{"exit", "speed", "109.6 km/s", "efficiency", "43.0 %"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q", want)
		}
	}
}

func TestProgressBar(t *testing.T) {
	for _, f := range []float64{-1, 0, 0.5, 1, 2} {
		bar := ProgressBar(f, 10)
		if n := strings.Count(bar, "█") + strings.Count(bar, "░"); n != 10 {
			t.Errorf("fraction %g: expected 10 cells, got %d", f, n)
		}
	}
}

func TestProgressModel(t *testing.T) {
	cancelled := false
	var m tea.Model = newProgressModel("sweep", func() { cancelled = true })

	m, _ = m.Update(ProgressMsg{Done: 3, Total: 10})
	pm := m.(progressModel)
	if pm.done != 3 || pm.total != 10 || pm.fraction() != 0.3 {
		t.Errorf("unexpected progress state %+v", pm)
	}
	if !strings.Contains(pm.View(), "3/10") {
		t.Error("view does not show progress count")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !cancelled || !m.(progressModel).interrupted {
		t.Error("ctrl+c should cancel the work")
	}

	m, cmd := m.Update(FinishedMsg{Err: errors.New("boom")})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if !strings.Contains(m.View(), "boom") {
		t.Error("view does not show the error")
	}
}
