package analysis

import (
	"math"
	"strings"

	"github.com/san-kum/railsim/internal/shot"
)

// Portrait is a trajectory in a 2D phase plane.
type Portrait struct {
	XLabel, YLabel string
	X, Y           []float64
}

// CircuitPortrait plots capacitor voltage against current.
func CircuitPortrait(res *shot.Result) *Portrait {
	return &Portrait{XLabel: "voltage (V)", YLabel: "current (A)", X: res.Voltage, Y: res.Current}
}

// MechanicalPortrait plots projectile position against speed.
func MechanicalPortrait(res *shot.Result) *Portrait {
	return &Portrait{XLabel: "position (m)", YLabel: "speed (m/s)", X: res.Position, Y: res.Speed}
}

// ASCII renders the portrait on a width×height character grid with 10%
// padding, drawing the axes where they cross the visible area.
func (p *Portrait) ASCII(width, height int) string {
	n := min(len(p.X), len(p.Y))
	if n == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for i := 0; i < n; i++ {
		if !finite(p.X[i]) || !finite(p.Y[i]) {
			continue
		}
		minX, maxX = math.Min(minX, p.X[i]), math.Max(maxX, p.X[i])
		minY, maxY = math.Min(minY, p.Y[i]), math.Max(maxY, p.Y[i])
	}
	if math.IsInf(minX, 1) {
		return ""
	}

	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX, rangeY = maxX-minX, maxY-minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	col := func(x float64) int { return int((x - minX) / rangeX * float64(width-1)) }
	row := func(y float64) int { return height - 1 - int((y-minY)/rangeY*float64(height-1)) }

	for i := 0; i < n; i++ {
		if !finite(p.X[i]) || !finite(p.Y[i]) {
			continue
		}
		r, c := row(p.Y[i]), col(p.X[i])
		if r >= 0 && r < height && c >= 0 && c < width {
			canvas[r][c] = '•'
		}
	}

	if minX <= 0 && maxX >= 0 {
		c := col(0)
		for r := 0; r < height; r++ {
			if canvas[r][c] == ' ' {
				canvas[r][c] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		r := row(0)
		for c := 0; c < width; c++ {
			if canvas[r][c] == ' ' {
				canvas[r][c] = '─'
			}
		}
	}

	var sb strings.Builder
	sb.WriteString(p.YLabel + " vs " + p.XLabel + "\n")
	for _, line := range canvas {
		sb.WriteString(string(line))
		sb.WriteRune('\n')
	}
	return sb.String()
}

// ZeroCrossings returns the times at which ys changes sign, linearly
// interpolated between samples. A sample that is exactly zero counts once.
func ZeroCrossings(ts, ys []float64) []float64 {
	var out []float64
	n := min(len(ts), len(ys))
	for i := 1; i < n; i++ {
		prev, curr := ys[i-1], ys[i]
		if !(prev < 0 && curr >= 0) && !(prev > 0 && curr <= 0) {
			continue
		}
		frac := prev / (prev - curr)
		if math.IsNaN(frac) || math.IsInf(frac, 0) {
			frac = 0.5
		}
		out = append(out, ts[i-1]+frac*(ts[i]-ts[i-1]))
	}
	return out
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
