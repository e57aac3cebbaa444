package export

import (
	"fmt"
	"io"
	"math"
	"strings"
)

// Chart describes a single-series SVG line chart.
type Chart struct {
	Title  string
	XLabel string
	YLabel string
	Width  int
	Height int
	Stroke string
}

func (c Chart) withDefaults() Chart {
	if c.Width <= 0 {
		c.Width = 800
	}
	if c.Height <= 0 {
		c.Height = 400
	}
	if c.Stroke == "" {
		c.Stroke = "#00ff00"
	}
	return c
}

const svgMargin = 50.0

// WriteSVG draws ys against xs. NaN values break the line, so failed sweep
// points show up as gaps.
func WriteSVG(w io.Writer, c Chart, xs, ys []float64) error {
	if len(xs) != len(ys) {
		return fmt.Errorf("series length mismatch: %d x values, %d y values", len(xs), len(ys))
	}
	c = c.withDefaults()

	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		minX, maxX = math.Min(minX, xs[i]), math.Max(maxX, xs[i])
		minY, maxY = math.Min(minY, ys[i]), math.Max(maxY, ys[i])
	}
	if math.IsInf(minX, 1) {
		return fmt.Errorf("no finite points to draw")
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.05
	rangeY *= 1.1

	plotW := float64(c.Width) - 2*svgMargin
	plotH := float64(c.Height) - 2*svgMargin

	var sb strings.Builder

	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#cccccc" font-family="monospace" font-size="12">
<text x="%.0f" y="20" text-anchor="middle">%s</text>
<text x="%.0f" y="%d" text-anchor="middle">%s</text>
<text x="15" y="%.0f" text-anchor="middle" transform="rotate(-90 15 %.0f)">%s</text>
<text x="%.0f" y="%.0f" text-anchor="start">%.4g</text>
<text x="%.0f" y="%.0f" text-anchor="end">%.4g</text>
</g>
<rect x="%.0f" y="%.0f" width="%.0f" height="%.0f" fill="none" stroke="#444444"/>
`,
		c.Width, c.Height, c.Width, c.Height,
		float64(c.Width)/2, escape(c.Title),
		float64(c.Width)/2, c.Height-10, escape(c.XLabel),
		float64(c.Height)/2, float64(c.Height)/2, escape(c.YLabel),
		svgMargin, float64(c.Height)-svgMargin+15, minX,
		float64(c.Width)-svgMargin, float64(c.Height)-svgMargin+15, maxX,
		svgMargin, svgMargin, plotW, plotH)

	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="`, c.Stroke)
	pen := false
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			pen = false
			continue
		}
		x := svgMargin + (xs[i]-minX)/rangeX*plotW
		y := svgMargin + plotH - (ys[i]-minY)/rangeY*plotH
		if pen {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " M%.1f,%.1f", x, y)
			pen = true
		}
	}
	sb.WriteString(`"/>
</svg>
`)

	_, err := io.WriteString(w, sb.String())
	return err
}

var svgEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escape(s string) string { return svgEscaper.Replace(s) }
