package metrics

import (
	"math"

	"github.com/san-kum/railsim/internal/dynamo"
)

// Peak records the largest absolute value of one state component,
// multiplied by scale.
type Peak struct {
	name  string
	index int
	scale float64
	peak  float64
}

func NewPeak(name string, index int, scale float64) *Peak {
	return &Peak{
		name:  name,
		index: index,
		scale: scale,
	}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(x dynamo.State, t float64) {
	if p.index >= len(x) {
		return
	}
	p.peak = math.Max(p.peak, math.Abs(x[p.index]))
}

func (p *Peak) Value() float64 {
	return p.peak * p.scale
}

func (p *Peak) Reset() {
	p.peak = 0
}
