package optim

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/san-kum/railsim/internal/physics"
	"github.com/san-kum/railsim/internal/sweep"
)

// ErrNoExit is returned when no grid point produced a usable shot.
var ErrNoExit = errors.New("optim: no grid point exited the barrel")

// Axis is one swept dimension of the grid.
type Axis struct {
	Field sweep.Field
	Range sweep.Range
}

// ParseAxis reads "field=min:max:step", values in SI units.
func ParseAxis(s string) (Axis, error) {
	name, bounds, ok := strings.Cut(s, "=")
	if !ok {
		return Axis{}, fmt.Errorf("axis %q: expected field=min:max:step", s)
	}
	field, err := sweep.ParseField(strings.TrimSpace(name))
	if err != nil {
		return Axis{}, err
	}

	parts := strings.Split(bounds, ":")
	if len(parts) != 3 {
		return Axis{}, fmt.Errorf("axis %q: expected min:max:step", s)
	}
	var vals [3]float64
	for i, p := range parts {
		vals[i], err = strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Axis{}, fmt.Errorf("axis %q: %w", s, err)
		}
	}

	a := Axis{Field: field, Range: sweep.Range{Min: vals[0], Max: vals[1], Step: vals[2]}}
	if err := a.Range.Validate(); err != nil {
		return Axis{}, fmt.Errorf("axis %s: %w", field, err)
	}
	return a, nil
}

// GridSearch maximizes efficiency over the cartesian product of its axes.
// The innermost axis runs as one sweep per combination of the outer ones.
type GridSearch struct {
	axes []Axis
}

func NewGridSearch(axes ...Axis) (*GridSearch, error) {
	if len(axes) == 0 {
		return nil, errors.New("optim: at least one axis is required")
	}
	seen := make(map[sweep.Field]bool, len(axes))
	for _, a := range axes {
		if seen[a.Field] {
			return nil, fmt.Errorf("optim: field %s appears twice", a.Field)
		}
		seen[a.Field] = true
		if err := a.Range.Validate(); err != nil {
			return nil, fmt.Errorf("axis %s: %w", a.Field, err)
		}
	}
	return &GridSearch{axes: axes}, nil
}

// Best is the most efficient grid point found.
type Best struct {
	Params    physics.Params
	Point     sweep.Point
	Evaluated int
	Exited    int
}

func (g *GridSearch) Search(ctx context.Context, d *sweep.Driver, base physics.Params) (*Best, error) {
	best := &Best{}
	found := false

	var walk func(depth int, p physics.Params) error
	walk = func(depth int, p physics.Params) error {
		axis := g.axes[depth]
		if depth == len(g.axes)-1 {
			res, err := d.Run(ctx, p, axis.Field, axis.Range)
			if err != nil {
				return err
			}
			best.Evaluated += len(res.Points)
			best.Exited += len(res.Succeeded())

			pt, ok := res.Best()
			if ok && (!found || pt.Efficiency.Percent > best.Point.Efficiency.Percent) {
				best.Point = pt
				best.Params = axis.Field.Apply(p, pt.Value)
				found = true
			}
			return nil
		}

		values, err := axis.Range.Values()
		if err != nil {
			return err
		}
		for _, v := range values {
			if err := walk(depth+1, axis.Field.Apply(p, v)); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(0, base); err != nil {
		return nil, err
	}
	if !found {
		return best, ErrNoExit
	}
	return best, nil
}
