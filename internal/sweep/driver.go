package sweep

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/san-kum/railsim/internal/dynamo"
	"github.com/san-kum/railsim/internal/physics"
	"github.com/san-kum/railsim/internal/shot"
)

// Policy decides what a failed point does to the rest of the sweep.
type Policy int

const (
	// Mark records the error on the point and keeps going.
	Mark Policy = iota
	// Abort cancels outstanding points and returns the first failure.
	Abort
)

func (p Policy) String() string {
	if p == Abort {
		return "abort"
	}
	return "mark"
}

// ParsePolicy accepts "mark" or "abort". An empty string is Mark.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "mark":
		return Mark, nil
	case "abort":
		return Abort, nil
	}
	return Mark, fmt.Errorf("unknown failure policy: %q", s)
}

// PointError ties a failure to the swept value that produced it.
type PointError struct {
	Field Field
	Value float64
	Err   error
}

func (e *PointError) Error() string {
	return fmt.Sprintf("%s = %g: %v", e.Field, e.Value, e.Err)
}

func (e *PointError) Unwrap() error { return e.Err }

// Shooter fires one shot and reduces it to exit and efficiency.
// *shot.Simulator implements it.
type Shooter interface {
	Fire(ctx context.Context, p physics.Params, interpolate bool) (*shot.Outcome, error)
}

type Driver struct {
	shooter     Shooter
	workers     int
	policy      Policy
	logger      *slog.Logger
	progress    func(done, total int)
	interpolate bool
}

type Option func(*Driver)

// WithWorkers bounds the number of concurrent shots. Zero or less uses
// GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(d *Driver) { d.workers = n }
}

func WithPolicy(p Policy) Option {
	return func(d *Driver) { d.policy = p }
}

func WithLogger(l *slog.Logger) Option {
	return func(d *Driver) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithProgress registers a callback invoked after every finished point.
// Calls are serialized.
func WithProgress(fn func(done, total int)) Option {
	return func(d *Driver) { d.progress = fn }
}

// WithInterpolatedExit interpolates the muzzle crossing instead of taking
// the first sample past it.
func WithInterpolatedExit() Option {
	return func(d *Driver) { d.interpolate = true }
}

func NewDriver(s Shooter, opts ...Option) *Driver {
	d := &Driver{
		shooter: s,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run sweeps field over rng on top of base.
func (d *Driver) Run(ctx context.Context, base physics.Params, field Field, rng Range) (*Result, error) {
	if !field.valid() {
		return nil, fmt.Errorf("unknown sweep field %d", int(field))
	}
	values, err := rng.Values()
	if err != nil {
		return nil, err
	}
	// 1 is a valid value for every sweepable field, so this only fails
	// when the rest of base is unusable.
	if err := field.Apply(base, 1).Validate(); err != nil {
		return nil, fmt.Errorf("base parameters: %w", err)
	}

	log := d.logger.With("field", field.String(), "points", len(values))
	log.Debug("sweep started", "min", rng.Min, "max", rng.Max, "step", rng.Step, "workers", d.workers, "policy", d.policy)
	start := time.Now()

	var (
		mu   sync.Mutex
		done int
	)
	finished := func() {
		if d.progress == nil {
			return
		}
		mu.Lock()
		done++
		d.progress(done, len(values))
		mu.Unlock()
	}

	points, err := dynamo.ParallelMap(ctx, len(values), d.workers, func(ctx context.Context, i int) (Point, error) {
		v := values[i]
		pt := Point{Value: v}

		out, err := d.shooter.Fire(ctx, field.Apply(base, v), d.interpolate)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				finished()
				return pt, ctxErr
			}
			pe := &PointError{Field: field, Value: v, Err: err}
			if d.policy == Abort {
				finished()
				return pt, pe
			}
			log.Warn("sweep point failed", "value", v, "error", err)
			pt.Err = pe
		} else {
			pt.Exit = out.Exit
			pt.Efficiency = out.Efficiency
		}

		finished()
		return pt, nil
	})
	if err != nil {
		log.Debug("sweep aborted", "error", err)
		return nil, err
	}

	res := &Result{Field: field, Points: points}
	log.Info("sweep finished", "succeeded", len(res.Succeeded()), "failed", len(res.Failed()), "elapsed", time.Since(start))
	return res, nil
}
