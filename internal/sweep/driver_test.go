package sweep_test

import (
	"context"
	"errors"
	"math"
	"sync/atomic"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/railsim/internal/physics"
	"github.com/san-kum/railsim/internal/shot"
	"github.com/san-kum/railsim/internal/sweep"
)

// fakeShooter reports the voltage as exit speed and fails at one value.
type fakeShooter struct {
	calls  atomic.Int32
	failAt float64
}

func (f *fakeShooter) Fire(ctx context.Context, p physics.Params, _ bool) (*shot.Outcome, error) {
	f.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.Voltage == f.failAt {
		return nil, &shot.ExitError{GunLength: p.BarrelLength, MaxPosition: 0.5}
	}
	return &shot.Outcome{
		Exit:       shot.Exit{Speed: p.Voltage},
		Efficiency: shot.Efficiency{Percent: p.Voltage / 100},
	}, nil
}

// cancellingShooter cancels the sweep from inside the shot at cancelAt.
type cancellingShooter struct {
	calls    atomic.Int32
	cancelAt float64
	cancel   context.CancelFunc
}

func (c *cancellingShooter) Fire(ctx context.Context, p physics.Params, _ bool) (*shot.Outcome, error) {
	c.calls.Add(1)
	if p.Voltage == c.cancelAt {
		c.cancel()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &shot.Outcome{Efficiency: shot.Efficiency{Percent: 1}}, nil
}

var voltages = sweep.Range{Min: 1000, Max: 2000, Step: 100}

var _ = Describe("Driver", func() {
	var (
		ctx  context.Context
		base physics.Params
	)

	BeforeEach(func() {
		ctx = context.Background()
		base = physics.DefaultParams()
	})

	Context("with a fake shooter", func() {
		var fake *fakeShooter

		BeforeEach(func() {
			fake = &fakeShooter{failAt: 1500}
		})

		It("marks failed points and keeps going", func() {
			res, err := sweep.NewDriver(fake, sweep.WithWorkers(4)).Run(ctx, base, sweep.Voltage, voltages)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Points).To(HaveLen(10))
			Expect(res.Succeeded()).To(HaveLen(9))

			failed := res.Failed()
			Expect(failed).To(HaveLen(1))
			Expect(failed[0].Value).To(Equal(1500.0))
			Expect(failed[0].Err).To(MatchError(shot.ErrProjectileDidNotExit))

			var pe *sweep.PointError
			Expect(errors.As(failed[0].Err, &pe)).To(BeTrue())
			Expect(pe.Field).To(Equal(sweep.Voltage))

			speeds := res.Speeds()
			Expect(math.IsNaN(speeds[5])).To(BeTrue())
			Expect(speeds[4]).To(Equal(1400.0))
		})

		It("aborts on the first failure when asked to", func() {
			res, err := sweep.NewDriver(fake, sweep.WithPolicy(sweep.Abort), sweep.WithWorkers(1)).
				Run(ctx, base, sweep.Voltage, voltages)
			Expect(res).To(BeNil())
			Expect(err).To(MatchError(shot.ErrProjectileDidNotExit))

			var pe *sweep.PointError
			Expect(errors.As(err, &pe)).To(BeTrue())
			Expect(pe.Value).To(Equal(1500.0))
			// at most one more shot may start before the failure lands
			Expect(fake.calls.Load()).To(And(BeNumerically(">=", 6), BeNumerically("<=", 7)))
		})

		It("keeps value order regardless of worker count", func() {
			serial, err := sweep.NewDriver(fake, sweep.WithWorkers(1)).Run(ctx, base, sweep.Voltage, voltages)
			Expect(err).NotTo(HaveOccurred())
			parallel, err := sweep.NewDriver(fake, sweep.WithWorkers(32)).Run(ctx, base, sweep.Voltage, voltages)
			Expect(err).NotTo(HaveOccurred())

			Expect(parallel.Values()).To(Equal(serial.Values()))
			Expect(parallel.Efficiencies()[0]).To(Equal(serial.Efficiencies()[0]))
			for i, v := range parallel.Values() {
				Expect(v).To(Equal(1000 + float64(i)*100))
			}
		})

		It("reports progress for every point", func() {
			var last, calls, total int
			d := sweep.NewDriver(fake, sweep.WithWorkers(3), sweep.WithProgress(func(done, n int) {
				calls++
				last, total = done, n
			}))
			_, err := d.Run(ctx, base, sweep.Voltage, voltages)
			Expect(err).NotTo(HaveOccurred())
			Expect(calls).To(Equal(10))
			Expect(last).To(Equal(10))
			Expect(total).To(Equal(10))
		})

		It("picks the most efficient successful point", func() {
			res, err := sweep.NewDriver(fake).Run(ctx, base, sweep.Voltage, voltages)
			Expect(err).NotTo(HaveOccurred())
			best, ok := res.Best()
			Expect(ok).To(BeTrue())
			Expect(best.Value).To(Equal(1900.0))
		})

		It("fails fast on an invalid range", func() {
			_, err := sweep.NewDriver(fake).Run(ctx, base, sweep.Voltage, sweep.Range{Min: 2, Max: 1, Step: 1})
			Expect(err).To(MatchError(sweep.ErrInvalidRange))
			Expect(fake.calls.Load()).To(BeZero())
		})

		It("fails fast on invalid base parameters", func() {
			base.MassNumber = 0
			_, err := sweep.NewDriver(fake).Run(ctx, base, sweep.Voltage, voltages)
			Expect(err).To(MatchError(physics.ErrInvalidParameter))
			Expect(fake.calls.Load()).To(BeZero())
		})

		It("does not blame the base for the swept field", func() {
			base.Voltage = -1
			_, err := sweep.NewDriver(fake).Run(ctx, base, sweep.Voltage, voltages)
			Expect(err).NotTo(HaveOccurred())
		})

		It("stops when the context is cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			res, err := sweep.NewDriver(fake, sweep.WithWorkers(2)).Run(cctx, base, sweep.Voltage, voltages)
			Expect(res).To(BeNil())
			Expect(err).To(MatchError(context.Canceled))
		})

		It("ticks progress for points cut short by cancellation", func() {
			cctx, cancel := context.WithCancel(ctx)
			defer cancel()
			shooter := &cancellingShooter{cancelAt: 1300, cancel: cancel}

			ticks := 0
			d := sweep.NewDriver(shooter, sweep.WithWorkers(2), sweep.WithProgress(func(done, n int) {
				ticks++
			}))
			_, err := d.Run(cctx, base, sweep.Voltage, voltages)
			Expect(err).To(MatchError(context.Canceled))
			Expect(ticks).To(Equal(int(shooter.calls.Load())))
		})
	})

	Context("with the launcher simulator", func() {
		var sim *shot.Simulator

		BeforeEach(func() {
			var err error
			sim, err = shot.New("rk4")
			Expect(err).NotTo(HaveOccurred())
		})

		It("sweeps capacitance over 1100 ordered points", func() {
			rng := sweep.Range{Min: 100e-6, Max: 650e-6, Step: 0.5e-6}
			res, err := sweep.NewDriver(sim).Run(ctx, base, sweep.Capacitance, rng)
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Points).To(HaveLen(1100))
			vals := res.Values()
			for i := 1; i < len(vals); i++ {
				Expect(vals[i]).To(BeNumerically(">", vals[i-1]))
			}

			Expect(res.Succeeded()).NotTo(BeEmpty())
			for _, p := range res.Succeeded() {
				Expect(p.Efficiency.Percent).To(BeNumerically(">", 0))
			}
		})

		It("marks shots that never leave a long barrel", func() {
			base.Duration = 20e-6
			rng := sweep.Range{Min: 0.2, Max: 1.0, Step: 0.05}
			res, err := sweep.NewDriver(sim).Run(ctx, base, sweep.BarrelLength, rng)
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Succeeded()).NotTo(BeEmpty())
			Expect(res.Failed()).NotTo(BeEmpty())

			lastOK := math.Inf(-1)
			for _, p := range res.Succeeded() {
				lastOK = math.Max(lastOK, p.Value)
			}
			for _, p := range res.Failed() {
				Expect(p.Err).To(MatchError(shot.ErrProjectileDidNotExit))
				Expect(p.Value).To(BeNumerically(">", lastOK))
			}
		})

		It("stores more energy at higher voltage", func() {
			rng := sweep.Range{Min: 0.8e3, Max: 6e3, Step: 0.4e3}
			res, err := sweep.NewDriver(sim, sweep.WithWorkers(4)).Run(ctx, base, sweep.Voltage, rng)
			Expect(err).NotTo(HaveOccurred())

			prev := 0.0
			for _, p := range res.Succeeded() {
				Expect(p.Efficiency.StoredEnergy).To(BeNumerically(">", prev))
				prev = p.Efficiency.StoredEnergy
			}
		})
	})
})
