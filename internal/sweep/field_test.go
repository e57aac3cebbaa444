package sweep_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/railsim/internal/physics"
	"github.com/san-kum/railsim/internal/sweep"
)

var _ = Describe("Field", func() {
	DescribeTable("parses names and aliases",
		func(name string, want sweep.Field) {
			f, err := sweep.ParseField(name)
			Expect(err).NotTo(HaveOccurred())
			Expect(f).To(Equal(want))
		},
		Entry("capacitance", "capacitance", sweep.Capacitance),
		Entry("upper case", "Capacitance", sweep.Capacitance),
		Entry("length", "length", sweep.BarrelLength),
		Entry("barrel_length", "barrel_length", sweep.BarrelLength),
		Entry("pressure", "pressure", sweep.ValvePressure),
		Entry("voltage", "voltage", sweep.Voltage),
		Entry("u0", "u0", sweep.Voltage),
	)

	It("rejects unknown names", func() {
		_, err := sweep.ParseField("temperature")
		Expect(err).To(HaveOccurred())
	})

	It("sets and reads only its own input", func() {
		base := physics.DefaultParams()
		for _, f := range sweep.Fields() {
			p := f.Apply(base, 0.123)
			Expect(f.Get(p)).To(Equal(0.123))
			Expect(f.Get(base)).NotTo(Equal(0.123))

			restored := f.Apply(p, f.Get(base))
			Expect(restored).To(Equal(base))
		}
	})

	It("describes display units", func() {
		Expect(sweep.Capacitance.Unit()).To(Equal("μF"))
		Expect(sweep.Capacitance.Scale() * 560e-6).To(BeNumerically("~", 560, 1e-9))
		Expect(sweep.ValvePressure.Scale() * 1e5).To(BeNumerically("~", 1, 1e-12))
		Expect(sweep.BarrelLength.String()).To(Equal("length"))
	})
})
