package sweep_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/railsim/internal/sweep"
)

var _ = Describe("Range", func() {
	It("produces the half-open capacitance axis", func() {
		vals, err := sweep.Range{Min: 100e-6, Max: 650e-6, Step: 0.5e-6}.Values()
		Expect(err).NotTo(HaveOccurred())
		Expect(vals).To(HaveLen(1100))
		Expect(vals[0]).To(Equal(100e-6))
		Expect(vals[len(vals)-1]).To(BeNumerically("<", 650e-6))
		for i := 1; i < len(vals); i++ {
			Expect(vals[i]).To(BeNumerically(">", vals[i-1]))
		}
	})

	It("excludes the upper bound", func() {
		vals, err := sweep.Range{Min: 0, Max: 1, Step: 0.25}.Values()
		Expect(err).NotTo(HaveOccurred())
		Expect(vals).To(Equal([]float64{0, 0.25, 0.5, 0.75}))
	})

	It("keeps a partial last step", func() {
		vals, err := sweep.Range{Min: 0, Max: 1, Step: 0.3}.Values()
		Expect(err).NotTo(HaveOccurred())
		Expect(vals).To(HaveLen(4))
	})

	DescribeTable("rejects malformed ranges",
		func(r sweep.Range) {
			_, err := r.Values()
			Expect(err).To(MatchError(sweep.ErrInvalidRange))
		},
		Entry("zero step", sweep.Range{Min: 0, Max: 1, Step: 0}),
		Entry("negative step", sweep.Range{Min: 0, Max: 1, Step: -0.1}),
		Entry("min equals max", sweep.Range{Min: 1, Max: 1, Step: 0.1}),
		Entry("min above max", sweep.Range{Min: 2, Max: 1, Step: 0.1}),
		Entry("NaN bound", sweep.Range{Min: math.NaN(), Max: 1, Step: 0.1}),
		Entry("infinite max", sweep.Range{Min: 0, Max: math.Inf(1), Step: 0.1}),
		Entry("too many points", sweep.Range{Min: 0, Max: 1, Step: 1e-9}),
	)
})
