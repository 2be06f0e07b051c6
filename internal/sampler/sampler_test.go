package sampler_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/SsinghBh/PINN-lab/internal/sampler"
)

var _ = Describe("Sampler", func() {
	var s *sampler.Sampler

	BeforeEach(func() {
		s = sampler.New(20.0, 42)
		s.NumCollocation = 100
		s.NumBoundary = 2
	})

	It("validates its configuration", func() {
		Expect(s.Validate()).To(Succeed())

		s.Horizon = 0
		Expect(s.Validate()).NotTo(Succeed())

		s.Horizon = 20.0
		s.Strategy = "sobol"
		Expect(s.Validate()).NotTo(Succeed())
	})

	It("puts the boundary points first, at t=0", func() {
		batch := s.Batch()
		Expect(batch).To(HaveLen(102))
		Expect(batch[0]).To(Equal(0.0))
		Expect(batch[1]).To(Equal(0.0))
		Expect(batch[2]).To(BeNumerically(">", 0))
	})

	It("keeps collocation points inside the interval", func() {
		for _, strategy := range []sampler.Strategy{sampler.Uniform, sampler.Random} {
			s.Strategy = strategy
			batch := s.Batch()
			for _, t := range batch[s.NumBoundary:] {
				Expect(t).To(BeNumerically(">", 0))
				Expect(t).To(BeNumerically("<=", s.Horizon))
			}
		}
	})

	It("is deterministic for a fixed seed", func() {
		s.Strategy = sampler.Random
		first := s.Batch()

		other := sampler.New(20.0, 42)
		other.NumCollocation = 100
		other.NumBoundary = 2
		other.Strategy = sampler.Random
		Expect(other.Batch()).To(Equal(first))
	})

	It("resamples on every call with the random strategy", func() {
		s.Strategy = sampler.Random
		Expect(s.Batch()).NotTo(Equal(s.Batch()))
	})

	It("repeats the same grid with the uniform strategy", func() {
		Expect(s.Batch()).To(Equal(s.Batch()))
	})

	Describe("Grid", func() {
		It("includes both endpoints", func() {
			grid := s.Grid(201)
			Expect(grid).To(HaveLen(201))
			Expect(grid[0]).To(Equal(0.0))
			Expect(grid[200]).To(BeNumerically("~", 20.0, 1e-9))
		})
	})
})
