// Package sampler produces collocation and boundary points over the time
// interval of the problem. Collocation points are where the ODE residual is
// evaluated during training; boundary points are copies of t=0 where the
// initial conditions are enforced.
package sampler

import (
	"fmt"
	"math/rand"
)

const (
	DefaultNumCollocation = 1000
	DefaultNumBoundary    = 2
)

type Strategy string

const (
	Uniform Strategy = "uniform" // evenly spaced grid over (0, horizon]
	Random  Strategy = "random"  // seeded pseudo-random over (0, horizon)
)

type Sampler struct {
	Horizon        float64
	NumCollocation int
	NumBoundary    int
	Strategy       Strategy

	rng *rand.Rand
}

func New(horizon float64, seed int64) *Sampler {
	return &Sampler{
		Horizon:        horizon,
		NumCollocation: DefaultNumCollocation,
		NumBoundary:    DefaultNumBoundary,
		Strategy:       Uniform,
		rng:            rand.New(rand.NewSource(seed)),
	}
}

func (s *Sampler) Validate() error {
	if s.Horizon <= 0 {
		return fmt.Errorf("horizon must be positive, got %f", s.Horizon)
	}
	if s.NumCollocation < 1 {
		return fmt.Errorf("need at least one collocation point, got %d", s.NumCollocation)
	}
	if s.NumBoundary < 1 {
		return fmt.Errorf("need at least one boundary point, got %d", s.NumBoundary)
	}
	switch s.Strategy {
	case Uniform, Random:
	default:
		return fmt.Errorf("unknown sampling strategy: %s", s.Strategy)
	}
	return nil
}

// Batch returns one training batch: the boundary points first, then the
// collocation points. Keeping both in one slice lets the trainer evaluate
// the network in a single forward pass and slice rows afterwards.
//
// With the Random strategy every call draws a fresh set of collocation
// points; with Uniform the grid is the same every call.
func (s *Sampler) Batch() []float64 {
	batch := make([]float64, 0, s.NumBoundary+s.NumCollocation)
	for i := 0; i < s.NumBoundary; i++ {
		batch = append(batch, 0)
	}

	switch s.Strategy {
	case Random:
		for i := 0; i < s.NumCollocation; i++ {
			batch = append(batch, s.rng.Float64()*s.Horizon)
		}
	default:
		step := s.Horizon / float64(s.NumCollocation)
		for i := 1; i <= s.NumCollocation; i++ {
			batch = append(batch, float64(i)*step)
		}
	}
	return batch
}

// Grid returns n evenly spaced points over [0, horizon], endpoints included.
// Used for evaluation and plotting rather than training.
func (s *Sampler) Grid(n int) []float64 {
	if n < 2 {
		return []float64{0}
	}
	points := make([]float64, n)
	step := s.Horizon / float64(n-1)
	for i := range points {
		points[i] = float64(i) * step
	}
	return points
}
