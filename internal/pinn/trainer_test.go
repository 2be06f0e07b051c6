package pinn

import (
	"math"
	"testing"

	"github.com/gomlx/gomlx/backends"
	"github.com/stretchr/testify/require"

	"github.com/SsinghBh/PINN-lab/internal/problem"
	"github.com/SsinghBh/PINN-lab/internal/sampler"

	_ "github.com/gomlx/gomlx/backends/simplego"
)

// small configuration that trains in a couple of seconds on the Go backend
func quickSetup(seed int64) (*problem.Oscillator, NetworkConfig, TrainConfig, *sampler.Sampler) {
	o := problem.NewOscillator()
	o.Horizon = 4.0

	netCfg := NetworkConfig{HiddenLayers: 2, HiddenWidth: 16}

	cfg := DefaultTrainConfig()
	cfg.Steps = 300
	cfg.LearningRate = 1e-2
	cfg.LogEvery = 10
	cfg.Seed = seed

	smp := sampler.New(o.Horizon, seed)
	smp.NumCollocation = 64
	return o, netCfg, cfg, smp
}

func TestTrainer_Validation(t *testing.T) {
	backend := backends.MustNew()

	o, netCfg, cfg, smp := quickSetup(1)
	o.Horizon = 0 // the classic unset-horizon mistake
	_, err := NewTrainer(backend, o, netCfg, cfg, smp)
	require.Error(t, err)

	o, netCfg, cfg, smp = quickSetup(1)
	cfg.Steps = 0
	_, err = NewTrainer(backend, o, netCfg, cfg, smp)
	require.Error(t, err)

	o, netCfg, cfg, smp = quickSetup(1)
	_, err = NewTrainer(backend, o, netCfg, cfg, smp)
	require.NoError(t, err)
}

func TestTrainer_LossDecreases(t *testing.T) {
	backend := backends.MustNew()
	o, netCfg, cfg, smp := quickSetup(7)

	trainer, err := NewTrainer(backend, o, netCfg, cfg, smp)
	require.NoError(t, err)

	history, err := trainer.Run()
	require.NoError(t, err)
	require.NotEmpty(t, history.Samples)

	first := history.Samples[0]
	require.Less(t, history.Final.Total, first.Total,
		"total loss should drop from its initial value")
	require.Less(t, history.Final.Boundary, first.Boundary,
		"initial conditions should be better satisfied after training")
	require.False(t, math.IsNaN(history.Final.Total))
}

func TestTrainer_OnStepCallback(t *testing.T) {
	backend := backends.MustNew()
	o, netCfg, cfg, smp := quickSetup(3)
	cfg.Steps = 30
	cfg.LogEvery = 10

	trainer, err := NewTrainer(backend, o, netCfg, cfg, smp)
	require.NoError(t, err)

	var seen []int
	trainer.OnStep = func(s LossSample) { seen = append(seen, s.Step) }

	_, err = trainer.Run()
	require.NoError(t, err)
	require.Equal(t, []int{0, 10, 20, 29}, seen)
}

func TestTrainer_Reproducible(t *testing.T) {
	backend := backends.MustNew()

	run := func() float64 {
		o, netCfg, cfg, smp := quickSetup(11)
		cfg.Steps = 50
		smp.Strategy = sampler.Random

		trainer, err := NewTrainer(backend, o, netCfg, cfg, smp)
		require.NoError(t, err)
		history, err := trainer.Run()
		require.NoError(t, err)
		return history.Final.Total
	}

	require.InDelta(t, run(), run(), 1e-9,
		"same seed should reproduce the same loss curve")
}

func TestTrainer_Residuals(t *testing.T) {
	backend := backends.MustNew()
	o, netCfg, cfg, smp := quickSetup(5)
	cfg.Steps = 100

	trainer, err := NewTrainer(backend, o, netCfg, cfg, smp)
	require.NoError(t, err)
	_, err = trainer.Run()
	require.NoError(t, err)

	grid := smp.Grid(33)
	r1, r2, err := trainer.Residuals(grid)
	require.NoError(t, err)
	require.Len(t, r1, 33)
	require.Len(t, r2, 33)
	for i := range r1 {
		require.False(t, math.IsNaN(r1[i]) || math.IsNaN(r2[i]))
	}
}

func TestPredictor_ShapesAndFiniteness(t *testing.T) {
	backend := backends.MustNew()
	o, netCfg, cfg, smp := quickSetup(9)
	cfg.Steps = 100

	trainer, err := NewTrainer(backend, o, netCfg, cfg, smp)
	require.NoError(t, err)
	_, err = trainer.Run()
	require.NoError(t, err)

	pred, err := trainer.Predictor()
	require.NoError(t, err)

	grid := smp.Grid(50)
	xs, vs, err := pred.Predict(grid)
	require.NoError(t, err)
	require.Len(t, xs, 50)
	require.Len(t, vs, 50)
	for i := range xs {
		require.False(t, math.IsNaN(xs[i]) || math.IsNaN(vs[i]))
	}
}

// Convergence against the closed-form underdamped solution, on a horizon
// and step count the pure-Go backend handles in a few minutes. Skipped in
// -short runs.
func TestTrainer_ConvergesToAnalytic(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping convergence test")
	}

	backend := backends.MustNew()

	o := problem.NewOscillator() // m=1, c=0.2, k=1, x0=0, v0=1
	o.Horizon = 4.0
	netCfg := NetworkConfig{HiddenLayers: 2, HiddenWidth: 24}

	cfg := DefaultTrainConfig()
	cfg.Steps = 5000
	cfg.LearningRate = 2e-3
	cfg.Seed = 42

	smp := sampler.New(o.Horizon, cfg.Seed)
	smp.NumCollocation = 128
	smp.Strategy = sampler.Random

	trainer, err := NewTrainer(backend, o, netCfg, cfg, smp)
	require.NoError(t, err)
	_, err = trainer.Run()
	require.NoError(t, err)

	pred, err := trainer.Predictor()
	require.NoError(t, err)

	grid := smp.Grid(200)
	xs, vs, err := pred.Predict(grid)
	require.NoError(t, err)

	xFn, _, err := o.Analytic()
	require.NoError(t, err)

	// initial conditions within tolerance
	require.InDelta(t, o.X0, xs[0], 0.05)
	require.InDelta(t, o.V0, vs[0], 0.05)

	// bounded L2 relative error of the displacement over the horizon
	var num, den float64
	for i, ti := range grid {
		d := xs[i] - xFn(ti)
		num += d * d
		den += xFn(ti) * xFn(ti)
	}
	require.Less(t, math.Sqrt(num/den), 0.2)

	// residuals stay small on a fresh grid
	r1, r2, err := trainer.Residuals(grid)
	require.NoError(t, err)
	for i := range grid {
		require.Less(t, math.Abs(r1[i]), 0.25)
		require.Less(t, math.Abs(r2[i]), 0.25)
	}
}
