package pinn

import (
	"math"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/gomlx/backends"
	. "github.com/gomlx/gomlx/pkg/core/graph"
	"github.com/gomlx/gomlx/pkg/core/tensors"
	"github.com/gomlx/gomlx/pkg/ml/context"
	"github.com/gomlx/gomlx/pkg/ml/context/initializers"
	"github.com/gomlx/gomlx/pkg/ml/train/optimizers"
	"github.com/pkg/errors"

	"github.com/SsinghBh/PINN-lab/internal/problem"
	"github.com/SsinghBh/PINN-lab/internal/sampler"
)

const (
	DefaultSteps        = 20000
	DefaultLearningRate = 1e-3
	DefaultLogEvery     = 100
)

// ErrDiverged is returned when the total loss becomes NaN or Inf. Per the
// underlying optimizer's semantics this is silent at the framework level, so
// the trainer watches for it host-side and stops.
var ErrDiverged = errors.New("pinn: training diverged (loss is NaN or Inf)")

// TrainConfig are the optimization hyperparameters.
type TrainConfig struct {
	Steps          int
	LearningRate   float64
	ResidualWeight float64
	BoundaryWeight float64
	LogEvery       int // record a loss sample every LogEvery steps
	Seed           int64
}

func DefaultTrainConfig() TrainConfig {
	return TrainConfig{
		Steps:          DefaultSteps,
		LearningRate:   DefaultLearningRate,
		ResidualWeight: 1.0,
		BoundaryWeight: 1.0,
		LogEvery:       DefaultLogEvery,
		Seed:           42,
	}
}

func (c TrainConfig) Validate() error {
	if c.Steps < 1 {
		return errors.Errorf("steps must be positive, got %d", c.Steps)
	}
	if c.LearningRate <= 0 {
		return errors.Errorf("learning rate must be positive, got %f", c.LearningRate)
	}
	if c.ResidualWeight < 0 || c.BoundaryWeight < 0 {
		return errors.Errorf("loss weights must be non-negative, got %f and %f",
			c.ResidualWeight, c.BoundaryWeight)
	}
	if c.LogEvery < 1 {
		return errors.Errorf("log interval must be positive, got %d", c.LogEvery)
	}
	return nil
}

// LossSample is one logged point of the training curve.
type LossSample struct {
	Step     int     `json:"step"`
	Total    float64 `json:"total"`
	Residual float64 `json:"residual"`
	Boundary float64 `json:"boundary"`
}

// History is the loss record of a completed (or aborted) run.
type History struct {
	Samples []LossSample
	Final   LossSample
}

// Totals returns just the total-loss column, in step order.
func (h *History) Totals() []float64 {
	out := make([]float64, len(h.Samples))
	for i, s := range h.Samples {
		out[i] = s.Total
	}
	return out
}

// Trainer owns the network parameters and the training-step computation.
// It is not safe for concurrent use; the whole run happens on the calling
// goroutine.
type Trainer struct {
	backend backends.Backend
	ctx     *context.Context
	opt     optimizers.Interface

	prob   *problem.Oscillator
	netCfg NetworkConfig
	cfg    TrainConfig
	smp    *sampler.Sampler

	stepExec     *context.Exec
	residualExec *context.Exec

	// OnStep, when set, is invoked for every logged sample. Used by the
	// progress bar and the live view.
	OnStep func(LossSample)
}

// NewTrainer validates the configuration and compiles nothing yet: the
// training-step graph is built and JIT-compiled on the first step, keyed by
// the batch shape.
func NewTrainer(backend backends.Backend, prob *problem.Oscillator, netCfg NetworkConfig, cfg TrainConfig, smp *sampler.Sampler) (*Trainer, error) {
	if err := prob.Validate(); err != nil {
		return nil, errors.Wrap(err, "problem")
	}
	if err := netCfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "network")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "training")
	}
	if err := smp.Validate(); err != nil {
		return nil, errors.Wrap(err, "sampler")
	}

	ctx := context.New()
	if err := ctx.SetRNGStateFromSeed(cfg.Seed); err != nil {
		return nil, errors.Wrap(err, "seeding rng")
	}
	ctx = ctx.WithInitializer(initializers.GlorotUniformFn(ctx))

	t := &Trainer{
		backend: backend,
		ctx:     ctx,
		opt:     optimizers.Adam().LearningRate(cfg.LearningRate).Done(),
		prob:    prob,
		netCfg:  netCfg,
		cfg:     cfg,
		smp:     smp,
	}

	var err error
	t.stepExec, err = context.NewExec(backend, ctx, t.stepGraph)
	if err != nil {
		return nil, errors.Wrap(err, "building training step")
	}
	return t, nil
}

// stepGraph assembles one optimization step: forward pass over the combined
// boundary+collocation batch, residual and boundary losses, and the Adam
// update. Returns total, residual, and boundary losses.
func (t *Trainer) stepGraph(ctx *context.Context, times *Node) []*Node {
	y := stateNet(ctx, times, t.netCfg)
	r1, r2 := residuals(times, y, t.prob)

	nb := t.smp.NumBoundary

	// residual loss over the interior rows only
	rc1 := Slice(r1, AxisRangeToEnd(nb), AxisRange())
	rc2 := Slice(r2, AxisRangeToEnd(nb), AxisRange())
	residualLoss := ReduceAllMean(Add(Square(rc1), Square(rc2)))

	// initial-condition loss over the boundary rows (all at t=0)
	xb := Slice(y, AxisRangeFromStart(nb), AxisElem(0))
	vb := Slice(y, AxisRangeFromStart(nb), AxisElem(1))
	boundaryLoss := Add(
		ReduceAllMean(Square(AddScalar(xb, -t.prob.X0))),
		ReduceAllMean(Square(AddScalar(vb, -t.prob.V0))))

	total := Add(
		MulScalar(residualLoss, t.cfg.ResidualWeight),
		MulScalar(boundaryLoss, t.cfg.BoundaryWeight))

	t.opt.UpdateGraph(ctx, total.Graph(), total)
	return []*Node{total, residualLoss, boundaryLoss}
}

// Run executes the configured number of optimization steps and returns the
// loss history. GoMLX reports errors by panicking; the panics are converted
// to errors here at the boundary.
func (t *Trainer) Run() (*History, error) {
	history := &History{}

	err := exceptions.TryCatch[error](func() {
		for step := 0; step < t.cfg.Steps; step++ {
			batch := t.smp.Batch()
			times := tensors.FromFlatDataAndDimensions(batch, len(batch), 1)

			out := t.stepExec.MustExec(times)
			sample := LossSample{
				Step:     step,
				Total:    tensors.ToScalar[float64](out[0]),
				Residual: tensors.ToScalar[float64](out[1]),
				Boundary: tensors.ToScalar[float64](out[2]),
			}

			if math.IsNaN(sample.Total) || math.IsInf(sample.Total, 0) {
				history.Final = sample
				panic(errors.Wrapf(ErrDiverged, "at step %d", step))
			}

			if step%t.cfg.LogEvery == 0 || step == t.cfg.Steps-1 {
				history.Samples = append(history.Samples, sample)
				if t.OnStep != nil {
					t.OnStep(sample)
				}
			}
			history.Final = sample
		}
	})
	if err != nil {
		return history, err
	}
	return history, nil
}

// Residuals evaluates the signed residuals r1, r2 pointwise at the given
// times using the current network weights. Meaningful after Run.
func (t *Trainer) Residuals(times []float64) (r1, r2 []float64, err error) {
	if t.residualExec == nil {
		// Reuse so the inference graph binds the trained variables instead
		// of declaring fresh ones.
		t.residualExec, err = context.NewExec(t.backend, t.ctx.Reuse(), func(ctx *context.Context, times *Node) []*Node {
			y := stateNet(ctx, times, t.netCfg)
			a, b := residuals(times, y, t.prob)
			return []*Node{a, b}
		})
		if err != nil {
			return nil, nil, errors.Wrap(err, "building residual graph")
		}
	}

	var out []*tensors.Tensor
	err = exceptions.TryCatch[error](func() {
		in := tensors.FromFlatDataAndDimensions(times, len(times), 1)
		out = t.residualExec.MustExec(in)
	})
	if err != nil {
		return nil, nil, err
	}

	r1 = flatten(out[0])
	r2 = flatten(out[1])
	return r1, r2, nil
}

// Context exposes the variable store, mainly for tests.
func (t *Trainer) Context() *context.Context { return t.ctx }

func flatten(t *tensors.Tensor) []float64 {
	var out []float64
	tensors.MustConstFlatData(t, func(flat []float64) {
		out = make([]float64, len(flat))
		copy(out, flat)
	})
	return out
}
