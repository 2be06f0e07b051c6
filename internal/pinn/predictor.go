package pinn

import (
	"github.com/gomlx/exceptions"
	"github.com/gomlx/gomlx/pkg/core/tensors"
	"github.com/gomlx/gomlx/pkg/ml/context"
	"github.com/pkg/errors"

	. "github.com/gomlx/gomlx/pkg/core/graph"
)

// Predictor runs the trained network in inference: times in, (x, v) out.
// It shares the variable store with the trainer that created it.
type Predictor struct {
	exec *context.Exec
}

// Predictor builds an inference executor over the trained weights.
// Call after Run; an untrained network predicts noise.
func (t *Trainer) Predictor() (*Predictor, error) {
	exec, err := context.NewExec(t.backend, t.ctx.Reuse(), func(ctx *context.Context, times *Node) *Node {
		return stateNet(ctx, times, t.netCfg)
	})
	if err != nil {
		return nil, errors.Wrap(err, "building inference graph")
	}
	return &Predictor{exec: exec}, nil
}

// Predict evaluates the network at the given times and returns displacement
// and velocity slices of the same length.
func (p *Predictor) Predict(times []float64) (xs, vs []float64, err error) {
	var out []*tensors.Tensor
	err = exceptions.TryCatch[error](func() {
		in := tensors.FromFlatDataAndDimensions(times, len(times), 1)
		out = p.exec.MustExec(in)
	})
	if err != nil {
		return nil, nil, err
	}

	flat := flatten(out[0]) // (n, 2) row-major
	xs = make([]float64, len(times))
	vs = make([]float64, len(times))
	for i := range times {
		xs[i] = flat[2*i]
		vs[i] = flat[2*i+1]
	}
	return xs, vs, nil
}
