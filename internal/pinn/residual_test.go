package pinn

import (
	"math"
	"testing"

	"github.com/gomlx/gomlx/backends"
	"github.com/gomlx/gomlx/pkg/core/tensors"
	"github.com/stretchr/testify/require"

	. "github.com/gomlx/gomlx/pkg/core/graph"

	"github.com/SsinghBh/PINN-lab/internal/problem"

	_ "github.com/gomlx/gomlx/backends/simplego"
)

// The symbolic forcing must agree with the host-side one at every sample.
func TestForcingNode_MatchesHost(t *testing.T) {
	backend := backends.MustNew()

	times := []float64{0, 0.5, 1.0, 1.99, 2.0, 2.01, 5.0, 19.7}
	forcings := []problem.Forcing{
		problem.NoForcing{},
		problem.SineForcing{Amplitude: 1.5, Omega: 2.0},
		problem.StepForcing{Amplitude: 0.7, Onset: 2.0},
	}

	for _, f := range forcings {
		f := f
		t.Run(f.Name(), func(t *testing.T) {
			exec := MustNewExec(backend, func(times *Node) *Node {
				return forcingNode(times, f)
			})
			in := tensors.FromFlatDataAndDimensions(times, len(times), 1)
			out := exec.MustExec(in)[0]

			got := flatten(out)
			require.Len(t, got, len(times))
			for i, ti := range times {
				require.InDeltaf(t, f.At(ti), got[i], 1e-12, "t=%v", ti)
			}
		})
	}
}

// With network outputs replaced by the exact solution, both residuals must
// vanish. Here the "network" is a hand-built graph of the closed-form
// undamped solution x=sin(t), v=cos(t) for m=1, c=0, k=1, which lets the
// autodiff path be checked independently of training.
func TestResiduals_ExactSolution(t *testing.T) {
	backend := backends.MustNew()

	o := problem.NewOscillator()
	o.Damping = 0
	o.X0, o.V0 = 0, 1

	exec := MustNewExec(backend, func(times *Node) []*Node {
		x := Sin(times)
		v := Cos(times)
		y := Concatenate([]*Node{x, v}, 1)
		r1, r2 := residuals(times, y, o)
		return []*Node{r1, r2}
	})

	times := []float64{0.1, 0.5, 1.0, 2.0, 3.7, 10.0}
	in := tensors.FromFlatDataAndDimensions(times, len(times), 1)
	out := exec.MustExec(in)

	for _, ri := range [][]float64{flatten(out[0]), flatten(out[1])} {
		require.Len(t, ri, len(times))
		for i, v := range ri {
			require.Lessf(t, math.Abs(v), 1e-10, "residual at t=%v", times[i])
		}
	}
}

func TestNetworkConfig_Validate(t *testing.T) {
	require.NoError(t, DefaultNetworkConfig().Validate())
	require.Error(t, NetworkConfig{HiddenLayers: 0, HiddenWidth: 8}.Validate())
	require.Error(t, NetworkConfig{HiddenLayers: 2, HiddenWidth: 0}.Validate())
}
