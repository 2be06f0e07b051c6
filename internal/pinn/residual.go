package pinn

import (
	. "github.com/gomlx/gomlx/pkg/core/graph"

	"github.com/SsinghBh/PINN-lab/internal/problem"
)

// forcingNode rebuilds problem.Forcing symbolically, so the residual sees the
// same F(t) the reference integrator evaluates host-side.
func forcingNode(times *Node, f problem.Forcing) *Node {
	switch f := f.(type) {
	case problem.SineForcing:
		return MulScalar(Sin(MulScalar(times, f.Omega)), f.Amplitude)
	case problem.StepForcing:
		after := GreaterOrEqual(times, MulScalar(OnesLike(times), f.Onset))
		return Where(after, MulScalar(OnesLike(times), f.Amplitude), ZerosLike(times))
	default:
		return ZerosLike(times)
	}
}

// residuals evaluates both ODE residuals at every row of times:
//
//	r1 = dx/dt − v
//	r2 = m·dv/dt + c·v + k·x − F(t)
//
// The time derivatives come from differentiating the network outputs with
// respect to the times input. Summing each output over the batch before
// taking the gradient yields the per-sample derivative, since row i of the
// output depends only on row i of the input.
func residuals(times, y *Node, o *problem.Oscillator) (r1, r2 *Node) {
	x := Slice(y, AxisRange(), AxisElem(0))
	v := Slice(y, AxisRange(), AxisElem(1))

	dxdt := Gradient(ReduceAllSum(x), times)[0]
	dvdt := Gradient(ReduceAllSum(v), times)[0]

	r1 = Sub(dxdt, v)

	lhs := Add(MulScalar(dvdt, o.Mass), Add(MulScalar(v, o.Damping), MulScalar(x, o.Stiffness)))
	r2 = Sub(lhs, forcingNode(times, o.Forcing))
	return r1, r2
}
