package integrators

import (
	"fmt"

	"github.com/SsinghBh/PINN-lab/internal/ode"
)

// Solve integrates the system from x0 over [0, duration] with a fixed
// timestep and returns the sampled times and states, including t=0.
// It stops early with an error if the state picks up NaN or Inf.
func Solve(sys ode.System, integ ode.Integrator, x0 ode.State, dt, duration float64) ([]float64, []ode.State, error) {
	if dt <= 0 {
		return nil, nil, fmt.Errorf("dt must be positive, got %f", dt)
	}
	if duration <= 0 {
		return nil, nil, fmt.Errorf("duration must be positive, got %f", duration)
	}

	steps := int(duration / dt)
	times := make([]float64, 0, steps+1)
	states := make([]ode.State, 0, steps+1)

	x := x0.Clone()
	t := 0.0
	times = append(times, t)
	states = append(states, x.Clone())

	for i := 0; i < steps; i++ {
		x = integ.Step(sys, x, t, dt)
		t += dt
		if !x.IsValid() {
			return times, states, fmt.Errorf("state diverged at step %d (t=%.4f)", i, t)
		}
		times = append(times, t)
		states = append(states, x.Clone())
	}

	return times, states, nil
}

// ByName returns the integrator registered under the given name.
func ByName(name string) (ode.Integrator, error) {
	switch name {
	case "", "rk4":
		return NewRK4(), nil
	case "euler":
		return NewEuler(), nil
	default:
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
}
