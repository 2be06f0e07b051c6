package ode

import (
	"math"

	"github.com/SsinghBh/PINN-lab/internal/problem"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// System is an autonomous-in-form ODE dX/dt = f(X, t).
type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

// Integrator advances a system state by one timestep.
type Integrator interface {
	Step(sys System, x State, t, dt float64) State
}

type oscillatorSystem struct {
	osc *problem.Oscillator
}

// FromOscillator wraps the spring-mass-damper problem as a first-order system
// (x, v), so the numerical integrators can produce reference trajectories.
func FromOscillator(o *problem.Oscillator) System {
	return &oscillatorSystem{osc: o}
}

func (s *oscillatorSystem) Derive(x State, t float64) State {
	dx, dv := s.osc.Derive(x[0], x[1], t)
	return State{dx, dv}
}

func (s *oscillatorSystem) StateDim() int { return 2 }
