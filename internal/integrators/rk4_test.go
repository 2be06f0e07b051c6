package integrators

import (
	"math"
	"testing"

	"github.com/SsinghBh/PINN-lab/internal/ode"
	"github.com/SsinghBh/PINN-lab/internal/problem"
)

// undamped unit oscillator: x(t) = cos(t), v(t) = -sin(t)
func undamped() ode.System {
	o := problem.NewOscillator()
	o.Damping = 0
	o.X0, o.V0 = 1.0, 0.0
	return ode.FromOscillator(o)
}

func TestRK4Accuracy(t *testing.T) {
	sys := undamped()
	integ := NewRK4()

	x := ode.State{1.0, 0.0}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		x = integ.Step(sys, x, float64(i)*dt, dt)
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-4 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expectedX)
	}
	if math.Abs(x[1]-expectedV) > 1e-4 {
		t.Errorf("velocity error too large: got %.6f, expected %.6f", x[1], expectedV)
	}
}

func TestRK4BeatsEuler(t *testing.T) {
	sys := undamped()

	err := func(integ ode.Integrator) float64 {
		x := ode.State{1.0, 0.0}
		dt := 0.05
		for i := 0; i < 200; i++ {
			x = integ.Step(sys, x, float64(i)*dt, dt)
		}
		return math.Abs(x[0] - math.Cos(10.0))
	}

	if err(NewRK4()) >= err(NewEuler()) {
		t.Error("RK4 should be more accurate than Euler at the same step size")
	}
}

func TestSolve_MatchesAnalytic(t *testing.T) {
	o := problem.NewOscillator() // m=1, c=0.2, k=1, x0=0, v0=1
	xFn, _, err := o.Analytic()
	if err != nil {
		t.Fatal(err)
	}

	times, states, err := Solve(ode.FromOscillator(o), NewRK4(), ode.State{o.X0, o.V0}, 0.01, o.Horizon)
	if err != nil {
		t.Fatal(err)
	}

	for i, ti := range times {
		if diff := math.Abs(states[i][0] - xFn(ti)); diff > 1e-6 {
			t.Fatalf("t=%.2f: RK4 deviates from closed form by %g", ti, diff)
		}
	}
}

func TestSolve_RejectsBadConfig(t *testing.T) {
	sys := undamped()
	if _, _, err := Solve(sys, NewRK4(), ode.State{1, 0}, 0, 10); err == nil {
		t.Error("zero dt should error")
	}
	if _, _, err := Solve(sys, NewRK4(), ode.State{1, 0}, 0.01, 0); err == nil {
		t.Error("zero duration should error")
	}
}

func TestByName(t *testing.T) {
	if _, err := ByName("rk4"); err != nil {
		t.Error(err)
	}
	if _, err := ByName("euler"); err != nil {
		t.Error(err)
	}
	if _, err := ByName("rk45"); err == nil {
		t.Error("unknown integrator should error")
	}
}
