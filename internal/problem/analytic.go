package problem

import (
	"fmt"
	"math"
)

// Analytic returns the closed-form solution of the unforced oscillator as a
// pair of functions x(t), v(t). It errors when a forcing term other than
// NoForcing is set, or when the constants fail validation.
//
// The three damping regimes have different forms:
//
//	underdamped:  x = e^(−ζt)·(A·cos(ω_d t) + B·sin(ω_d t))
//	critical:     x = e^(−ζt)·(A + B·t)
//	overdamped:   x = A·e^(r1 t) + B·e^(r2 t)
//
// with ζ = c/2m and constants fixed by the initial conditions.
func (o *Oscillator) Analytic() (x, v func(t float64) float64, err error) {
	if err := o.Validate(); err != nil {
		return nil, nil, err
	}
	if _, ok := o.Forcing.(NoForcing); !ok {
		return nil, nil, fmt.Errorf("no closed form for forcing %q", o.Forcing.Name())
	}

	zeta := o.Damping / (2 * o.Mass)
	switch o.Regime() {
	case Underdamped:
		wd := o.DampedFrequency()
		a := o.X0
		b := (o.V0 + zeta*o.X0) / wd
		x = func(t float64) float64 {
			return math.Exp(-zeta*t) * (a*math.Cos(wd*t) + b*math.Sin(wd*t))
		}
		v = func(t float64) float64 {
			e := math.Exp(-zeta * t)
			cos, sin := math.Cos(wd*t), math.Sin(wd*t)
			return e * ((-zeta*a+b*wd)*cos + (-zeta*b-a*wd)*sin)
		}
	case CriticallyDamped:
		a := o.X0
		b := o.V0 + zeta*o.X0
		x = func(t float64) float64 {
			return math.Exp(-zeta*t) * (a + b*t)
		}
		v = func(t float64) float64 {
			return math.Exp(-zeta*t) * (b - zeta*(a+b*t))
		}
	case Overdamped:
		sq := math.Sqrt(o.Discriminant()) / (2 * o.Mass)
		r1 := -zeta + sq
		r2 := -zeta - sq
		b := (o.V0 - r1*o.X0) / (r2 - r1)
		a := o.X0 - b
		x = func(t float64) float64 {
			return a*math.Exp(r1*t) + b*math.Exp(r2*t)
		}
		v = func(t float64) float64 {
			return a*r1*math.Exp(r1*t) + b*r2*math.Exp(r2*t)
		}
	}
	return x, v, nil
}

// HasAnalytic reports whether Analytic will succeed for this problem.
func (o *Oscillator) HasAnalytic() bool {
	_, ok := o.Forcing.(NoForcing)
	return ok
}
