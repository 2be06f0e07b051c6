package problem

import (
	"fmt"
	"math"
)

const (
	DefaultMass      = 1.0
	DefaultDamping   = 0.2
	DefaultStiffness = 1.0
	DefaultHorizon   = 20.0
)

// Damping regime of the homogeneous equation, decided by c² − 4mk.
type Regime int

const (
	Underdamped Regime = iota
	CriticallyDamped
	Overdamped
)

func (r Regime) String() string {
	switch r {
	case Underdamped:
		return "underdamped"
	case CriticallyDamped:
		return "critically_damped"
	case Overdamped:
		return "overdamped"
	}
	return "unknown"
}

// Oscillator is a damped harmonic oscillator with an external forcing term.
type Oscillator struct {
	Mass      float64
	Damping   float64
	Stiffness float64
	Horizon   float64 // time interval is [0, Horizon]
	X0        float64 // initial displacement
	V0        float64 // initial velocity
	Forcing   Forcing
}

func NewOscillator() *Oscillator {
	return &Oscillator{
		Mass:      DefaultMass,
		Damping:   DefaultDamping,
		Stiffness: DefaultStiffness,
		Horizon:   DefaultHorizon,
		X0:        0.0,
		V0:        1.0,
		Forcing:   NoForcing{},
	}
}

func (o *Oscillator) Validate() error {
	if o.Mass <= 0 {
		return fmt.Errorf("mass must be positive, got %f", o.Mass)
	}
	if o.Damping < 0 {
		return fmt.Errorf("damping must be non-negative, got %f", o.Damping)
	}
	if o.Stiffness < 0 {
		return fmt.Errorf("stiffness must be non-negative, got %f", o.Stiffness)
	}
	if o.Horizon <= 0 {
		return fmt.Errorf("time horizon must be positive, got %f", o.Horizon)
	}
	if o.Forcing == nil {
		return fmt.Errorf("forcing must be set (use NoForcing{} for the homogeneous equation)")
	}
	return nil
}

// Discriminant of the characteristic polynomial, c² − 4mk.
func (o *Oscillator) Discriminant() float64 {
	return o.Damping*o.Damping - 4*o.Mass*o.Stiffness
}

func (o *Oscillator) Regime() Regime {
	d := o.Discriminant()
	switch {
	case math.Abs(d) < 1e-12:
		return CriticallyDamped
	case d < 0:
		return Underdamped
	default:
		return Overdamped
	}
}

// NaturalFrequency is the undamped angular frequency sqrt(k/m).
func (o *Oscillator) NaturalFrequency() float64 {
	return math.Sqrt(o.Stiffness / o.Mass)
}

// DampedFrequency is the angular frequency of the decaying oscillation for
// the underdamped regime. Zero for the other regimes.
func (o *Oscillator) DampedFrequency() float64 {
	if o.Regime() != Underdamped {
		return 0
	}
	zeta := o.Damping / (2 * o.Mass)
	w0 := o.NaturalFrequency()
	return math.Sqrt(w0*w0 - zeta*zeta)
}

// Derive evaluates the first-order system at (x, v, t).
func (o *Oscillator) Derive(x, v, t float64) (dxdt, dvdt float64) {
	dxdt = v
	dvdt = (o.Forcing.At(t) - o.Damping*v - o.Stiffness*x) / o.Mass
	return
}

// StateDim is 2: displacement and velocity.
func (o *Oscillator) StateDim() int { return 2 }
