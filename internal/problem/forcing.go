package problem

import (
	"fmt"
	"math"
)

// Forcing is the external force F(t) applied to the mass.
//
// Implementations must be pure functions of time: the training code rebuilds
// the same expression symbolically inside the computation graph, and the
// reference integrator calls At directly. Both have to agree.
type Forcing interface {
	Name() string
	At(t float64) float64
}

// NoForcing is the homogeneous equation, F(t) = 0.
type NoForcing struct{}

func (NoForcing) Name() string { return "none" }

func (NoForcing) At(t float64) float64 { return 0 }

// SineForcing is F(t) = Amplitude·sin(Omega·t).
type SineForcing struct {
	Amplitude float64
	Omega     float64
}

func (SineForcing) Name() string { return "sine" }

func (f SineForcing) At(t float64) float64 {
	return f.Amplitude * math.Sin(f.Omega*t)
}

// StepForcing is F(t) = Amplitude for t >= Onset, zero before.
type StepForcing struct {
	Amplitude float64
	Onset     float64
}

func (StepForcing) Name() string { return "step" }

func (f StepForcing) At(t float64) float64 {
	if t >= f.Onset {
		return f.Amplitude
	}
	return 0
}

// ForcingFromName builds a forcing term by name, using amplitude/omega/onset
// parameters where they apply.
func ForcingFromName(name string, amplitude, omega, onset float64) (Forcing, error) {
	switch name {
	case "", "none":
		return NoForcing{}, nil
	case "sine":
		return SineForcing{Amplitude: amplitude, Omega: omega}, nil
	case "step":
		return StepForcing{Amplitude: amplitude, Onset: onset}, nil
	default:
		return nil, fmt.Errorf("unknown forcing: %s", name)
	}
}
