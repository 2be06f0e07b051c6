package analysis

// OscillatorEnergy is the mechanical energy of a spring-mass state,
// kinetic plus elastic.
func OscillatorEnergy(mass, stiffness, x, v float64) float64 {
	return 0.5*mass*v*v + 0.5*stiffness*x*x
}

// EnergyDrift returns the relative change in mechanical energy from
// the first to the last sample. Near zero for a conservative system
// under a good integrator, negative when damping dissipates energy.
func EnergyDrift(mass, stiffness float64, xs, vs []float64) float64 {
	if len(xs) < 2 || len(xs) != len(vs) {
		return 0
	}
	e0 := OscillatorEnergy(mass, stiffness, xs[0], vs[0])
	if e0 == 0 {
		return 0
	}
	e1 := OscillatorEnergy(mass, stiffness, xs[len(xs)-1], vs[len(vs)-1])
	return (e1 - e0) / e0
}
