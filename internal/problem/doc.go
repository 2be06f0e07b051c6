// Package problem defines the spring-mass-damper initial value problem that
// the rest of the lab trains against:
//
//	m·x'' + c·x' + k·x = F(t),  x(0) = x0, x'(0) = v0
//
// rewritten as the first-order system y = (x, v):
//
//	dx/dt = v
//	m·dv/dt = F(t) − c·v − k·x
//
// The package carries the physical constants, the forcing term, and the
// closed-form solutions for the unforced cases, which the analysis and test
// code use as ground truth.
package problem
