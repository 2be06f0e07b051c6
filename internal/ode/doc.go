// Package ode provides the classical-integration side of the lab: state
// vectors, the System interface, and the adapter that exposes the oscillator
// problem as a first-order system. The integrators package supplies the
// steppers; together they produce the numerical reference trajectories the
// trained network is compared against.
package ode
