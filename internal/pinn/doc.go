// Package pinn trains a physics-informed neural network against the
// spring-mass-damper problem using GoMLX.
//
// The network is a small feed-forward approximator mapping time t to the
// state pair (x, v). Training minimizes
//
//	L = Wr·mean(r1² + r2²) + Wb·(mean((x(0)−x0)²) + mean((v(0)−v0)²))
//
// where the residuals r1 = dx/dt − v and r2 = m·dv/dt + c·v + k·x − F(t)
// are assembled inside the computation graph, with dx/dt and dv/dt obtained
// by automatic differentiation of the network with respect to its input.
// Everything runs on GoMLX's pure-Go backend; no GPU or external runtime is
// required.
package pinn
