// Package analysis checks a trained network against ground truth: pointwise
// residual statistics, L2 error against the closed-form solution, the
// windowed trend of the loss curve, and a spectral estimate of the predicted
// oscillation frequency.
package analysis
