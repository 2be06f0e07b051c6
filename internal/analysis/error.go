package analysis

import (
	"fmt"
	"math"
)

// ResidualSummary aggregates pointwise residual magnitudes.
type ResidualSummary struct {
	MaxR1, MaxR2   float64
	MeanR1, MeanR2 float64
}

func SummarizeResiduals(r1, r2 []float64) ResidualSummary {
	var s ResidualSummary
	if len(r1) == 0 {
		return s
	}
	for i := range r1 {
		a1, a2 := math.Abs(r1[i]), math.Abs(r2[i])
		s.MaxR1 = math.Max(s.MaxR1, a1)
		s.MaxR2 = math.Max(s.MaxR2, a2)
		s.MeanR1 += a1
		s.MeanR2 += a2
	}
	s.MeanR1 /= float64(len(r1))
	s.MeanR2 /= float64(len(r2))
	return s
}

// WithinTolerance reports whether every residual magnitude is below tol.
func (s ResidualSummary) WithinTolerance(tol float64) bool {
	return s.MaxR1 < tol && s.MaxR2 < tol
}

// L2RelativeError is ‖pred − exact‖₂ / ‖exact‖₂.
func L2RelativeError(pred, exact []float64) (float64, error) {
	if len(pred) != len(exact) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(pred), len(exact))
	}
	if len(pred) == 0 {
		return 0, fmt.Errorf("empty series")
	}
	var num, den float64
	for i := range pred {
		d := pred[i] - exact[i]
		num += d * d
		den += exact[i] * exact[i]
	}
	if den == 0 {
		return 0, fmt.Errorf("exact solution is identically zero")
	}
	return math.Sqrt(num / den), nil
}

// MaxAbsError is the sup-norm of the pointwise difference.
func MaxAbsError(pred, exact []float64) (float64, error) {
	if len(pred) != len(exact) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(pred), len(exact))
	}
	var m float64
	for i := range pred {
		m = math.Max(m, math.Abs(pred[i]-exact[i]))
	}
	return m, nil
}
