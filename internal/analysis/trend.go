package analysis

// WindowedAverages computes the moving average of the series over the given
// window size. Shorter-than-window prefixes are averaged over what exists.
func WindowedAverages(series []float64, window int) []float64 {
	if window < 1 {
		window = 1
	}
	out := make([]float64, len(series))
	var sum float64
	for i, v := range series {
		sum += v
		n := window
		if i+1 < window {
			n = i + 1
		} else if i >= window {
			sum -= series[i-window]
		}
		out[i] = sum / float64(n)
	}
	return out
}

// TrendNonIncreasing reports whether the windowed average of the loss never
// rises by more than slack (relative). Individual-step increases are fine;
// a rising moving average means training is not making progress.
func TrendNonIncreasing(losses []float64, window int, slack float64) bool {
	avg := WindowedAverages(losses, window)
	for i := window; i < len(avg); i++ {
		if avg[i] > avg[i-1]*(1+slack) {
			return false
		}
	}
	return true
}
