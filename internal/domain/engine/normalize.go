package engine

import "math"

// Normalization constants.
const (
	zScoreCap = 2.0
	epsilon   = 1e-9
)

// zScoreToUnit maps x to [-1, 1] via a capped z-score against mu/sigma.
// Degenerate sigma collapses to 0 rather than dividing by zero.
func zScoreToUnit(x, mu, sigma float64) float64 {
	var z float64
	if sigma > epsilon {
		z = (x - mu) / sigma
	}
	z = math.Max(-zScoreCap, math.Min(zScoreCap, z))
	return z / zScoreCap
}

// meanStd returns the population mean and standard deviation of vals.
// The deviation is floored to 1.0 so downstream z-scores never blow up on
// constant or empty input.
func meanStd(vals []float64) (mu, sigma float64) {
	if len(vals) == 0 {
		return 0.0, 1.0
	}
	for _, v := range vals {
		mu += v
	}
	mu /= float64(len(vals))
	var ss float64
	for _, v := range vals {
		d := v - mu
		ss += d * d
	}
	sigma = math.Sqrt(ss / float64(len(vals)))
	if sigma <= epsilon {
		sigma = 1.0
	}
	return mu, sigma
}

// clamp01 bounds v to [0, 1].
func clamp01(v float64) float64 {
	return math.Max(0.0, math.Min(1.0, v))
}

// unitFromFraction rescales a bounded [0,1] quantity to [-1, 1].
func unitFromFraction(v float64) float64 {
	return clamp01(v)*2.0 - 1.0
}
