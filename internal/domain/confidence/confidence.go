// Package confidence converts heterogeneous raw classifier scores into
// comparable confidences in [0,1].
package confidence

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Normalization constants.
const (
	// StatisticalTemperature sharpens log-likelihood distributions.
	StatisticalTemperature = 0.5

	winnerThreshold = 0.4
	winnerBoost     = 1.2
	ceiling         = 0.95

	winnerFloor      = 0.6
	runnerUpCeiling  = 0.7
	missFloor        = 0.05
	clearWinnerCount = 2
)

// Softmax returns exp((s_i - max)/T) normalized to sum to 1.
// An empty input yields an empty result; a non-positive T is treated as 1.
func Softmax(scores []float64, temperature float64) []float64 {
	if len(scores) == 0 {
		return []float64{}
	}
	if temperature <= 0 {
		temperature = 1
	}
	p := make([]float64, len(scores))
	copy(p, scores)
	floats.AddConst(-floats.Max(p), p)
	floats.Scale(1/temperature, p)
	for i, v := range p {
		p[i] = math.Exp(v)
	}
	floats.Scale(1/floats.Sum(p), p)
	return p
}

// BoostWinner lifts any probability above 0.4 by x1.2, capped at 0.95, and
// clamps every value to [0,1]. The input is not modified.
func BoostWinner(probs []float64) []float64 {
	out := make([]float64, len(probs))
	for i, p := range probs {
		if p > winnerThreshold {
			p = math.Min(ceiling, p*winnerBoost)
		}
		out[i] = Clamp(p)
	}
	return out
}

// Temperature applies Softmax then BoostWinner.
func Temperature(scores []float64, temperature float64) []float64 {
	return BoostWinner(Softmax(scores, temperature))
}

// ScaleHits maps keyword hit counts, ordered by count descending, to
// confidences. ok is false when every count is zero; callers then report
// neutral with zero confidence.
func ScaleHits(hits []int) (conf []float64, ok bool) {
	if len(hits) == 0 || hits[0] <= 0 {
		return nil, false
	}
	maxHits := hits[0]
	total := 0
	for _, h := range hits {
		total += h
	}

	conf = make([]float64, len(hits))
	for i, h := range hits {
		switch {
		case i == 0 && maxHits >= clearWinnerCount:
			conf[i] = math.Min(ceiling, math.Max(winnerFloor, float64(h)/float64(maxHits+1)))
		case h > 0:
			conf[i] = math.Min(runnerUpCeiling, float64(h)/float64(total))
		default:
			conf[i] = missFloor
		}
	}
	return conf, true
}

// Clamp bounds v to [0,1]; NaN becomes 0.
func Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}

// Spread returns max(scores) - min(scores), or 0 for an empty input.
func Spread(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	return floats.Max(scores) - floats.Min(scores)
}
