package scoring

import "math"

// indicatorWeight is the uniform per-indicator weight. The raw sum of the
// five scores spans [-9, 9], so the weighted raw score spans [-2.1, 2.1].
const indicatorWeight = 2.1 / 9.0

// aggregate combines the five indicator scores into the weighted raw score
// and its 0-100 normalization. Rounding happens here exactly once: the raw
// score to 3 decimals, the normalized score to 2.
func aggregate(ma, macd, adx, rsi, obv int) (weightedRaw, normalized float64) {
	raw := float64(ma+macd+adx+rsi+obv) * indicatorWeight

	norm := (raw + 2.1) / 4.2 * 100
	if norm < 0 {
		norm = 0
	}
	if norm > 100 {
		norm = 100
	}
	return roundTo(raw, 3), roundTo(norm, 2)
}

func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
