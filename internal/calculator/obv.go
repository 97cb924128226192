package calculator

import "TrendSentinel/internal/model"

// CalculateOBV computes the cumulative On-Balance Volume series. A bar whose
// close is below the prior close subtracts its volume; any other bar
// (including an unchanged close) adds it.
func CalculateOBV(bars []model.PriceBar) []float64 {
	if len(bars) == 0 {
		return nil
	}
	obv := make([]float64, len(bars))
	obv[0] = bars[0].Volume
	for i := 1; i < len(bars); i++ {
		if bars[i].Close < bars[i-1].Close {
			obv[i] = obv[i-1] - bars[i].Volume
		} else {
			obv[i] = obv[i-1] + bars[i].Volume
		}
	}
	return obv
}

// SlopeLeastSquares fits a degree-1 least-squares line to the values
// (x = 0, 1, 2, ...) and returns its slope. Fewer than two points have no
// defined direction and yield 0.
func SlopeLeastSquares(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	xMean := float64(n-1) / 2.0
	var yMean float64
	for _, v := range values {
		yMean += v
	}
	yMean /= float64(n)

	var num, den float64
	for i, v := range values {
		dx := float64(i) - xMean
		num += dx * (v - yMean)
		den += dx * dx
	}
	return num / den
}
