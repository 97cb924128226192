package calculator

import (
	"errors"
	"math"

	"TrendSentinel/internal/model"
)

// CalculateADX computes the latest Wilder ADX value together with the latest
// +DI and -DI directional components. Requires at least 2*period+1 bars: one
// change per bar, `period` changes to seed the smoothed ranges, and another
// `period` DX values to seed the ADX average.
func CalculateADX(bars []model.PriceBar, period int) (adx, plusDI, minusDI float64, err error) {
	if period <= 0 {
		return 0, 0, 0, errors.New("period must be positive")
	}
	if len(bars) < 2*period+1 {
		return 0, 0, 0, errors.New("not enough data for ADX calculation")
	}

	n := len(bars) - 1
	tr := make([]float64, n)
	plusDM := make([]float64, n)
	minusDM := make([]float64, n)

	for i := 1; i <= n; i++ {
		cur, prev := bars[i], bars[i-1]

		hl := cur.High - cur.Low
		hc := math.Abs(cur.High - prev.Close)
		lc := math.Abs(cur.Low - prev.Close)
		tr[i-1] = math.Max(hl, math.Max(hc, lc))

		up := cur.High - prev.High
		down := prev.Low - cur.Low
		if up > down && up > 0 {
			plusDM[i-1] = up
		}
		if down > up && down > 0 {
			minusDM[i-1] = down
		}
	}

	// Wilder smoothing: seed with the sum of the first `period` values, then
	// s = s - s/period + x.
	var smTR, smPlusDM, smMinusDM float64
	for i := 0; i < period; i++ {
		smTR += tr[i]
		smPlusDM += plusDM[i]
		smMinusDM += minusDM[i]
	}

	di := func() (p, m float64) {
		if smTR == 0 {
			return 0, 0
		}
		return 100 * smPlusDM / smTR, 100 * smMinusDM / smTR
	}
	dx := func(p, m float64) float64 {
		if p+m == 0 {
			return 0
		}
		return 100 * math.Abs(p-m) / (p + m)
	}

	plusDI, minusDI = di()
	dxSum := dx(plusDI, minusDI)
	dxCount := 1

	for i := period; i < n; i++ {
		smTR = smTR - smTR/float64(period) + tr[i]
		smPlusDM = smPlusDM - smPlusDM/float64(period) + plusDM[i]
		smMinusDM = smMinusDM - smMinusDM/float64(period) + minusDM[i]

		plusDI, minusDI = di()
		d := dx(plusDI, minusDI)
		dxCount++
		if dxCount <= period {
			dxSum += d
			adx = dxSum / float64(dxCount)
		} else {
			adx = (adx*float64(period-1) + d) / float64(period)
		}
	}

	return adx, plusDI, minusDI, nil
}
