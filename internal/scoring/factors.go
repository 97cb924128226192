package scoring

import (
	"math"

	"TrendSentinel/internal/calculator"
	"TrendSentinel/internal/model"
)

const (
	maShortPeriod = 20
	maLongPeriod  = 50

	macdFastPeriod   = 12
	macdSlowPeriod   = 26
	macdSignalPeriod = 9
	macdMinBars      = 34

	adxPeriod = 14

	rsiPeriod = 14

	obvMinBars     = 10
	obvSlopeWindow = 5
)

// scoreMA compares the last close against the 20-bar and 50-bar simple
// moving averages. Range: [-3, 3]; fewer than 50 bars score neutral.
func scoreMA(s *model.PriceSeries) int {
	if s.Len() < maLongPeriod {
		return 0
	}
	closes := s.Closes()
	shortMA, err := calculator.CalculateSMA(closes, maShortPeriod)
	if err != nil {
		return 0
	}
	longMA, err := calculator.CalculateSMA(closes, maLongPeriod)
	if err != nil {
		return 0
	}
	price := closes[len(closes)-1]

	switch {
	case price > shortMA && shortMA > longMA:
		spread := (shortMA - longMA) / longMA
		switch {
		case spread > 0.05:
			return 3
		case spread > 0.02:
			return 2
		default:
			return 1
		}
	case price > shortMA:
		return 1
	case price < shortMA && shortMA < longMA:
		spread := (longMA - shortMA) / longMA
		switch {
		case spread > 0.05:
			return -3
		case spread > 0.02:
			return -2
		default:
			return -1
		}
	case price < shortMA:
		return -1
	default:
		return 0
	}
}

// scoreMACD compares the 12/26 MACD line against its 9-bar signal line,
// refined by whether the MACD line is rising or falling. Range: [-2, 2].
func scoreMACD(s *model.PriceSeries) int {
	if s.Len() < macdMinBars {
		return 0
	}
	macdLine, signalLine, err := calculator.CalculateMACD(s.Closes(), macdFastPeriod, macdSlowPeriod, macdSignalPeriod)
	if err != nil {
		return 0
	}
	last := len(macdLine) - 1
	latest, signal := macdLine[last], signalLine[last]
	if math.IsNaN(latest) || math.IsNaN(signal) {
		return 0
	}
	prev := latest
	if last > 0 {
		prev = macdLine[last-1]
	}

	switch {
	case latest > signal:
		if latest > 0 && latest-prev > 0 {
			return 2
		}
		return 1
	case latest < signal:
		if latest < 0 && latest-prev < 0 {
			return -2
		}
		return -1
	default:
		return 0
	}
}

// scoreADX rates trend strength via Wilder ADX, signed by the +DI/-DI
// comparison. Range: [-2, 2].
func scoreADX(s *model.PriceSeries) int {
	if s.Len() < adxPeriod+14 {
		return 0
	}
	adx, plusDI, minusDI, err := calculator.CalculateADX(s.Bars, adxPeriod)
	if err != nil {
		return 0
	}
	if math.IsNaN(adx) || math.IsNaN(plusDI) || math.IsNaN(minusDI) {
		return 0
	}
	return adxBucket(adx, plusDI, minusDI)
}

func adxBucket(adx, plusDI, minusDI float64) int {
	switch {
	case adx > 30:
		if plusDI > minusDI {
			return 2
		}
		return -2
	case adx > 20:
		if plusDI > minusDI {
			return 1
		}
		return -1
	default:
		return 0
	}
}

// scoreRSI buckets RSI(14) with a deliberate reversal bias: the overbought
// zone fades the trend (-1) while the oversold zone anticipates the bounce
// (+1). The asymmetric table is part of the scoring contract and must not be
// "fixed" into a symmetric rule. Range: [-1, 1].
func scoreRSI(s *model.PriceSeries) int {
	if s.Len() < rsiPeriod {
		return 0
	}
	rsi, err := calculator.CalculateRSI(s.Bars, rsiPeriod)
	if err != nil {
		return 0
	}
	if math.IsNaN(rsi) {
		return 0
	}
	return rsiBucket(rsi)
}

func rsiBucket(rsi float64) int {
	switch {
	case rsi > 70:
		return -1
	case rsi > 60:
		return 1
	case rsi < 30:
		return 1
	case rsi < 40:
		return -1
	default:
		return 0
	}
}

// scoreOBV fits a least-squares line to the last 5 On-Balance-Volume points
// and scores by its sign. Range: [-1, 1].
func scoreOBV(s *model.PriceSeries) int {
	if s.Len() < obvMinBars {
		return 0
	}
	obv := calculator.CalculateOBV(s.Bars)
	if len(obv) < obvSlopeWindow {
		return 0
	}
	slope := calculator.SlopeLeastSquares(obv[len(obv)-obvSlopeWindow:])
	switch {
	case slope > 0:
		return 1
	case slope < 0:
		return -1
	default:
		return 0
	}
}
