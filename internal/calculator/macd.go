package calculator

import "errors"

// CalculateMACD computes the MACD line (fast EMA minus slow EMA) and its
// signal line (EMA of the MACD line) over the close series. Both returned
// series have the same length as the input.
func CalculateMACD(closes []float64, fast, slow, signal int) (macdLine, signalLine []float64, err error) {
	if fast <= 0 || slow <= 0 || signal <= 0 {
		return nil, nil, errors.New("MACD periods must be positive")
	}
	if len(closes) == 0 {
		return nil, nil, errors.New("no values for MACD calculation")
	}

	fastEMA, err := CalculateEMASeries(closes, fast)
	if err != nil {
		return nil, nil, err
	}
	slowEMA, err := CalculateEMASeries(closes, slow)
	if err != nil {
		return nil, nil, err
	}

	macdLine = make([]float64, len(closes))
	for i := range closes {
		macdLine[i] = fastEMA[i] - slowEMA[i]
	}
	signalLine, err = CalculateEMASeries(macdLine, signal)
	if err != nil {
		return nil, nil, err
	}
	return macdLine, signalLine, nil
}
