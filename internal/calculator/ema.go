package calculator

import "errors"

// CalculateEMASeries computes the full exponential moving average series with
// alpha = 2/(period+1). The series is seeded with the first value, matching
// the recursive form y[0] = x[0], y[t] = (1-alpha)*y[t-1] + alpha*x[t].
func CalculateEMASeries(values []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	if len(values) == 0 {
		return nil, errors.New("no values for EMA calculation")
	}
	alpha := 2.0 / float64(period+1)
	ema := make([]float64, len(values))
	ema[0] = values[0]
	for i := 1; i < len(values); i++ {
		ema[i] = ema[i-1]*(1-alpha) + values[i]*alpha
	}
	return ema, nil
}
