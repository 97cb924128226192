package model

// Period is the requested lookback window for a scoring pass.
type Period string

const (
	Period1Mo Period = "1mo"
	Period3Mo Period = "3mo"
	Period6Mo Period = "6mo"
	Period1Y  Period = "1y"
	Period2Y  Period = "2y"
)

// DefaultPeriod is used when no period is supplied.
const DefaultPeriod = Period6Mo

var periodDays = map[Period]int{
	Period1Mo: 31,
	Period3Mo: 93,
	Period6Mo: 186,
	Period1Y:  365,
	Period2Y:  730,
}

// Days maps the period to its calendar-day lookback count. Unrecognized
// values map to the 6-month window.
func (p Period) Days() int {
	if d, ok := periodDays[p]; ok {
		return d
	}
	return periodDays[Period6Mo]
}
