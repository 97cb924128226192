package model

import "testing"

func TestPeriodDays(t *testing.T) {
	tests := []struct {
		period Period
		days   int
	}{
		{Period1Mo, 31},
		{Period3Mo, 93},
		{Period6Mo, 186},
		{Period1Y, 365},
		{Period2Y, 730},
		{Period("5y"), 186},  // unknown values fall back to 6mo
		{Period(""), 186},
	}
	for _, tt := range tests {
		if got := tt.period.Days(); got != tt.days {
			t.Errorf("Period(%q).Days() = %d, want %d", tt.period, got, tt.days)
		}
	}
}
