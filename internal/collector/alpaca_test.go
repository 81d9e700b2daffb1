package collector

import "testing"

func TestCalendarDays_CoversTradingDays(t *testing.T) {
	tests := []struct {
		trading int
		want    int
	}{
		{15, 31},
		{35, 59},
		{201, 291},
	}
	for _, tt := range tests {
		got := calendarDays(tt.trading)
		if got != tt.want {
			t.Errorf("calendarDays(%d): expected %d, got %d", tt.trading, tt.want, got)
		}
		// five trading days per calendar week
		if got*5/7 < tt.trading {
			t.Errorf("calendarDays(%d)=%d holds too few weekdays", tt.trading, got)
		}
	}
}
