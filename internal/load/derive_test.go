package load

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDeriveOutcome(t *testing.T) {
	tests := []struct {
		name       string
		outcome    time.Time
		completion time.Time
		want       OutcomeDerived
	}{
		{
			name:       "sunday outcome",
			outcome:    day(2023, time.January, 15),
			completion: day(2023, time.January, 10),
			want:       OutcomeDerived{Day: "Sunday", WeekendFlag: 1, Quarter: 1, ReportDuration: 5},
		},
		{
			name:       "weekday outcome",
			outcome:    day(2024, time.May, 30),
			completion: day(2024, time.May, 1),
			want:       OutcomeDerived{Day: "Thursday", WeekendFlag: 0, Quarter: 2, ReportDuration: 29},
		},
		{
			name:       "fourth quarter",
			outcome:    day(2025, time.December, 1),
			completion: day(2025, time.December, 1),
			want:       OutcomeDerived{Day: "Monday", WeekendFlag: 0, Quarter: 4, ReportDuration: 0},
		},
		{
			name:       "outcome before completion keeps negative duration",
			outcome:    day(2023, time.January, 5),
			completion: day(2023, time.January, 10),
			want:       OutcomeDerived{Day: "Thursday", WeekendFlag: 0, Quarter: 1, ReportDuration: -5},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveOutcome(tt.outcome, tt.completion))
		})
	}
}

func TestDeriveOutcome_QuarterBoundaries(t *testing.T) {
	quarters := map[time.Month]int16{
		time.January: 1, time.March: 1,
		time.April: 2, time.June: 2,
		time.July: 3, time.September: 3,
		time.October: 4, time.December: 4,
	}
	for m, want := range quarters {
		got := DeriveOutcome(day(2023, m, 2), day(2023, m, 1))
		assert.Equal(t, want, got.Quarter, "month %s", m)
	}
}
