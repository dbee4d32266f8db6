package load

import "time"

// OutcomeDerived holds the temporal fields computed from an encounter's
// outcome and completion dates.
type OutcomeDerived struct {
	Day            string // weekday name of the outcome date
	WeekendFlag    int16  // 1 iff the outcome fell on Saturday or Sunday
	Quarter        int16  // calendar quarter 1-4 of the outcome date
	ReportDuration int32  // whole days between completion and outcome; negative preserved
}

// DeriveOutcome computes the derived temporal fields for a fact row.
// A negative report duration means the outcome predates the end of
// treatment; it is kept as-is because it flags an upstream data-quality
// condition.
func DeriveOutcome(outcome, completion time.Time) OutcomeDerived {
	wd := outcome.Weekday()
	var flag int16
	if wd == time.Saturday || wd == time.Sunday {
		flag = 1
	}
	return OutcomeDerived{
		Day:            wd.String(),
		WeekendFlag:    flag,
		Quarter:        int16(outcome.Month()-1)/3 + 1,
		ReportDuration: int32(outcome.Sub(completion) / (24 * time.Hour)),
	}
}
