package timedataset

import (
	"errors"
	"time"
)

var ErrCannotInferNext = errors.New("cannot continue an empty time slice")

type TimeSlice []time.Time

func (t TimeSlice) StartTime() time.Time {
	var startTime time.Time
	if len(t) < 1 {
		return startTime
	}
	return t[0]
}

func (t TimeSlice) EndTime() time.Time {
	var lastTime time.Time
	if len(t) < 1 {
		return lastTime
	}

	lastTime = t[len(t)-1]
	return lastTime
}

// NextMonths returns n timestamps continuing monthly from the end of the time slice. The day
// of month follows the latest day seen in the slice, clamped to the length of each month, so
// a series anchored at month end keeps landing on month ends.
func (t TimeSlice) NextMonths(n int) ([]time.Time, error) {
	if len(t) < 1 {
		return nil, ErrCannotInferNext
	}
	anchor := t.anchorDay()
	end := t.EndTime()
	next := make([]time.Time, 0, n)
	for k := 1; k <= n; k++ {
		next = append(next, addMonths(end, k, anchor))
	}
	return next, nil
}

func (t TimeSlice) anchorDay() int {
	var day int
	for _, ts := range t {
		day = max(day, ts.Day())
	}
	return day
}

// NextMonth advances a timestamp by one calendar month keeping its day of month, clamped to
// the last day of the following month.
func NextMonth(t time.Time) time.Time {
	return addMonths(t, 1, t.Day())
}

// addMonths moves t by k calendar months onto day, or the last day of the target month when
// it is shorter. The clock time is kept.
func addMonths(t time.Time, k, day int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(k), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	day = min(day, daysIn(first.Year(), first.Month()))
	return time.Date(first.Year(), first.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// monthIndex counts calendar months since year zero
func monthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}

// MonthStart truncates a timestamp to midnight of the first day of its month
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
