package dataset

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/aouyang1/go-holtwinters/timedataset"
)

const (
	DefaultHistoryMonths   = 48
	DefaultHistoryFilename = "demand_history.csv"
)

var ErrInvalidHistoryMonths = errors.New("history must span at least one month")

// BuildHistory returns the trailing months of td ending at its last observation. The window is
// checked to be an unbroken monthly series. A dataset shorter than the window is returned
// whole.
func BuildHistory(td *timedataset.TimeDataset, months int) (*timedataset.TimeDataset, error) {
	if months < 1 {
		return nil, fmt.Errorf("history of %d months, %w", months, ErrInvalidHistoryMonths)
	}
	if td == nil || td.Len() == 0 {
		return nil, timedataset.ErrNoTrainingData
	}

	last := timedataset.TimeSlice(td.T).EndTime()
	first := timedataset.MonthStart(last).AddDate(0, -(months - 1), 0)

	start := 0
	for start < td.Len() && timedataset.MonthStart(td.T[start]).Before(first) {
		start++
	}
	history, err := td.Slice(start, td.Len())
	if err != nil {
		return nil, err
	}
	if history.Len() < months {
		slog.Warn("history shorter than requested window",
			"requested_months", months,
			"available_months", history.Len(),
		)
	}
	if err := history.ValidateMonthly(); err != nil {
		return nil, fmt.Errorf("history window is not an unbroken monthly series, %w", err)
	}
	return history, nil
}
