package timedataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartTime(t *testing.T) {
	testData := map[string]struct {
		tSlice   TimeSlice
		expected time.Time
	}{
		"nil input for start time": {
			tSlice:   nil,
			expected: time.Time{},
		},
		"valid start time": {
			tSlice: TimeSlice([]time.Time{
				time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(1970, 2, 1, 0, 0, 0, 0, time.UTC),
				time.Date(1970, 3, 1, 0, 0, 0, 0, time.UTC),
			}),
			expected: time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			res := td.tSlice.StartTime()
			assert.Equal(t, td.expected, res)
		})
	}
}

func TestEndTime(t *testing.T) {
	testData := map[string]struct {
		tSlice   TimeSlice
		expected time.Time
	}{
		"nil input for end time": {
			tSlice:   nil,
			expected: time.Time{},
		},
		"valid end time": {
			tSlice: TimeSlice([]time.Time{
				time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(1970, 2, 1, 0, 0, 0, 0, time.UTC),
				time.Date(1970, 3, 1, 0, 0, 0, 0, time.UTC),
			}),
			expected: time.Date(1970, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			res := td.tSlice.EndTime()
			assert.Equal(t, td.expected, res)
		})
	}
}

func TestNextMonths(t *testing.T) {
	testData := map[string]struct {
		tSlice   TimeSlice
		n        int
		expected []time.Time
		err      error
	}{
		"empty slice": {
			tSlice: nil,
			n:      1,
			err:    ErrCannotInferNext,
		},
		"crosses year": {
			tSlice: TimeSlice([]time.Time{
				time.Date(1960, 10, 1, 0, 0, 0, 0, time.UTC),
				time.Date(1960, 11, 1, 0, 0, 0, 0, time.UTC),
			}),
			n: 3,
			expected: []time.Time{
				time.Date(1960, 12, 1, 0, 0, 0, 0, time.UTC),
				time.Date(1961, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(1961, 2, 1, 0, 0, 0, 0, time.UTC),
			},
		},
		"month end anchor": {
			tSlice: TimeSlice([]time.Time{
				time.Date(1960, 1, 31, 0, 0, 0, 0, time.UTC),
				time.Date(1960, 2, 29, 0, 0, 0, 0, time.UTC),
			}),
			n: 3,
			expected: []time.Time{
				time.Date(1960, 3, 31, 0, 0, 0, 0, time.UTC),
				time.Date(1960, 4, 30, 0, 0, 0, 0, time.UTC),
				time.Date(1960, 5, 31, 0, 0, 0, 0, time.UTC),
			},
		},
		"zero horizon": {
			tSlice: TimeSlice([]time.Time{
				time.Date(1960, 10, 1, 0, 0, 0, 0, time.UTC),
			}),
			n:        0,
			expected: []time.Time{},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			res, err := td.tSlice.NextMonths(td.n)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, td.expected, res)
		})
	}
}

func TestMonthStart(t *testing.T) {
	res := MonthStart(time.Date(1960, 2, 17, 13, 4, 5, 6, time.UTC))
	assert.Equal(t, time.Date(1960, 2, 1, 0, 0, 0, 0, time.UTC), res)
}

func TestNextMonth(t *testing.T) {
	testData := map[string]struct {
		t        time.Time
		expected time.Time
	}{
		"month start": {
			t:        time.Date(1960, 12, 1, 6, 30, 0, 0, time.UTC),
			expected: time.Date(1961, 1, 1, 6, 30, 0, 0, time.UTC),
		},
		"clamps to leap february": {
			t:        time.Date(1960, 1, 31, 0, 0, 0, 0, time.UTC),
			expected: time.Date(1960, 2, 29, 0, 0, 0, 0, time.UTC),
		},
		"clamps to short month": {
			t:        time.Date(1961, 3, 31, 0, 0, 0, 0, time.UTC),
			expected: time.Date(1961, 4, 30, 0, 0, 0, 0, time.UTC),
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, td.expected, NextMonth(td.t))
		})
	}
}
