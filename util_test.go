package forecaster

import (
	"math"
	"testing"
	"time"

	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/stretchr/testify/assert"
)

func TestLineData(t *testing.T) {
	testData := map[string]struct {
		y        []float64
		expected []opts.LineData
	}{
		"empty": {
			expected: []opts.LineData{},
		},
		"values": {
			y:        []float64{1, 2.5},
			expected: []opts.LineData{{Value: 1.0}, {Value: 2.5}},
		},
		"gaps": {
			y:        []float64{math.NaN(), 3},
			expected: []opts.LineData{{Value: missing}, {Value: 3.0}},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, td.expected, lineData(td.y))
		})
	}
}

func TestMonthLabels(t *testing.T) {
	start := time.Date(1960, 11, 1, 0, 0, 0, 0, time.UTC)
	labels := monthLabels([]time.Time{start, start.AddDate(0, 1, 0), start.AddDate(0, 2, 0)})
	assert.Equal(t, []string{"1960-11", "1960-12", "1961-01"}, labels)
}
