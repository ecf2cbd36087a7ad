package timedataset

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUnivariateDataset(t *testing.T) {
	testData := map[string]struct {
		t        []time.Time
		y        []float64
		expected *TimeDataset
		err      error
	}{
		"no training data": {
			err: ErrNoTrainingData,
		},
		"length mismatch": {
			y:   []float64{1},
			err: ErrDatasetLenMismatch,
		},
		"non increasing time": {
			t: []time.Time{
				time.Date(1970, 2, 1, 0, 0, 0, 0, time.UTC),
				time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
			},
			y:   []float64{1, 2},
			err: ErrNonMontonic,
		},
		"valid": {
			t: []time.Time{
				time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(1970, 2, 1, 0, 0, 0, 0, time.UTC),
			},
			y: []float64{1, 2},
			expected: &TimeDataset{
				T: []time.Time{
					time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
					time.Date(1970, 2, 1, 0, 0, 0, 0, time.UTC),
				},
				Y: []float64{1, 2},
			},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			ds, err := NewUnivariateDataset(td.t, td.y)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, td.expected, ds)
		})
	}
}

func TestNewMonthlyDataset(t *testing.T) {
	testData := map[string]struct {
		t   []time.Time
		y   []float64
		err error
	}{
		"valid across year boundary": {
			t: []time.Time{
				time.Date(1970, 11, 1, 0, 0, 0, 0, time.UTC),
				time.Date(1970, 12, 1, 0, 0, 0, 0, time.UTC),
				time.Date(1971, 1, 1, 0, 0, 0, 0, time.UTC),
			},
			y: []float64{1, 2, 3},
		},
		"month end anchored": {
			t: []time.Time{
				time.Date(1960, 1, 31, 0, 0, 0, 0, time.UTC),
				time.Date(1960, 2, 29, 0, 0, 0, 0, time.UTC),
				time.Date(1960, 3, 31, 0, 0, 0, 0, time.UTC),
				time.Date(1960, 4, 30, 0, 0, 0, 0, time.UTC),
			},
			y: []float64{1, 2, 3, 4},
		},
		"skips february from month end": {
			t: []time.Time{
				time.Date(1960, 1, 31, 0, 0, 0, 0, time.UTC),
				time.Date(1960, 3, 2, 0, 0, 0, 0, time.UTC),
			},
			y:   []float64{1, 2},
			err: ErrIrregularInterval,
		},
		"gap": {
			t: []time.Time{
				time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(1970, 3, 1, 0, 0, 0, 0, time.UTC),
			},
			y:   []float64{1, 2},
			err: ErrIrregularInterval,
		},
		"daily": {
			t: []time.Time{
				time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(1970, 1, 2, 0, 0, 0, 0, time.UTC),
			},
			y:   []float64{1, 2},
			err: ErrIrregularInterval,
		},
		"nan value": {
			t: []time.Time{
				time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(1970, 2, 1, 0, 0, 0, 0, time.UTC),
			},
			y:   []float64{1, math.NaN()},
			err: ErrNonFiniteValue,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			ds, err := NewMonthlyDataset(td.t, td.y)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(td.y), ds.Len())
		})
	}
}

func TestCopy(t *testing.T) {
	tSeries := []time.Time{
		time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(1970, 2, 1, 0, 0, 0, 0, time.UTC),
	}

	y := []float64{0, 1}
	ds, err := NewUnivariateDataset(tSeries, y)
	require.Nil(t, err)

	// caller mutation does not leak into the dataset
	y[0] = 100
	assert.Equal(t, 0.0, ds.Y[0])

	nextDs := ds.Copy()
	require.Equal(t, ds, nextDs)

	ds.Y[1] = 7
	require.NotEqual(t, nextDs, ds)
}

func TestSplit(t *testing.T) {
	tSeries := GenerateMonthlyT(5, time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC))
	ds, err := NewMonthlyDataset(tSeries, []float64{1, 2, 3, 4, 5})
	require.NoError(t, err)

	testData := map[string]struct {
		n     int
		train []float64
		test  []float64
		err   error
	}{
		"last two":   {n: 2, train: []float64{1, 2, 3}, test: []float64{4, 5}},
		"last one":   {n: 1, train: []float64{1, 2, 3, 4}, test: []float64{5}},
		"everything": {n: 5, err: ErrInvalidSplit},
		"nothing":    {n: 0, err: ErrInvalidSplit},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			train, test, err := ds.Split(td.n)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, td.train, train.Y)
			assert.Equal(t, td.test, test.Y)
			assert.Equal(t, tSeries[len(td.train)], test.T[0])

			// halves are independent copies
			test.Y[0] = -1
			assert.NotEqual(t, -1.0, ds.Y[len(td.train)])
		})
	}
}

func TestTail(t *testing.T) {
	tSeries := GenerateMonthlyT(5, time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC))
	ds, err := NewMonthlyDataset(tSeries, []float64{1, 2, 3, 4, 5})
	require.NoError(t, err)

	tail, err := ds.Tail(3)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 4, 5}, tail.Y)
	assert.Equal(t, tSeries[2:], tail.T)

	all, err := ds.Tail(10)
	require.NoError(t, err)
	assert.Equal(t, ds, all)

	_, err = (*TimeDataset)(nil).Tail(1)
	assert.ErrorIs(t, err, ErrNoTrainingData)
}

func TestAligned(t *testing.T) {
	start := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	a := &TimeDataset{T: GenerateMonthlyT(3, start), Y: []float64{1, 2, 3}}
	b := &TimeDataset{T: GenerateMonthlyT(3, start), Y: []float64{4, 5, 6}}
	c := &TimeDataset{T: GenerateMonthlyT(3, start.AddDate(0, 1, 0)), Y: []float64{4, 5, 6}}
	d := &TimeDataset{T: GenerateMonthlyT(2, start), Y: []float64{4, 5}}

	assert.True(t, a.Aligned(b))
	assert.False(t, a.Aligned(c))
	assert.False(t, a.Aligned(d))
	assert.False(t, a.Aligned(nil))
}
