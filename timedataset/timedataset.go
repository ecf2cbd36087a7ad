package timedataset

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrNoTrainingData     = errors.New("no training data")
	ErrNonMontonic        = errors.New("time feature is not monotonic")
	ErrDatasetLenMismatch = errors.New("time feature has a different length than observations")
	ErrIrregularInterval  = errors.New("time feature is not spaced at a fixed monthly step")
	ErrNonFiniteValue     = errors.New("observation is not a finite value")
	ErrInvalidSplit       = errors.New("split index is out of range")
)

// TimeDataset represents a time series storing a slice of time points and values.
// Both must be of the same length. A TimeDataset is treated as immutable once
// constructed; every transformation returns a new dataset with copied slices.
type TimeDataset struct {
	T []time.Time `json:"time"`
	Y []float64   `json:"values"`
}

// NewUnivariateDataset returns an instance of a TimeDataset given a time and value slice.
// The inputs are copied so later mutation by the caller does not leak into the dataset.
func NewUnivariateDataset(t []time.Time, y []float64) (*TimeDataset, error) {
	if len(y) == 0 {
		return nil, ErrNoTrainingData
	}
	if len(t) != len(y) {
		return nil, fmt.Errorf(
			"time feature has length of %d, but values has a length of %d, %w",
			len(t), len(y), ErrDatasetLenMismatch,
		)
	}

	for i := 1; i < len(t); i++ {
		if !t[i].After(t[i-1]) {
			return nil, fmt.Errorf("non-monotonic at %d, %w", i, ErrNonMontonic)
		}
	}

	tSeries := make([]time.Time, len(t))
	ySeries := make([]float64, len(t))
	copy(tSeries, t)
	copy(ySeries, y)
	td := &TimeDataset{
		T: tSeries,
		Y: ySeries,
	}

	return td, nil
}

// NewMonthlyDataset returns a TimeDataset whose timestamps advance by exactly one calendar
// month at every step with no gaps, and whose values are all finite.
func NewMonthlyDataset(t []time.Time, y []float64) (*TimeDataset, error) {
	td, err := NewUnivariateDataset(t, y)
	if err != nil {
		return nil, err
	}
	if err := td.ValidateMonthly(); err != nil {
		return nil, err
	}
	return td, nil
}

// ValidateMonthly checks the fixed monthly step and finite value invariants.
func (td *TimeDataset) ValidateMonthly() error {
	if td == nil || len(td.Y) == 0 {
		return ErrNoTrainingData
	}
	for i, v := range td.Y {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("value at %d is %v, %w", i, v, ErrNonFiniteValue)
		}
	}
	for i := 1; i < len(td.T); i++ {
		if monthIndex(td.T[i])-monthIndex(td.T[i-1]) != 1 {
			expected := NextMonth(td.T[i-1])
			return fmt.Errorf("expected %s at %d, but got %s, %w",
				expected.Format("2006-01"), i, td.T[i].Format(time.DateOnly), ErrIrregularInterval)
		}
	}
	return nil
}

// Len returns the number of observations
func (td *TimeDataset) Len() int {
	if td == nil {
		return 0
	}
	return len(td.Y)
}

func (td *TimeDataset) Copy() *TimeDataset {
	if td == nil {
		return nil
	}
	tSeries := make([]time.Time, len(td.T))
	ySeries := make([]float64, len(td.Y))
	copy(tSeries, td.T)
	copy(ySeries, td.Y)
	return &TimeDataset{
		T: tSeries,
		Y: ySeries,
	}
}

// Values returns a copy of the observations
func (td *TimeDataset) Values() []float64 {
	if td == nil {
		return nil
	}
	y := make([]float64, len(td.Y))
	copy(y, td.Y)
	return y
}

// Slice returns a copy of the points in [start, end)
func (td *TimeDataset) Slice(start, end int) (*TimeDataset, error) {
	if td == nil {
		return nil, ErrNoTrainingData
	}
	if start < 0 || end > len(td.Y) || start >= end {
		return nil, fmt.Errorf("slice [%d, %d) of %d points, %w", start, end, len(td.Y), ErrInvalidSplit)
	}
	tSeries := make([]time.Time, end-start)
	ySeries := make([]float64, end-start)
	copy(tSeries, td.T[start:end])
	copy(ySeries, td.Y[start:end])
	return &TimeDataset{T: tSeries, Y: ySeries}, nil
}

// Split returns everything before the last n points and the last n points as two
// new datasets. Both halves must be non-empty.
func (td *TimeDataset) Split(n int) (*TimeDataset, *TimeDataset, error) {
	if td == nil {
		return nil, nil, ErrNoTrainingData
	}
	cut := len(td.Y) - n
	head, err := td.Slice(0, cut)
	if err != nil {
		return nil, nil, err
	}
	tail, err := td.Slice(cut, len(td.Y))
	if err != nil {
		return nil, nil, err
	}
	return head, tail, nil
}

// Tail returns the last n points. If the dataset is shorter than n, a copy of the
// whole dataset is returned.
func (td *TimeDataset) Tail(n int) (*TimeDataset, error) {
	if td == nil || len(td.Y) == 0 {
		return nil, ErrNoTrainingData
	}
	if n >= len(td.Y) {
		return td.Copy(), nil
	}
	return td.Slice(len(td.Y)-n, len(td.Y))
}

// Aligned returns true if both datasets share the exact same timestamps
func (td *TimeDataset) Aligned(other *TimeDataset) bool {
	if td == nil || other == nil {
		return td == other
	}
	if len(td.T) != len(other.T) || len(td.Y) != len(other.Y) {
		return false
	}
	for i := range td.T {
		if !td.T[i].Equal(other.T[i]) {
			return false
		}
	}
	return true
}
