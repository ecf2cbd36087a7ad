// Package evaluate scores forecasts against held out actuals
package evaluate

import (
	"errors"
	"fmt"
	"math"

	"github.com/aouyang1/go-holtwinters/timedataset"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrResLenMismatch   = errors.New("predicted and actual have different lengths")
	ErrMisalignedSeries = errors.New("predicted and actual timestamps are not aligned")
	ErrNoValues         = errors.New("no values to score")
)

// Scores tracks the holdout accuracy of a forecast
type Scores struct {
	MAE  float64 `json:"mean_absolute_error"`
	RMSE float64 `json:"root_mean_squared_error"`

	// MAPE is a percentage. It is NaN when every actual is zero.
	MAPE float64 `json:"mean_absolute_percent_error"`
}

// Evaluate scores predicted against actual after checking both cover the same periods. A
// length mismatch is reported as both ErrResLenMismatch and ErrMisalignedSeries.
func Evaluate(actual, predicted *timedataset.TimeDataset) (*Scores, error) {
	if actual == nil || predicted == nil {
		return nil, ErrNoValues
	}
	if actual.Len() != predicted.Len() {
		return nil, fmt.Errorf("expected %d, but got %d, %w, %w",
			actual.Len(), predicted.Len(), ErrResLenMismatch, ErrMisalignedSeries)
	}
	if !actual.Aligned(predicted) {
		return nil, ErrMisalignedSeries
	}
	return NewScores(predicted.Y, actual.Y)
}

// NewScores calculates the accuracy scores given the predicted and actual input slice values
func NewScores(predicted, actual []float64) (*Scores, error) {
	mae, err := MAE(predicted, actual)
	if err != nil {
		return nil, fmt.Errorf("unable to compute mean absolute error, %w", err)
	}
	rmse, err := RMSE(predicted, actual)
	if err != nil {
		return nil, fmt.Errorf("unable to compute root mean squared error, %w", err)
	}
	mape, err := MAPE(predicted, actual)
	if err != nil {
		return nil, fmt.Errorf("unable to compute mean absolute percent error, %w", err)
	}
	return &Scores{
		MAE:  mae,
		RMSE: rmse,
		MAPE: mape,
	}, nil
}

func residuals(predicted, actual []float64) ([]float64, error) {
	if len(predicted) != len(actual) {
		return nil, fmt.Errorf("expected %d, but got %d, %w, %w", len(actual), len(predicted), ErrResLenMismatch, ErrMisalignedSeries)
	}
	if len(actual) == 0 {
		return nil, ErrNoValues
	}
	res := make([]float64, len(actual))
	floats.SubTo(res, actual, predicted)
	return res, nil
}

// MAE computes the mean absolute error. A score of 0 means a perfect match.
func MAE(predicted, actual []float64) (float64, error) {
	res, err := residuals(predicted, actual)
	if err != nil {
		return 0, err
	}
	return floats.Norm(res, 1) / float64(len(res)), nil
}

// RMSE computes the square root of the mean squared error
func RMSE(predicted, actual []float64) (float64, error) {
	res, err := residuals(predicted, actual)
	if err != nil {
		return 0, err
	}
	floats.Mul(res, res)
	return math.Sqrt(stat.Mean(res, nil)), nil
}

// MAPE calculates the mean absolute percent error over periods with a non-zero actual,
// scaled to a percentage. Zero actuals are excluded from both the sum and the count.
func MAPE(predicted, actual []float64) (float64, error) {
	if len(predicted) != len(actual) {
		return 0, fmt.Errorf("expected %d, but got %d, %w, %w", len(actual), len(predicted), ErrResLenMismatch, ErrMisalignedSeries)
	}
	if len(actual) == 0 {
		return 0, ErrNoValues
	}

	var sum float64
	var cnt int
	for i := 0; i < len(actual); i++ {
		if actual[i] == 0 {
			continue
		}
		sum += math.Abs((actual[i] - predicted[i]) / actual[i])
		cnt++
	}
	if cnt == 0 {
		return math.NaN(), nil
	}
	return 100 * sum / float64(cnt), nil
}
