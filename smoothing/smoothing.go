// Package smoothing implements the Holt-Winters triple exponential smoothing recursion for a
// single model configuration and a fixed set of smoothing coefficients.
package smoothing

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/aouyang1/go-holtwinters/timedataset"
	"gonum.org/v1/gonum/floats"
)

var (
	ErrInvalidConfig  = errors.New("invalid model configuration")
	ErrNonFiniteFit   = errors.New("smoothing recursion produced a non-finite value")
	ErrInvalidHorizon = errors.New("forecast horizon must be at least 1")
	ErrUntrainedFit   = errors.New("fit result has not been trained")
)

// FitResult is a trained smoothing model along with its in-sample fit
type FitResult struct {
	Config       Config       `json:"config"`
	Coefficients Coefficients `json:"coefficients"`

	// Fitted holds the one-step predictions aligned to the training input. The first
	// seasonal cycle holds seed values reproduced from the initial state.
	Fitted *timedataset.TimeDataset `json:"fitted"`

	// SSE is the sum of squared residuals past the first seasonal cycle
	SSE float64 `json:"sum_squared_error"`

	residual []float64
	final    *state
}

// validate checks the configuration and coefficients against the observations
func validate(y []float64, cfg Config, coef Coefficients) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := ValidateData(y, cfg); err != nil {
		return err
	}
	return coef.Validate(cfg)
}

// ValidateData checks that the observations can be modeled with the configuration. The series
// must be longer than one seasonal cycle and strictly positive for multiplicative components.
func ValidateData(y []float64, cfg Config) error {
	if cfg.SeasonalPeriod >= len(y) {
		return fmt.Errorf("seasonal period of %d with only %d observations, %w",
			cfg.SeasonalPeriod, len(y), ErrInvalidConfig)
	}
	if cfg.Multiplicative() {
		for i, v := range y {
			if v <= 0 {
				return fmt.Errorf("non-positive value %v at %d with %s, %w", v, i, cfg, ErrInvalidConfig)
			}
		}
	}
	return nil
}

// Fit runs the smoothing recursion over the training data
func Fit(td *timedataset.TimeDataset, cfg Config, coef Coefficients) (*FitResult, error) {
	if td == nil || td.Len() == 0 {
		return nil, timedataset.ErrNoTrainingData
	}
	y := td.Y
	if err := validate(y, cfg, coef); err != nil {
		return nil, err
	}

	s := newState(y, cfg, coef)
	fitted := make([]float64, len(y))
	sse := s.run(y, fitted)
	if math.IsNaN(sse) || math.IsInf(sse, 0) || !s.finite() {
		return nil, fmt.Errorf("%s with %s, %w", cfg, coef, ErrNonFiniteFit)
	}

	fittedTd, err := timedataset.NewUnivariateDataset(td.T, fitted)
	if err != nil {
		return nil, fmt.Errorf("unable to create fitted dataset, %w", err)
	}

	residual := make([]float64, len(y))
	floats.SubTo(residual, y, fitted)

	return &FitResult{
		Config:       cfg,
		Coefficients: s.coef,
		Fitted:       fittedTd,
		SSE:          sse,
		residual:     residual,
		final:        s.copy(),
	}, nil
}

// SSE runs the recursion without recording fitted values and returns the in-sample sum of
// squared residuals. This is the objective minimized when tuning coefficients.
func SSE(y []float64, cfg Config, coef Coefficients) (float64, error) {
	if len(y) == 0 {
		return 0, timedataset.ErrNoTrainingData
	}
	if err := validate(y, cfg, coef); err != nil {
		return 0, err
	}
	s := newState(y, cfg, coef)
	sse := s.run(y, nil)
	if math.IsNaN(sse) || math.IsInf(sse, 0) || !s.finite() {
		return 0, fmt.Errorf("%s with %s, %w", cfg, coef, ErrNonFiniteFit)
	}
	return sse, nil
}

// Forecast projects the trained model horizon periods past the end of the training data
func (r *FitResult) Forecast(horizon int) (*timedataset.TimeDataset, error) {
	if r == nil || r.final == nil || r.Fitted == nil {
		return nil, ErrUntrainedFit
	}
	if horizon < 1 {
		return nil, fmt.Errorf("horizon of %d, %w", horizon, ErrInvalidHorizon)
	}

	t, err := timedataset.TimeSlice(r.Fitted.T).NextMonths(horizon)
	if err != nil {
		return nil, err
	}

	n := r.Fitted.Len()
	m := r.Config.SeasonalPeriod
	y := make([]float64, horizon)
	for k := 1; k <= horizon; k++ {
		idx := (n + k - 1) % m
		y[k-1] = r.final.combine(r.final.base(k), idx)
	}
	return timedataset.NewUnivariateDataset(t, y)
}

// Residuals returns observed minus fitted for every training period. The first seasonal
// cycle only carries rounding error since its fitted values reproduce the observations.
func (r *FitResult) Residuals() []float64 {
	if r == nil {
		return nil
	}
	res := make([]float64, len(r.residual))
	copy(res, r.residual)
	return res
}

// TrainEndTime returns the timestamp of the last absorbed observation
func (r *FitResult) TrainEndTime() time.Time {
	if r == nil || r.Fitted == nil {
		return time.Time{}
	}
	return timedataset.TimeSlice(r.Fitted.T).EndTime()
}
