// Package forecaster selects the most accurate Holt-Winters configuration for a monthly series,
// refits it on the full history and projects it forward.
package forecaster

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/aouyang1/go-holtwinters/selection"
	"github.com/aouyang1/go-holtwinters/smoothing"
	"github.com/aouyang1/go-holtwinters/stats"
	"github.com/aouyang1/go-holtwinters/timedataset"
	"gonum.org/v1/gonum/floats"
)

var (
	ErrEmptyTimeDataset = errors.New("no timedataset or uninitialized")
	ErrNoOptionsInModel = errors.New("no options set in model")
	ErrNoModel          = errors.New("forecaster has not been fit")
)

// Forecaster selects, fits and projects a Holt-Winters model
type Forecaster struct {
	opt      *Options
	selector *selection.Selector

	model   *Model
	fit     *smoothing.FitResult
	results *Results
}

// New creates a new instance of a Forecaster using the provided options. If no options are
// provided a default is used.
func New(opt *Options) (*Forecaster, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	sel, err := selection.New(opt.SelectionOptions)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize selector, %w", err)
	}
	return &Forecaster{
		opt:      opt,
		selector: sel,
	}, nil
}

// NewFromModel creates a new instance of Forecaster from a pre-existing model. This should be
// generated from a previous forecaster call to Model().
func NewFromModel(model Model) (*Forecaster, error) {
	if model.Options == nil {
		return nil, ErrNoOptionsInModel
	}
	if err := model.Config.Validate(); err != nil {
		return nil, fmt.Errorf("unable to load model config, %w", err)
	}
	if err := model.Coefficients.Validate(model.Config); err != nil {
		return nil, fmt.Errorf("unable to load model coefficients, %w", err)
	}
	f, err := New(model.Options)
	if err != nil {
		return nil, err
	}
	f.model = &model
	return f, nil
}

// Forecast runs the candidate search on td, refits the winning configuration on all of td and
// projects horizon months past its end. The reported scores are the holdout scores from the
// search.
func (f *Forecaster) Forecast(ctx context.Context, td *timedataset.TimeDataset, horizon int) (*Results, error) {
	if horizon < 1 {
		return nil, fmt.Errorf("horizon of %d, %w", horizon, smoothing.ErrInvalidHorizon)
	}
	if td == nil || td.Len() == 0 {
		return nil, ErrEmptyTimeDataset
	}
	if err := td.ValidateMonthly(); err != nil {
		return nil, fmt.Errorf("unable to use training data, %w", err)
	}
	history := td.Copy()

	sel, err := f.selector.SelectBest(ctx, history)
	if err != nil {
		return nil, fmt.Errorf("unable to select model, %w", err)
	}

	fit, err := f.selector.Optimizer().Optimize(ctx, history, sel.Best.Config)
	if err != nil {
		return nil, fmt.Errorf("unable to refit %s on full history, %w", sel.Best.Config, err)
	}

	scores := *sel.Best.Scores
	model := &Model{
		TrainEndTime: fit.TrainEndTime(),
		Options:      f.opt,
		Config:       fit.Config,
		Coefficients: fit.Coefficients,
		Scores:       &scores,
	}

	res, err := f.project(history, fit, model, horizon)
	if err != nil {
		return nil, err
	}
	res.Holdout = sel.Holdout
	res.HoldoutForecast = sel.Best.Predicted
	res.Candidates = sel.Candidates

	f.model = model
	f.fit = fit
	f.results = res
	return res, nil
}

// Predict runs the saved model's configuration and coefficients over td without searching
// and projects horizon months past its end
func (f *Forecaster) Predict(td *timedataset.TimeDataset, horizon int) (*Results, error) {
	if f.model == nil {
		return nil, ErrNoModel
	}
	if horizon < 1 {
		return nil, fmt.Errorf("horizon of %d, %w", horizon, smoothing.ErrInvalidHorizon)
	}
	if td == nil || td.Len() == 0 {
		return nil, ErrEmptyTimeDataset
	}
	if err := td.ValidateMonthly(); err != nil {
		return nil, fmt.Errorf("unable to use input data, %w", err)
	}
	history := td.Copy()

	fit, err := smoothing.Fit(history, f.model.Config, f.model.Coefficients)
	if err != nil {
		return nil, fmt.Errorf("unable to fit saved model, %w", err)
	}
	model := *f.model
	model.TrainEndTime = fit.TrainEndTime()
	return f.project(history, fit, &model, horizon)
}

func (f *Forecaster) project(history *timedataset.TimeDataset, fit *smoothing.FitResult, model *Model, horizon int) (*Results, error) {
	fc, err := fit.Forecast(horizon)
	if err != nil {
		return nil, fmt.Errorf("unable to forecast %d periods, %w", horizon, err)
	}
	for i, v := range fc.Y {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%s forecast is %v at %s, %w",
				fit.Config, v, fc.T[i].Format("2006-01"), smoothing.ErrNonFiniteFit)
		}
	}

	lower := make([]float64, fc.Len())
	upper := make([]float64, fc.Len())
	floats.ScaleTo(lower, 1-f.opt.Guardrail, fc.Y)
	floats.ScaleTo(upper, 1+f.opt.Guardrail, fc.Y)

	return &Results{
		History:  history,
		Fitted:   fit.Fitted,
		Forecast: fc,
		Lower:    lower,
		Upper:    upper,
		Outliers: residualOutliers(history, fit),
		Model:    *model,
	}, nil
}

// residualOutliers flags the months whose one step residual falls outside the Tukey fences.
// The seed cycle is skipped since it reproduces the observations.
func residualOutliers(history *timedataset.TimeDataset, fit *smoothing.FitResult) []time.Time {
	m := fit.Config.SeasonalPeriod
	residuals := fit.Residuals()
	if len(residuals) <= m {
		return nil
	}
	idx := stats.DetectOutliers(residuals[m:], stats.DefaultLowerQuantile, stats.DefaultUpperQuantile, stats.DefaultTukeyFactor)
	if len(idx) == 0 {
		return nil
	}
	outliers := make([]time.Time, 0, len(idx))
	for _, i := range idx {
		outliers = append(outliers, history.T[i+m])
	}
	return outliers
}

// Model returns a serializeable representation of the fit options, configuration and
// coefficients. This can be used to initialize a new Forecaster for predictions skipping the
// candidate search.
func (f *Forecaster) Model() (Model, error) {
	if f.model == nil {
		return Model{}, ErrNoModel
	}
	return *f.model, nil
}

// Residuals returns the difference between the full history fit and the history
func (f *Forecaster) Residuals() []float64 {
	return f.fit.Residuals()
}

// FitResults returns the results of the last Forecast call
func (f *Forecaster) FitResults() *Results {
	return f.results
}
