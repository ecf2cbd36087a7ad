package selection

import (
	"errors"
	"fmt"

	"github.com/aouyang1/go-holtwinters/optimizer"
	"github.com/aouyang1/go-holtwinters/smoothing"
)

const (
	DefaultHoldout = 12

	// relative RMSE or MAE difference under which two candidates are considered tied
	DefaultTieTolerance = 1e-9
)

var (
	ErrNonPositiveHoldout = errors.New("holdout must be at least 1")
	ErrNegativeTolerance  = errors.New("negative tie tolerance")
)

// Options configures the candidate search
type Options struct {
	// Holdout is the number of trailing periods reserved for scoring each candidate
	Holdout        int `json:"holdout"`
	SeasonalPeriod int `json:"seasonal_period"`

	TieTolerance float64 `json:"tie_tolerance"`

	// Parallelization sets how many candidates are trained concurrently
	Parallelization int `json:"parallelization"`

	OptimizerOptions *optimizer.Options `json:"optimizer_options"`
}

// NewDefaultOptions returns the default selection settings
func NewDefaultOptions() *Options {
	return &Options{
		Holdout:          DefaultHoldout,
		SeasonalPeriod:   smoothing.DefaultSeasonalPeriod,
		TieTolerance:     DefaultTieTolerance,
		Parallelization:  1,
		OptimizerOptions: optimizer.NewDefaultOptions(),
	}
}

// Validate runs basic validation on the options filling unset fields with defaults
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		o = NewDefaultOptions()
	}
	if o.Holdout < 0 {
		return nil, fmt.Errorf("holdout of %d, %w", o.Holdout, ErrNonPositiveHoldout)
	}
	if o.TieTolerance < 0 {
		return nil, ErrNegativeTolerance
	}
	if o.Holdout == 0 {
		o.Holdout = DefaultHoldout
	}
	if o.SeasonalPeriod == 0 {
		o.SeasonalPeriod = smoothing.DefaultSeasonalPeriod
	}
	if o.SeasonalPeriod < 2 {
		return nil, fmt.Errorf("seasonal period of %d, %w", o.SeasonalPeriod, smoothing.ErrInvalidConfig)
	}
	if o.TieTolerance == 0 {
		o.TieTolerance = DefaultTieTolerance
	}
	if o.Parallelization < 1 {
		o.Parallelization = 1
	}

	optOpt, err := o.OptimizerOptions.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid optimizer options, %w", err)
	}
	o.OptimizerOptions = optOpt
	return o, nil
}
