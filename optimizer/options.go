package optimizer

import (
	"errors"
	"time"
)

const (
	DefaultMinCoefficient     = 1e-4
	DefaultTolerance          = 1e-8
	DefaultStallIterations    = 100
	DefaultMaxFuncEvaluations = 2000
	DefaultGridSize           = 5
	DefaultSimplexSize        = 0.1
)

var (
	ErrInvalidMinCoefficient   = errors.New("minimum coefficient must be in (0, 1)")
	ErrNegativeTolerance       = errors.New("negative tolerance")
	ErrNegativeIterations      = errors.New("negative stall iterations")
	ErrNegativeFuncEvaluations = errors.New("negative function evaluations")
	ErrNegativeRuntime         = errors.New("negative runtime")
	ErrNegativeGridSize        = errors.New("negative grid size")
)

// Options configures the coefficient search
type Options struct {
	// MinCoefficient is the lower bound of every coefficient. The upper bound is always 1.
	MinCoefficient float64 `json:"min_coefficient"`

	// Tolerance is the relative objective improvement below which a start is considered
	// converged once it persists for StallIterations iterations.
	Tolerance       float64 `json:"tolerance"`
	StallIterations int     `json:"stall_iterations"`

	// MaxFuncEvaluations caps objective evaluations per start
	MaxFuncEvaluations int `json:"max_func_evaluations"`

	// Runtime bounds the wall time of each start. Zero means no limit.
	Runtime time.Duration `json:"runtime"`

	// GridSize is the number of levels per coefficient of the brute force grid whose best
	// point seeds an additional start. Zero disables the grid.
	GridSize int `json:"grid_size"`

	// Parallelization sets how many starts run concurrently
	Parallelization int `json:"parallelization"`
}

// NewDefaultOptions returns the default optimizer settings
func NewDefaultOptions() *Options {
	return &Options{
		MinCoefficient:     DefaultMinCoefficient,
		Tolerance:          DefaultTolerance,
		StallIterations:    DefaultStallIterations,
		MaxFuncEvaluations: DefaultMaxFuncEvaluations,
		GridSize:           DefaultGridSize,
		Parallelization:    1,
	}
}

// Validate runs basic validation on the options filling unset fields with defaults
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		o = NewDefaultOptions()
	}

	if o.MinCoefficient < 0 || o.MinCoefficient >= 1 {
		return nil, ErrInvalidMinCoefficient
	}
	if o.Tolerance < 0 {
		return nil, ErrNegativeTolerance
	}
	if o.StallIterations < 0 {
		return nil, ErrNegativeIterations
	}
	if o.MaxFuncEvaluations < 0 {
		return nil, ErrNegativeFuncEvaluations
	}
	if o.Runtime < 0 {
		return nil, ErrNegativeRuntime
	}
	if o.GridSize < 0 {
		return nil, ErrNegativeGridSize
	}

	if o.MinCoefficient == 0 {
		o.MinCoefficient = DefaultMinCoefficient
	}
	if o.Tolerance == 0 {
		o.Tolerance = DefaultTolerance
	}
	if o.StallIterations == 0 {
		o.StallIterations = DefaultStallIterations
	}
	if o.MaxFuncEvaluations == 0 {
		o.MaxFuncEvaluations = DefaultMaxFuncEvaluations
	}
	if o.Parallelization < 1 {
		o.Parallelization = 1
	}
	return o, nil
}
