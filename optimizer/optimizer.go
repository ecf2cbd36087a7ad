// Package optimizer searches the smoothing coefficient box for the coefficients that minimize
// the in-sample squared error of a Holt-Winters configuration.
package optimizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/aouyang1/go-holtwinters/smoothing"
	"github.com/aouyang1/go-holtwinters/timedataset"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"
)

const (
	// objective returned for coefficients the recursion cannot evaluate
	invalidObjective = 1e300

	// weight of the squared distance outside the coefficient box
	penaltyScale = 1e3

	cornerLow      = 0.1
	cornerHigh     = 0.9
	centerLevel    = 0.5
	maxCoefficient = 1.0
)

var ErrOptimizationFailed = errors.New("no starting point produced a finite sum of squared errors")

// Optimizer tunes smoothing coefficients with a multi-start Nelder-Mead search
type Optimizer struct {
	opt *Options
}

// New creates an optimizer with the given options. If none are provided a default is used.
func New(opt *Options) (*Optimizer, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &Optimizer{opt: opt}, nil
}

// Options returns the validated options in use
func (o *Optimizer) Options() Options {
	return *o.opt
}

type startResult struct {
	x  []float64
	f  float64
	ok bool
}

// Optimize searches for the coefficients minimizing the sum of squared errors of cfg over
// the training data and returns the fit at those coefficients.
func (o *Optimizer) Optimize(ctx context.Context, td *timedataset.TimeDataset, cfg smoothing.Config) (*smoothing.FitResult, error) {
	if td == nil || td.Len() == 0 {
		return nil, timedataset.ErrNoTrainingData
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	y := td.Values()
	if err := smoothing.ValidateData(y, cfg); err != nil {
		return nil, err
	}
	objective := o.objective(y, cfg)
	starts := o.startingPoints(objective, cfg.NumCoefficients())

	results := make([]startResult, len(starts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.opt.Parallelization)
	for i, x0 := range starts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = o.minimize(objective, x0, cfg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("optimization of %s interrupted, %w", cfg, err)
	}

	// keep the best start, earlier starts win ties
	best := -1
	for i, res := range results {
		if !res.ok {
			continue
		}
		if best < 0 || res.f < results[best].f {
			best = i
		}
	}
	if best < 0 {
		return nil, fmt.Errorf("%s, %w", cfg, ErrOptimizationFailed)
	}

	coef, err := smoothing.CoefficientsFromVector(cfg, results[best].x)
	if err != nil {
		return nil, err
	}
	fit, err := smoothing.Fit(td, cfg, coef)
	if err != nil {
		return nil, fmt.Errorf("unable to refit %s at optimum, %v, %w", cfg, err, ErrOptimizationFailed)
	}
	return fit, nil
}

// minimize runs a single Nelder-Mead start and reports the projected optimum
func (o *Optimizer) minimize(objective func([]float64) float64, x0 []float64, cfg smoothing.Config) startResult {
	p := optimize.Problem{Func: objective}
	settings := &optimize.Settings{
		FuncEvaluations: o.opt.MaxFuncEvaluations,
		Runtime:         o.opt.Runtime,
		Converger: &optimize.FunctionConverge{
			Relative:   o.opt.Tolerance,
			Iterations: o.opt.StallIterations,
		},
	}
	method := &optimize.NelderMead{SimplexSize: DefaultSimplexSize}

	res, err := optimize.Minimize(p, x0, settings, method)
	if res == nil {
		slog.Debug("optimizer start failed", "config", cfg.String(), "start", x0, "error", errString(err))
		return startResult{}
	}
	if err != nil {
		// limits reached still leave a usable best location
		slog.Debug("optimizer start ended early", "config", cfg.String(), "status", res.Status.String(), "error", err.Error())
	}

	x := make([]float64, len(res.X))
	o.project(x, res.X)
	f := objective(x)
	if f >= invalidObjective || math.IsNaN(f) || f < 0 {
		return startResult{}
	}
	return startResult{x: x, f: f, ok: true}
}

// objective returns the squared error of the projected coefficients plus a penalty growing
// with the distance outside the box so the simplex is pulled back inside.
func (o *Optimizer) objective(y []float64, cfg smoothing.Config) func([]float64) float64 {
	return func(x []float64) float64 {
		proj := make([]float64, len(x))
		penalty := o.project(proj, x)

		coef, err := smoothing.CoefficientsFromVector(cfg, proj)
		if err != nil {
			return invalidObjective
		}
		sse, err := smoothing.SSE(y, cfg, coef)
		if err != nil {
			return invalidObjective
		}
		return sse + penaltyScale*penalty*(1+sse)
	}
}

// project clamps x into [MinCoefficient, 1] writing into dst and returns the squared
// distance that was removed.
func (o *Optimizer) project(dst, x []float64) float64 {
	var penalty float64
	for i, v := range x {
		clamped := math.Min(math.Max(v, o.opt.MinCoefficient), maxCoefficient)
		if math.IsNaN(v) {
			clamped = centerLevel
			penalty += 1
		}
		d := v - clamped
		if !math.IsNaN(d) {
			penalty += d * d
		}
		dst[i] = clamped
	}
	return penalty
}

// startingPoints returns the box center, every inset corner and, when enabled, the best
// point of the brute force grid.
func (o *Optimizer) startingPoints(objective func([]float64) float64, dim int) [][]float64 {
	center := make([]float64, dim)
	floats.AddConst(centerLevel, center)
	starts := [][]float64{center}

	numCorners := 1 << dim
	for c := 0; c < numCorners; c++ {
		corner := make([]float64, dim)
		for i := 0; i < dim; i++ {
			corner[i] = cornerLow
			if c&(1<<i) != 0 {
				corner[i] = cornerHigh
			}
		}
		starts = append(starts, corner)
	}

	if gridBest := o.bruteForce(objective, dim); gridBest != nil {
		starts = append(starts, gridBest)
	}
	return starts
}

// bruteForce evaluates every point of an evenly spaced grid over the box and returns the
// best one, or nil if the grid is disabled or nothing was finite.
func (o *Optimizer) bruteForce(objective func([]float64) float64, dim int) []float64 {
	size := o.opt.GridSize
	if size < 1 {
		return nil
	}
	levels := make([]float64, size)
	if size == 1 {
		levels[0] = centerLevel
	} else {
		floats.Span(levels, cornerLow, cornerHigh)
	}

	idx := make([]int, dim)
	x := make([]float64, dim)
	var best []float64
	bestF := invalidObjective
	for {
		for i, j := range idx {
			x[i] = levels[j]
		}
		if f := objective(x); f < bestF {
			bestF = f
			best = append(best[:0], x...)
		}

		// advance the odometer
		i := 0
		for ; i < dim; i++ {
			idx[i]++
			if idx[i] < size {
				break
			}
			idx[i] = 0
		}
		if i == dim {
			break
		}
	}
	return best
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
