// Package selection trains every Holt-Winters configuration on a train window, scores each on
// the trailing holdout and picks the most accurate one.
package selection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/aouyang1/go-holtwinters/evaluate"
	"github.com/aouyang1/go-holtwinters/optimizer"
	"github.com/aouyang1/go-holtwinters/smoothing"
	"github.com/aouyang1/go-holtwinters/timedataset"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInsufficientData = errors.New("insufficient data to split into train and holdout")
	ErrNoViableModel    = errors.New("every candidate configuration failed")
)

// Candidates enumerates every valid configuration for the seasonal period. Trend goes
// none, additive then multiplicative, seasonality additive then multiplicative and undamped
// before damped. This order is the final tie-breaker.
func Candidates(period int) []smoothing.Config {
	trends := []smoothing.TrendType{
		smoothing.TrendNone,
		smoothing.TrendAdditive,
		smoothing.TrendMultiplicative,
	}
	seasonals := []smoothing.SeasonalType{
		smoothing.SeasonalAdditive,
		smoothing.SeasonalMultiplicative,
	}

	var configs []smoothing.Config
	for _, trend := range trends {
		for _, seasonal := range seasonals {
			for _, damped := range []bool{false, true} {
				if damped && trend == smoothing.TrendNone {
					continue
				}
				configs = append(configs, smoothing.Config{
					Trend:          trend,
					Seasonal:       seasonal,
					SeasonalPeriod: period,
					Damped:         damped,
				})
			}
		}
	}
	return configs
}

// CandidateResult is the holdout outcome of one configuration
type CandidateResult struct {
	Config       smoothing.Config       `json:"config"`
	Coefficients smoothing.Coefficients `json:"coefficients"`
	Scores       *evaluate.Scores       `json:"scores,omitempty"`

	// Predicted is the forecast over the holdout window
	Predicted *timedataset.TimeDataset `json:"predicted,omitempty"`

	// Err is set when the candidate was skipped
	Err error `json:"-"`
}

// Skipped returns true if the candidate could not be trained or scored
func (c CandidateResult) Skipped() bool {
	return c.Err != nil
}

// Selection is the outcome of a candidate search
type Selection struct {
	Best CandidateResult `json:"best"`

	// Candidates holds every configuration in enumeration order including skipped ones
	Candidates []CandidateResult `json:"candidates"`

	Train   *timedataset.TimeDataset `json:"train"`
	Holdout *timedataset.TimeDataset `json:"holdout"`
}

// Selector runs the candidate search
type Selector struct {
	opt *Options
	o   *optimizer.Optimizer
}

// New creates a selector with the given options. If none are provided a default is used.
func New(opt *Options) (*Selector, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	o, err := optimizer.New(opt.OptimizerOptions)
	if err != nil {
		return nil, err
	}
	return &Selector{opt: opt, o: o}, nil
}

// Options returns the validated options in use
func (s *Selector) Options() Options {
	return *s.opt
}

// Optimizer returns the coefficient optimizer shared by every candidate
func (s *Selector) Optimizer() *optimizer.Optimizer {
	return s.o
}

// SelectBest splits off the trailing holdout, trains and scores every candidate and returns
// the one with the lowest holdout RMSE. Ties fall back to MAE then enumeration order.
func (s *Selector) SelectBest(ctx context.Context, td *timedataset.TimeDataset) (*Selection, error) {
	if td == nil || td.Len() <= s.opt.Holdout {
		n := 0
		if td != nil {
			n = td.Len()
		}
		return nil, fmt.Errorf("%d points with a holdout of %d, %w", n, s.opt.Holdout, ErrInsufficientData)
	}

	train, holdout, err := td.Split(s.opt.Holdout)
	if err != nil {
		return nil, err
	}

	configs := Candidates(s.opt.SeasonalPeriod)
	results := make([]CandidateResult, len(configs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opt.Parallelization)
	for i, cfg := range configs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := s.evaluateCandidate(gctx, train, holdout, cfg)
			if res.Err != nil {
				if errors.Is(res.Err, context.Canceled) || errors.Is(res.Err, context.DeadlineExceeded) {
					return res.Err
				}
				slog.Warn("skipping candidate", "config", cfg.String(), "error", res.Err.Error())
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("candidate search interrupted, %w", err)
	}

	best := -1
	for i, res := range results {
		if res.Skipped() {
			continue
		}
		if best < 0 || s.better(res.Scores, results[best].Scores) {
			best = i
		}
	}
	if best < 0 {
		errs := make([]error, 0, len(results))
		for _, res := range results {
			errs = append(errs, res.Err)
		}
		return nil, fmt.Errorf("%w, %w", ErrNoViableModel, errors.Join(errs...))
	}

	slog.Debug("selected candidate",
		"config", results[best].Config.String(),
		"coefficients", results[best].Coefficients.String(),
		"rmse", results[best].Scores.RMSE,
		"mae", results[best].Scores.MAE,
	)

	return &Selection{
		Best:       results[best],
		Candidates: results,
		Train:      train,
		Holdout:    holdout,
	}, nil
}

// evaluateCandidate trains one configuration and scores its forecast over the holdout
func (s *Selector) evaluateCandidate(ctx context.Context, train, holdout *timedataset.TimeDataset, cfg smoothing.Config) CandidateResult {
	res := CandidateResult{Config: cfg}

	fit, err := s.o.Optimize(ctx, train, cfg)
	if err != nil {
		res.Err = fmt.Errorf("unable to optimize %s, %w", cfg, err)
		return res
	}
	res.Coefficients = fit.Coefficients

	predicted, err := fit.Forecast(holdout.Len())
	if err != nil {
		res.Err = fmt.Errorf("unable to forecast %s, %w", cfg, err)
		return res
	}
	for _, v := range predicted.Y {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			res.Err = fmt.Errorf("holdout forecast of %s, %w", cfg, smoothing.ErrNonFiniteFit)
			return res
		}
	}
	res.Predicted = predicted

	scores, err := evaluate.Evaluate(holdout, predicted)
	if err != nil {
		res.Err = fmt.Errorf("unable to score %s, %w", cfg, err)
		return res
	}
	res.Scores = scores
	return res
}

// better reports whether a strictly beats b. Values within the tie tolerance are equal.
func (s *Selector) better(a, b *evaluate.Scores) bool {
	if !s.tied(a.RMSE, b.RMSE) {
		return a.RMSE < b.RMSE
	}
	if !s.tied(a.MAE, b.MAE) {
		return a.MAE < b.MAE
	}
	return false
}

// tied compares relative to the larger magnitude, or absolutely below 1
func (s *Selector) tied(a, b float64) bool {
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= s.opt.TieTolerance*scale
}
