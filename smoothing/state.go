package smoothing

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// state is the running level, trend and seasonal components of a single fit. It is
// allocated per call and never shared between fits.
type state struct {
	cfg  Config
	coef Coefficients

	level  float64
	trend  float64
	season []float64
}

// newState seeds the components from the first seasonal cycle and, for the trend, the
// change between the first two cycles.
func newState(y []float64, cfg Config, coef Coefficients) *state {
	m := cfg.SeasonalPeriod
	s := &state{
		cfg:    cfg,
		coef:   coef.Normalize(cfg),
		season: make([]float64, m),
	}

	s.level = stat.Mean(y[:m], nil)
	for i := 0; i < m; i++ {
		switch cfg.Seasonal {
		case SeasonalMultiplicative:
			s.season[i] = y[i] / s.level
		default:
			s.season[i] = y[i] - s.level
		}
	}

	// only full pairs of periods one cycle apart contribute to the initial trend
	pairs := len(y) - m
	if pairs > m {
		pairs = m
	}
	switch cfg.Trend {
	case TrendAdditive:
		var sum float64
		for i := 0; i < pairs; i++ {
			sum += (y[m+i] - y[i]) / float64(m)
		}
		s.trend = sum / float64(pairs)
	case TrendMultiplicative:
		ratio := stat.Mean(y[m:m+pairs], nil) / stat.Mean(y[:pairs], nil)
		s.trend = math.Pow(ratio, 1.0/float64(m))
	default:
		s.trend = 0
	}
	return s
}

// seed returns the value the initial state reproduces for a period of the first cycle
func (s *state) seed(idx int) float64 {
	return s.combine(s.level, idx)
}

// base returns the level projected by the trend k steps ahead with damping applied
// through the geometric sum phi + phi^2 + ... + phi^k.
func (s *state) base(k int) float64 {
	switch s.cfg.Trend {
	case TrendAdditive:
		return s.level + dampedSum(s.coef.Phi, k)*s.trend
	case TrendMultiplicative:
		return s.level * math.Pow(s.trend, dampedSum(s.coef.Phi, k))
	}
	return s.level
}

func (s *state) combine(base float64, idx int) float64 {
	if s.cfg.Seasonal == SeasonalMultiplicative {
		return base * s.season[idx]
	}
	return base + s.season[idx]
}

// update absorbs an observation at seasonal index idx and returns the one-step prediction
// that was made before absorbing it.
func (s *state) update(y float64, idx int) float64 {
	alpha, beta, gamma, phi := s.coef.Alpha, s.coef.Beta, s.coef.Gamma, s.coef.Phi

	prevSeason := s.season[idx]
	prevLevel := s.level
	base := s.base(1)
	predicted := s.combine(base, idx)

	var deseasoned float64
	switch s.cfg.Seasonal {
	case SeasonalMultiplicative:
		deseasoned = y / prevSeason
	default:
		deseasoned = y - prevSeason
	}
	s.level = alpha*deseasoned + (1-alpha)*base

	switch s.cfg.Trend {
	case TrendAdditive:
		s.trend = beta*(s.level-prevLevel) + (1-beta)*phi*s.trend
	case TrendMultiplicative:
		s.trend = beta*(s.level/prevLevel) + (1-beta)*math.Pow(s.trend, phi)
	}

	switch s.cfg.Seasonal {
	case SeasonalMultiplicative:
		s.season[idx] = gamma*(y/s.level) + (1-gamma)*prevSeason
	default:
		s.season[idx] = gamma*(y-s.level) + (1-gamma)*prevSeason
	}
	return predicted
}

// run seeds the first cycle and absorbs the remainder of y, writing the one-step
// predictions into fitted when non-nil. It returns the sum of squared residuals past
// the first cycle.
func (s *state) run(y, fitted []float64) float64 {
	m := s.cfg.SeasonalPeriod
	if fitted != nil {
		for i := 0; i < m; i++ {
			fitted[i] = s.seed(i)
		}
	}

	var sse float64
	for t := m; t < len(y); t++ {
		predicted := s.update(y[t], t%m)
		if fitted != nil {
			fitted[t] = predicted
		}
		residual := y[t] - predicted
		sse += residual * residual
	}
	return sse
}

func (s *state) finite() bool {
	if math.IsNaN(s.level) || math.IsInf(s.level, 0) || math.IsNaN(s.trend) || math.IsInf(s.trend, 0) {
		return false
	}
	for _, v := range s.season {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s *state) copy() *state {
	season := make([]float64, len(s.season))
	copy(season, s.season)
	return &state{
		cfg:    s.cfg,
		coef:   s.coef,
		level:  s.level,
		trend:  s.trend,
		season: season,
	}
}

func dampedSum(phi float64, k int) float64 {
	if phi == 1 {
		return float64(k)
	}
	var sum float64
	pow := 1.0
	for i := 0; i < k; i++ {
		pow *= phi
		sum += pow
	}
	return sum
}
