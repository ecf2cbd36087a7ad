package smoothing

import (
	"fmt"
)

// Coefficients are the continuous smoothing parameters. Beta is only used with a trend and
// Phi only when the trend is damped.
type Coefficients struct {
	Alpha float64 `json:"alpha"`
	Beta  float64 `json:"beta,omitempty"`
	Gamma float64 `json:"gamma"`
	Phi   float64 `json:"phi,omitempty"`
}

func inUnitInterval(v float64) bool {
	return v > 0 && v <= 1
}

// Validate checks every coefficient used by the configuration lies in (0, 1]
func (c Coefficients) Validate(cfg Config) error {
	if !inUnitInterval(c.Alpha) {
		return fmt.Errorf("alpha of %v outside (0, 1], %w", c.Alpha, ErrInvalidConfig)
	}
	if !inUnitInterval(c.Gamma) {
		return fmt.Errorf("gamma of %v outside (0, 1], %w", c.Gamma, ErrInvalidConfig)
	}
	if cfg.HasTrend() && !inUnitInterval(c.Beta) {
		return fmt.Errorf("beta of %v outside (0, 1], %w", c.Beta, ErrInvalidConfig)
	}
	if cfg.Damped && !inUnitInterval(c.Phi) {
		return fmt.Errorf("phi of %v outside (0, 1], %w", c.Phi, ErrInvalidConfig)
	}
	return nil
}

// Normalize zeroes beta without a trend and fixes phi to 1 without damping
func (c Coefficients) Normalize(cfg Config) Coefficients {
	if !cfg.HasTrend() {
		c.Beta = 0
	}
	if !cfg.Damped {
		c.Phi = 1
	}
	return c
}

// Vector flattens the coefficients used by the configuration in alpha, beta, gamma, phi order
func (c Coefficients) Vector(cfg Config) []float64 {
	x := make([]float64, 0, cfg.NumCoefficients())
	x = append(x, c.Alpha)
	if cfg.HasTrend() {
		x = append(x, c.Beta)
	}
	x = append(x, c.Gamma)
	if cfg.Damped {
		x = append(x, c.Phi)
	}
	return x
}

// CoefficientsFromVector is the inverse of Vector
func CoefficientsFromVector(cfg Config, x []float64) (Coefficients, error) {
	if len(x) != cfg.NumCoefficients() {
		return Coefficients{}, fmt.Errorf("expected %d coefficients, but got %d, %w",
			cfg.NumCoefficients(), len(x), ErrInvalidConfig)
	}
	var c Coefficients
	i := 0
	c.Alpha = x[i]
	i++
	if cfg.HasTrend() {
		c.Beta = x[i]
		i++
	}
	c.Gamma = x[i]
	i++
	if cfg.Damped {
		c.Phi = x[i]
	}
	return c.Normalize(cfg), nil
}

func (c Coefficients) String() string {
	return fmt.Sprintf("alpha=%.4f beta=%.4f gamma=%.4f phi=%.4f", c.Alpha, c.Beta, c.Gamma, c.Phi)
}
