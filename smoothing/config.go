package smoothing

import (
	"fmt"
	"strings"
)

// DefaultSeasonalPeriod is the number of monthly observations in one seasonal cycle
const DefaultSeasonalPeriod = 12

// TrendType describes how the trend component combines with the level
type TrendType int

const (
	TrendNone TrendType = iota
	TrendAdditive
	TrendMultiplicative
)

var trendNames = map[TrendType]string{
	TrendNone:           "none",
	TrendAdditive:       "additive",
	TrendMultiplicative: "multiplicative",
}

func (t TrendType) String() string {
	if name, exists := trendNames[t]; exists {
		return name
	}
	return fmt.Sprintf("TrendType(%d)", int(t))
}

func (t TrendType) MarshalText() ([]byte, error) {
	if _, exists := trendNames[t]; !exists {
		return nil, fmt.Errorf("trend type %d, %w", int(t), ErrInvalidConfig)
	}
	return []byte(t.String()), nil
}

func (t *TrendType) UnmarshalText(text []byte) error {
	parsed, err := ParseTrendType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseTrendType accepts the long names along with the short add/mul forms
func ParseTrendType(s string) (TrendType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return TrendNone, nil
	case "add", "additive":
		return TrendAdditive, nil
	case "mul", "multiplicative":
		return TrendMultiplicative, nil
	}
	return TrendNone, fmt.Errorf("unknown trend type %q, %w", s, ErrInvalidConfig)
}

// SeasonalType describes how the seasonal component combines with the level and trend
type SeasonalType int

const (
	SeasonalAdditive SeasonalType = iota
	SeasonalMultiplicative
)

var seasonalNames = map[SeasonalType]string{
	SeasonalAdditive:       "additive",
	SeasonalMultiplicative: "multiplicative",
}

func (s SeasonalType) String() string {
	if name, exists := seasonalNames[s]; exists {
		return name
	}
	return fmt.Sprintf("SeasonalType(%d)", int(s))
}

func (s SeasonalType) MarshalText() ([]byte, error) {
	if _, exists := seasonalNames[s]; !exists {
		return nil, fmt.Errorf("seasonal type %d, %w", int(s), ErrInvalidConfig)
	}
	return []byte(s.String()), nil
}

func (s *SeasonalType) UnmarshalText(text []byte) error {
	parsed, err := ParseSeasonalType(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSeasonalType accepts the long names along with the short add/mul forms
func ParseSeasonalType(s string) (SeasonalType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "add", "additive":
		return SeasonalAdditive, nil
	case "mul", "multiplicative":
		return SeasonalMultiplicative, nil
	}
	return SeasonalAdditive, fmt.Errorf("unknown seasonal type %q, %w", s, ErrInvalidConfig)
}

// Config is one discrete Holt-Winters model variant
type Config struct {
	Trend          TrendType    `json:"trend"`
	Seasonal       SeasonalType `json:"seasonal"`
	SeasonalPeriod int          `json:"seasonal_period"`
	Damped         bool         `json:"damped_trend"`
}

// Validate checks the configuration independent of any series
func (c Config) Validate() error {
	if _, exists := trendNames[c.Trend]; !exists {
		return fmt.Errorf("trend type %d, %w", int(c.Trend), ErrInvalidConfig)
	}
	if _, exists := seasonalNames[c.Seasonal]; !exists {
		return fmt.Errorf("seasonal type %d, %w", int(c.Seasonal), ErrInvalidConfig)
	}
	if c.SeasonalPeriod < 2 {
		return fmt.Errorf("seasonal period of %d, %w", c.SeasonalPeriod, ErrInvalidConfig)
	}
	if c.Damped && c.Trend == TrendNone {
		return fmt.Errorf("damping without a trend component, %w", ErrInvalidConfig)
	}
	return nil
}

// HasTrend returns true if the configuration carries a trend component
func (c Config) HasTrend() bool {
	return c.Trend != TrendNone
}

// NumCoefficients is the dimension of the coefficient vector for this configuration
func (c Config) NumCoefficients() int {
	n := 2 // alpha, gamma
	if c.HasTrend() {
		n++
	}
	if c.Damped {
		n++
	}
	return n
}

// Multiplicative returns true if any component requires strictly positive observations
func (c Config) Multiplicative() bool {
	return c.Trend == TrendMultiplicative || c.Seasonal == SeasonalMultiplicative
}

func (c Config) String() string {
	return fmt.Sprintf("trend=%s seasonal=%s period=%d damped=%t", c.Trend, c.Seasonal, c.SeasonalPeriod, c.Damped)
}
