package forecaster

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/aouyang1/go-holtwinters/evaluate"
	"github.com/aouyang1/go-holtwinters/selection"
	"github.com/aouyang1/go-holtwinters/smoothing"
	"github.com/aouyang1/go-holtwinters/timedataset"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResults(t *testing.T) *Results {
	t.Helper()

	histStart := time.Date(1957, 1, 1, 0, 0, 0, 0, time.UTC)
	history, err := timedataset.NewMonthlyDataset(
		timedataset.GenerateMonthlyT(48, histStart),
		timedataset.GenerateConstY(48, 100).Add(timedataset.GenerateWaveY(48, 10, 12, 0)),
	)
	require.NoError(t, err)

	fc, err := timedataset.NewMonthlyDataset(
		timedataset.GenerateMonthlyT(2, time.Date(1961, 1, 1, 0, 0, 0, 0, time.UTC)),
		[]float64{100, 105},
	)
	require.NoError(t, err)

	cfg := smoothing.Config{Seasonal: smoothing.SeasonalAdditive, SeasonalPeriod: 12}
	skipped := smoothing.Config{Seasonal: smoothing.SeasonalMultiplicative, SeasonalPeriod: 12}
	return &Results{
		History:  history,
		Forecast: fc,
		Lower:    []float64{92, 96.6},
		Upper:    []float64{108, 113.4},
		Outliers: []time.Time{time.Date(1958, 7, 1, 0, 0, 0, 0, time.UTC)},
		Model: Model{
			TrainEndTime: history.T[47],
			Config:       cfg,
			Coefficients: smoothing.Coefficients{Alpha: 0.5, Gamma: 0.25},
			Scores:       &evaluate.Scores{MAE: 1.5, RMSE: 2.25, MAPE: 1.125},
		},
		Candidates: []selection.CandidateResult{
			{Config: cfg, Scores: &evaluate.Scores{MAE: 1.5, RMSE: 2.25, MAPE: 1.125}},
			{Config: skipped, Err: smoothing.ErrInvalidConfig},
		},
	}
}

func TestNextPeriod(t *testing.T) {
	res := newTestResults(t)
	next, val, err := res.NextPeriod()
	require.NoError(t, err)
	assert.Equal(t, time.Date(1961, 1, 1, 0, 0, 0, 0, time.UTC), next)
	assert.Equal(t, 100.0, val)

	var empty *Results
	_, _, err = empty.NextPeriod()
	assert.ErrorIs(t, err, ErrNoForecast)
}

func TestReport(t *testing.T) {
	res := newTestResults(t)

	var buf bytes.Buffer
	require.NoError(t, res.Report(&buf, "passengers"))

	expected := `Next month (January 1961) forecast: 100.00 passengers
Best model parameters: trend=none seasonal=additive period=12 damped=false, Alpha: 0.500    Gamma: 0.250
Accuracy on last-year holdout -> MAE: 1.50, RMSE: 2.25, MAPE: 1.12%
`
	assert.Equal(t, expected, buf.String())

	res.Model.Scores.MAPE = math.NaN()
	buf.Reset()
	require.NoError(t, res.Report(&buf, "units"))
	assert.True(t, strings.HasSuffix(buf.String(), "MAPE: undefined\n"))
}

func TestResultsTablePrint(t *testing.T) {
	res := newTestResults(t)

	var buf bytes.Buffer
	require.NoError(t, res.TablePrint(&buf, "", "  "))
	out := buf.String()

	assert.Contains(t, out, "Candidates:\n")
	assert.Contains(t, out, "skipped")
	assert.Contains(t, out, "Residual Outliers:\n  1958-07\n")
	assert.Contains(t, out, "Forecast:\n")
	assert.Contains(t, out, "1961-01")
	assert.Contains(t, out, "113.40")
}

func TestResultsWriteJSON(t *testing.T) {
	res := newTestResults(t)

	var buf bytes.Buffer
	require.NoError(t, res.WriteJSON(&buf))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "history")
	assert.Contains(t, decoded, "forecast")
	assert.Contains(t, decoded, "model")
	assert.Len(t, decoded["candidates"], 2)
	assert.Equal(t, []any{92.0, 96.6}, decoded["lower"])
}

func TestPlotFit(t *testing.T) {
	res := newTestResults(t)

	var buf bytes.Buffer
	require.NoError(t, res.PlotFit(&buf))
	assert.Contains(t, buf.String(), "Demand History and Forecast")

	var empty Results
	assert.ErrorIs(t, empty.PlotFit(&buf), ErrNoForecast)
}
