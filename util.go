package forecaster

import (
	"io"
	"math"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const monthLayout = "2006-01"

// missing is the echarts placeholder for a gap in a series
const missing = "-"

func monthLabels(t []time.Time) []string {
	labels := make([]string, 0, len(t))
	for _, ts := range t {
		labels = append(labels, ts.Format(monthLayout))
	}
	return labels
}

func lineData(y []float64) []opts.LineData {
	data := make([]opts.LineData, 0, len(y))
	for _, v := range y {
		if math.IsNaN(v) {
			data = append(data, opts.LineData{Value: missing})
			continue
		}
		data = append(data, opts.LineData{Value: v})
	}
	return data
}

// LineTSeries generates an echart multi-line chart for some arbitrary time/value combination. Each
// series in y must have the same length as the input time slice and NaN values are left as gaps.
func LineTSeries(title string, seriesName []string, t []time.Time, y [][]float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
		charts.WithTooltipOpts(
			opts.Tooltip{
				Trigger: "axis",
			},
		),
	)

	line = line.SetXAxis(monthLabels(t))
	for i, series := range seriesName {
		if i >= len(y) {
			break
		}
		line = line.AddSeries(series, lineData(y[i]))
	}
	return line
}

// LineForecaster generates an echart line chart of the history followed by the forecast and its
// min/max guardrails. The forecast line starts at the last historical point so the two connect.
func LineForecaster(res *Results) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title:    "Demand History and Forecast",
				Subtitle: res.Model.Config.String(),
			},
		),
		charts.WithYAxisOpts(
			opts.YAxis{
				Name: "Monthly Demand",
			},
		),
		charts.WithTooltipOpts(
			opts.Tooltip{
				Trigger: "axis",
			},
		),
	)

	nHist := res.History.Len()
	nFc := res.Forecast.Len()
	n := nHist + nFc

	t := make([]time.Time, 0, n)
	t = append(t, res.History.T...)
	t = append(t, res.Forecast.T...)

	history := make([]float64, n)
	forecast := make([]float64, n)
	lower := make([]float64, n)
	upper := make([]float64, n)
	for i := 0; i < n; i++ {
		history[i] = math.NaN()
		forecast[i] = math.NaN()
		lower[i] = math.NaN()
		upper[i] = math.NaN()
	}
	copy(history, res.History.Y)
	copy(forecast[nHist:], res.Forecast.Y)
	copy(lower[nHist:], res.Lower)
	copy(upper[nHist:], res.Upper)
	if nHist > 0 {
		forecast[nHist-1] = res.History.Y[nHist-1]
	}

	line.SetXAxis(monthLabels(t)).
		AddSeries("History", lineData(history)).
		AddSeries("Forecast", lineData(forecast)).
		AddSeries("Min", lineData(lower)).
		AddSeries("Max", lineData(upper))
	return line
}

// PlotFit uses the Apache Echarts library to render an html page showing the history with the
// forecast, the selected model over the holdout window and the fit residual
func (r *Results) PlotFit(w io.Writer) error {
	if r == nil || r.History == nil || r.Forecast == nil {
		return ErrNoForecast
	}

	page := components.NewPage()
	page.AddCharts(LineForecaster(r))

	if r.Holdout != nil && r.HoldoutForecast != nil && r.Holdout.Aligned(r.HoldoutForecast) {
		page.AddCharts(
			LineTSeries(
				"Holdout Fit",
				[]string{"Actual", "Forecast"},
				r.Holdout.T,
				[][]float64{r.Holdout.Y, r.HoldoutForecast.Y},
			),
		)
	}

	if r.Fitted != nil && r.Fitted.Len() == r.History.Len() {
		residual := make([]float64, r.History.Len())
		for i := range residual {
			// the seed cycle is not scored
			if i < r.Model.Config.SeasonalPeriod {
				residual[i] = math.NaN()
				continue
			}
			residual[i] = r.History.Y[i] - r.Fitted.Y[i]
		}
		page.AddCharts(
			LineTSeries(
				"Forecast Residual",
				[]string{"Residual"},
				r.History.T,
				[][]float64{residual},
			),
		)
	}
	return page.Render(w)
}
