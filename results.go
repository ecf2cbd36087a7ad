package forecaster

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/aouyang1/go-holtwinters/selection"
	"github.com/aouyang1/go-holtwinters/timedataset"
	"github.com/aouyang1/go-holtwinters/util"
	"github.com/goccy/go-json"
)

var ErrNoForecast = errors.New("results hold no forecast")

// Results is the outcome of a forecast. History is the input series, Forecast the projected
// periods with Lower and Upper guardrails aligned to it.
type Results struct {
	History  *timedataset.TimeDataset `json:"history"`
	Fitted   *timedataset.TimeDataset `json:"fitted"`
	Forecast *timedataset.TimeDataset `json:"forecast"`
	Lower    []float64                `json:"lower"`
	Upper    []float64                `json:"upper"`

	// Outliers are the history months whose fit residual lies outside the Tukey fences
	Outliers []time.Time `json:"outliers,omitempty"`

	Model Model `json:"model"`

	// Holdout and HoldoutForecast are the trailing actuals the model was selected on and the
	// forecast of the train-only fit over that window. Both are nil for results predicted
	// from a saved model.
	Holdout         *timedataset.TimeDataset    `json:"holdout,omitempty"`
	HoldoutForecast *timedataset.TimeDataset    `json:"holdout_forecast,omitempty"`
	Candidates      []selection.CandidateResult `json:"candidates,omitempty"`
}

// NextPeriod returns the first forecasted period and its value
func (r *Results) NextPeriod() (time.Time, float64, error) {
	if r == nil || r.Forecast == nil || r.Forecast.Len() == 0 {
		return time.Time{}, 0, ErrNoForecast
	}
	return r.Forecast.T[0], r.Forecast.Y[0], nil
}

// Report writes the next period forecast, the chosen model and its holdout accuracy
func (r *Results) Report(w io.Writer, unit string) error {
	next, val, err := r.NextPeriod()
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Next month (%s) forecast: %.2f %s\n", next.Format("January 2006"), val, unit); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Best model parameters: %s, %s\n",
		r.Model.Config, coefficientsLine(r.Model.Config, r.Model.Coefficients)); err != nil {
		return err
	}
	if r.Model.Scores == nil {
		return nil
	}
	_, err = fmt.Fprintf(w, "Accuracy on last-year holdout -> MAE: %.2f, RMSE: %.2f, MAPE: %s\n",
		r.Model.Scores.MAE, r.Model.Scores.RMSE, percent(r.Model.Scores.MAPE))
	return err
}

// TablePrint writes the model followed by the candidate scores and the forecast table
func (r *Results) TablePrint(w io.Writer, prefix, indent string) error {
	if r == nil {
		return ErrNoForecast
	}
	if err := r.Model.TablePrint(w, prefix, indent); err != nil {
		return err
	}
	if err := r.tablePrintCandidates(w, prefix, indent); err != nil {
		return err
	}
	if err := r.tablePrintOutliers(w, prefix, indent); err != nil {
		return err
	}
	return r.tablePrintForecast(w, prefix, indent)
}

func (r *Results) tablePrintOutliers(w io.Writer, prefix, indent string) error {
	if len(r.Outliers) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "%s%sResidual Outliers:\n", prefix, util.IndentExpand(indent, 0)); err != nil {
		return err
	}
	for _, t := range r.Outliers {
		if _, err := fmt.Fprintf(w, "%s%s%s\n", prefix, util.IndentExpand(indent, 1), t.Format("2006-01")); err != nil {
			return err
		}
	}
	return nil
}

func (r *Results) tablePrintCandidates(w io.Writer, prefix, indent string) error {
	if len(r.Candidates) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "%s%sCandidates:\n", prefix, util.IndentExpand(indent, 0)); err != nil {
		return err
	}
	tbl := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintf(tbl, "%s%sTrend\tSeasonal\tDamped\tMAE\tRMSE\tMAPE\t\n", prefix, util.IndentExpand(indent, 1)); err != nil {
		return err
	}
	for _, c := range r.Candidates {
		mae, rmse, mape := "...", "...", "skipped"
		if !c.Skipped() && c.Scores != nil {
			mae = fmt.Sprintf("%.3f", c.Scores.MAE)
			rmse = fmt.Sprintf("%.3f", c.Scores.RMSE)
			mape = percent(c.Scores.MAPE)
		}
		if _, err := fmt.Fprintf(tbl, "%s%s%s\t%s\t%t\t%s\t%s\t%s\t\n",
			prefix, util.IndentExpand(indent, 1),
			c.Config.Trend, c.Config.Seasonal, c.Config.Damped, mae, rmse, mape); err != nil {
			return err
		}
	}
	return tbl.Flush()
}

func (r *Results) tablePrintForecast(w io.Writer, prefix, indent string) error {
	if r.Forecast == nil {
		return nil
	}
	if _, err := fmt.Fprintf(w, "%s%sForecast:\n", prefix, util.IndentExpand(indent, 0)); err != nil {
		return err
	}
	tbl := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintf(tbl, "%s%sMonth\tLower\tForecast\tUpper\t\n", prefix, util.IndentExpand(indent, 1)); err != nil {
		return err
	}
	for i, t := range r.Forecast.T {
		lower, upper := "...", "..."
		if i < len(r.Lower) && i < len(r.Upper) {
			lower = fmt.Sprintf("%.2f", r.Lower[i])
			upper = fmt.Sprintf("%.2f", r.Upper[i])
		}
		if _, err := fmt.Fprintf(tbl, "%s%s%s\t%s\t%.2f\t%s\t\n",
			prefix, util.IndentExpand(indent, 1),
			t.Format("2006-01"), lower, r.Forecast.Y[i], upper); err != nil {
			return err
		}
	}
	return tbl.Flush()
}

// WriteJSON serializes the results as indented json
func (r *Results) WriteJSON(w io.Writer) error {
	out, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to marshal results, %w", err)
	}
	_, err = w.Write(append(out, '\n'))
	return err
}
