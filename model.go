package forecaster

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/aouyang1/go-holtwinters/evaluate"
	"github.com/aouyang1/go-holtwinters/smoothing"
	"github.com/aouyang1/go-holtwinters/util"
)

// Model represents a serializeable format of a selected forecast storing the options, the
// chosen configuration, its coefficients and holdout scores
type Model struct {
	TrainEndTime time.Time              `json:"train_end_time"`
	Options      *Options               `json:"options"`
	Config       smoothing.Config       `json:"config"`
	Coefficients smoothing.Coefficients `json:"coefficients"`
	Scores       *evaluate.Scores       `json:"scores"`
}

func (m Model) TablePrint(w io.Writer, prefix, indent string) error {
	if _, err := fmt.Fprintf(w, "%s%sModel:\n", prefix, util.IndentExpand(indent, 0)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s%sTraining End Time: %s\n", prefix, util.IndentExpand(indent, 1), m.TrainEndTime); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s%sTrend: %s    Seasonal: %s    Period: %d    Damped: %t\n",
		prefix, util.IndentExpand(indent, 1),
		m.Config.Trend, m.Config.Seasonal, m.Config.SeasonalPeriod, m.Config.Damped,
	); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "%s%sCoefficients:\n", prefix, util.IndentExpand(indent, 0)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s%s%s\n", prefix, util.IndentExpand(indent, 1), coefficientsLine(m.Config, m.Coefficients)); err != nil {
		return err
	}

	if m.Scores != nil {
		if _, err := fmt.Fprintf(w, "%s%sHoldout Scores:\n", prefix, util.IndentExpand(indent, 0)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s%sMAE: %.3f    RMSE: %.3f    MAPE: %s\n",
			prefix, util.IndentExpand(indent, 1),
			m.Scores.MAE,
			m.Scores.RMSE,
			percent(m.Scores.MAPE),
		); err != nil {
			return err
		}
	}
	return nil
}

func coefficientsLine(cfg smoothing.Config, coef smoothing.Coefficients) string {
	line := fmt.Sprintf("Alpha: %.3f", coef.Alpha)
	if cfg.HasTrend() {
		line += fmt.Sprintf("    Beta: %.3f", coef.Beta)
	}
	line += fmt.Sprintf("    Gamma: %.3f", coef.Gamma)
	if cfg.Damped {
		line += fmt.Sprintf("    Phi: %.3f", coef.Phi)
	}
	return line
}

func percent(v float64) string {
	if math.IsNaN(v) {
		return "undefined"
	}
	return fmt.Sprintf("%.2f%%", v)
}
