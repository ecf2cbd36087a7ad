package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	forecaster "github.com/aouyang1/go-holtwinters"
	"github.com/aouyang1/go-holtwinters/dataset"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

const DefaultChartFilename = "demand_forecast.html"

type runFlags struct {
	force      bool
	chartPath  string
	jsonPath   string
	table      bool
	cpuProfile string
}

func newRunCmd(a *app) (*cobra.Command, error) {
	var rf runFlags

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Select a model on the recent history and forecast the months ahead",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rf.cpuProfile != "" {
				defer profile.Start(profile.CPUProfile, profile.ProfilePath(rf.cpuProfile), profile.NoShutdownHook).Stop()
			}
			return runForecast(cmd, a.cfg, rf)
		},
	}

	flags := runCmd.Flags()
	flags.Int("horizon", 0, "Number of months to forecast")
	flags.Int("history-months", 0, "Number of trailing months used for selection and fitting")
	flags.Int("holdout", 0, "Number of trailing months each candidate is scored on")
	flags.Int("parallelization", 0, "Number of candidates and optimizer starts run concurrently")
	flags.Float64("guardrail", 0, "Fraction above and below the forecast drawn as min/max guardrails")
	if err := bindFlags(a.v, flags, map[string]string{
		"horizon":         "horizon",
		"history_months":  "history-months",
		"holdout":         "holdout",
		"parallelization": "parallelization",
		"guardrail":       "guardrail",
	}); err != nil {
		return nil, err
	}

	flags.BoolVar(&rf.force, "force", false, "Download the dataset even if cached")
	flags.StringVar(&rf.chartPath, "chart", "", "Output path of the html chart (default <data-dir>/"+DefaultChartFilename+")")
	flags.StringVar(&rf.jsonPath, "json", "", "Optional output path of the full results as json")
	flags.BoolVar(&rf.table, "table", false, "Print the model, candidate scores and forecast table")
	flags.StringVar(&rf.cpuProfile, "cpuprofile", "", "Directory to write a cpu profile to")
	return runCmd, nil
}

func runForecast(cmd *cobra.Command, cfg *Config, rf runFlags) error {
	ctx := cmd.Context()
	fetcher := dataset.NewFetcher(cfg.DatasetURL, cfg.DataDir)

	raw, err := fetcher.Load(ctx, rf.force)
	if err != nil {
		return fmt.Errorf("unable to load dataset, %w", err)
	}

	history, err := dataset.BuildHistory(raw, cfg.HistoryMonths)
	if err != nil {
		return fmt.Errorf("unable to build history, %w", err)
	}
	historyPath := filepath.Join(cfg.DataDir, dataset.DefaultHistoryFilename)
	if err := fetcher.SaveCSV(historyPath, history); err != nil {
		return err
	}
	slog.Info("built history",
		"months", history.Len(),
		"start", history.T[0].Format("2006-01"),
		"end", history.T[history.Len()-1].Format("2006-01"),
		"path", historyPath,
	)

	f, err := forecaster.New(cfg.ForecasterOptions())
	if err != nil {
		return err
	}
	res, err := f.Forecast(ctx, history, cfg.Horizon)
	if err != nil {
		return fmt.Errorf("unable to forecast, %w", err)
	}

	for _, t := range res.Outliers {
		slog.Warn("residual outlier in history", "month", t.Format("2006-01"))
	}

	out := cmd.OutOrStdout()
	if err := res.Report(out, cfg.Unit); err != nil {
		return err
	}
	if rf.table {
		if _, err := fmt.Fprintln(out); err != nil {
			return err
		}
		if err := res.TablePrint(out, "", "  "); err != nil {
			return err
		}
	}

	chartPath := rf.chartPath
	if chartPath == "" {
		chartPath = filepath.Join(cfg.DataDir, DefaultChartFilename)
	}
	if err := fetcher.WriteFile(chartPath, res.PlotFit); err != nil {
		return err
	}
	slog.Info("wrote chart", "path", chartPath)

	if rf.jsonPath != "" {
		if err := fetcher.WriteFile(rf.jsonPath, func(w io.Writer) error {
			return res.WriteJSON(w)
		}); err != nil {
			return err
		}
		slog.Info("wrote results", "path", rf.jsonPath)
	}
	return nil
}
