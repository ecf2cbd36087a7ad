package forecaster

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"testing"
	"time"

	"github.com/aouyang1/go-holtwinters/timedataset"
)

var exampleStart = time.Date(1949, 1, 1, 0, 0, 0, 0, time.UTC)

func generateExampleSeries() *timedataset.TimeDataset {
	// four years of monthly demand with a yearly cycle
	months := 48
	t := timedataset.GenerateMonthlyT(months, exampleStart)
	y := timedataset.GenerateConstY(months, 100).
		Add(timedataset.GenerateWaveY(months, 10, 12, 0))

	td, err := timedataset.NewMonthlyDataset(t, y)
	if err != nil {
		panic(err)
	}
	return td
}

func generateExampleSeriesWithGrowth() *timedataset.TimeDataset {
	// airline style series growing multiplicatively with a seasonal swing proportional to level
	months := 48
	t := timedataset.GenerateMonthlyT(months, exampleStart)
	growth := timedataset.GenerateGrowthY(months, 0.01)
	y := timedataset.GenerateConstY(months, 1).
		Add(timedataset.GenerateWaveY(months, 0.2, 12, 2)).
		Mul(growth).
		Scale(150).
		Add(timedataset.GenerateNoise(months, 2, 42))

	td, err := timedataset.NewMonthlyDataset(t, y)
	if err != nil {
		panic(err)
	}
	return td
}

func runForecastExample(opt *Options, td *timedataset.TimeDataset, filename string) (*Results, error) {
	f, err := New(opt)
	if err != nil {
		return nil, err
	}
	res, err := f.Forecast(context.Background(), td, DefaultHorizon)
	if err != nil {
		return nil, err
	}

	m, err := f.Model()
	if err != nil {
		return nil, err
	}
	if err := m.TablePrint(os.Stderr, "", "  "); err != nil {
		return nil, err
	}

	file, err := os.Create(filepath.Join(os.TempDir(), filename))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return res, res.PlotFit(file)
}

func recoverForecastPanic(t *testing.T) {
	if r := recover(); r != nil {
		if t != nil {
			t.Errorf("panic: %v\n", r)
		} else {
			fmt.Printf("panic: %v\n", r)
		}
		debug.PrintStack()
	}
}

func Example_forecasterPeriodic() {
	defer recoverForecastPanic(nil)

	res, err := runForecastExample(nil, generateExampleSeries(), "forecaster_periodic.html")
	if err != nil {
		panic(err)
	}
	next, val, err := res.NextPeriod()
	if err != nil {
		panic(err)
	}
	fmt.Printf("Next month (%s) forecast: %.2f\n", next.Format("January 2006"), val)
	fmt.Println(res.Model.Config)
	// Output:
	// Next month (January 1953) forecast: 100.00
	// trend=none seasonal=additive period=12 damped=false
}

func Example_forecasterWithGrowth() {
	defer recoverForecastPanic(nil)

	opt := NewDefaultOptions()
	opt.SelectionOptions.Parallelization = 4

	res, err := runForecastExample(opt, generateExampleSeriesWithGrowth(), "forecaster_growth.html")
	if err != nil {
		panic(err)
	}
	fmt.Println(res.Forecast.Len())
	// Output:
	// 12
}
