package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aouyang1/go-holtwinters/timedataset"
)

var (
	ErrMissingColumn = errors.New("missing expected column")
	ErrInvalidRecord = errors.New("invalid record")
)

// accepted header names in order of preference
var (
	dateColumns  = []string{"Month", "date"}
	valueColumns = []string{"#Passengers", "value"}
)

var dateLayouts = []string{
	time.DateOnly,
	"2006-01",
	time.RFC3339,
}

type point struct {
	t time.Time
	y float64
}

func findColumn(header []string, names []string) int {
	for _, name := range names {
		for i, h := range header {
			if strings.TrimSpace(h) == name {
				return i
			}
		}
	}
	return -1
}

func parseMonth(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return timedataset.MonthStart(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q, %w", s, ErrInvalidRecord)
}

// ParseCSV reads a monthly series from csv with a Month or date column and a #Passengers or
// value column. Rows are sorted by time and each date is snapped to the start of its month.
func ParseCSV(r io.Reader) (*timedataset.TimeDataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty csv, %w", ErrMissingColumn)
		}
		return nil, err
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	dateIdx := findColumn(header, dateColumns)
	if dateIdx < 0 {
		return nil, fmt.Errorf("expected one of %v, %w", dateColumns, ErrMissingColumn)
	}
	valueIdx := findColumn(header, valueColumns)
	if valueIdx < 0 {
		return nil, fmt.Errorf("expected one of %v, %w", valueColumns, ErrMissingColumn)
	}

	var points []point
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		t, err := parseMonth(record[dateIdx])
		if err != nil {
			return nil, fmt.Errorf("line %d, %w", line, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(record[valueIdx]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d value %q, %w", line, record[valueIdx], ErrInvalidRecord)
		}
		points = append(points, point{t: t, y: y})
	}
	if len(points) == 0 {
		return nil, timedataset.ErrNoTrainingData
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].t.Before(points[j].t)
	})
	t := make([]time.Time, len(points))
	y := make([]float64, len(points))
	for i, p := range points {
		t[i] = p.t
		y[i] = p.y
	}
	return timedataset.NewUnivariateDataset(t, y)
}

// WriteCSV writes the dataset with a date and value header
func WriteCSV(w io.Writer, td *timedataset.TimeDataset) error {
	if td == nil {
		return timedataset.ErrNoTrainingData
	}
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"date", "value"}); err != nil {
		return err
	}
	for i := range td.T {
		record := []string{
			td.T[i].Format(time.DateOnly),
			strconv.FormatFloat(td.Y[i], 'f', -1, 64),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
