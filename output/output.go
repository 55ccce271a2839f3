// Package output writes a finished pipeline result to disk: the cleaned
// call log, the hour ranking and one file per distribution, plus optional
// charts and an Excel workbook.
package output

import (
	"bufio"
	"call-distributions/models"
	"call-distributions/pipeline"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
)

// Output file names.
const (
	CleanFile        = "clean_police_data.csv"
	HourOrderFile    = "hour_order.csv"
	CallTimeFile     = "call_time_dist.txt"
	WaitTimeFile     = "call_wait_time_dist.txt"
	TravelTimeFile   = "officer_travel_time_dist.txt"
	DurationTimeFile = "call_duration_time_dist.txt"
)

// Writer writes every output file into Dir. Each file is created, fully
// written and closed before the next one is started.
type Writer struct {
	Dir      string
	Charts   bool
	Workbook bool
	Logger   *slog.Logger
}

// Write implements pipeline.Sink.
func (w *Writer) Write(res *pipeline.Result) error {
	logger := w.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	steps := []struct {
		name  string
		write func(path string) error
	}{
		{CleanFile, func(path string) error { return WriteClean(path, res.Clean) }},
		{HourOrderFile, func(path string) error { return WriteRanking(path, res.Ranking) }},
		{CallTimeFile, func(path string) error { return WriteSeries(path, res.Series.CallHours) }},
		{WaitTimeFile, func(path string) error { return WriteSeries(path, res.Series.Wait) }},
		{TravelTimeFile, func(path string) error { return WriteSeries(path, res.Series.Travel) }},
		{DurationTimeFile, func(path string) error { return WriteSeries(path, res.Series.Duration) }},
	}
	for _, step := range steps {
		path := filepath.Join(w.Dir, step.name)
		if err := step.write(path); err != nil {
			return fmt.Errorf("writing %s: %w", step.name, err)
		}
		logger.Debug("Wrote output file", slog.String("path", path))
	}

	if w.Charts {
		paths, err := WriteCharts(w.Dir, res)
		if err != nil {
			return fmt.Errorf("rendering charts: %w", err)
		}
		for _, p := range paths {
			logger.Debug("Wrote chart", slog.String("path", p))
		}
	}

	if w.Workbook {
		path := filepath.Join(w.Dir, WorkbookFile)
		if err := WriteWorkbook(path, res); err != nil {
			return fmt.Errorf("writing %s: %w", WorkbookFile, err)
		}
		logger.Debug("Wrote workbook", slog.String("path", path))
	}

	logger.Info("Output written", slog.String("dir", w.Dir))
	return nil
}

// WriteClean writes the admitted records comma-separated, without a header.
// Rows end in CRLF, as do those of WriteRanking.
func WriteClean(path string, records []models.RawRecord) error {
	return writeCSV(path, func(cw *csv.Writer) error {
		for _, rec := range records {
			if err := cw.Write(rec.Fields()); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteRanking writes one "hour,count" row per ranked hour.
func WriteRanking(path string, ranking []models.HourVolume) error {
	return writeCSV(path, func(cw *csv.Writer) error {
		for _, hv := range ranking {
			if err := cw.Write([]string{strconv.Itoa(hv.Hour), strconv.Itoa(hv.Calls)}); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteSeries writes one value per line.
func WriteSeries(path string, values []int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(f)
	for _, v := range values {
		if _, err := fmt.Fprintf(bw, "%d\n", v); err != nil {
			f.Close()
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeCSV(path string, fill func(cw *csv.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(f)
	cw.UseCRLF = true
	if err := fill(cw); err != nil {
		f.Close()
		return err
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
