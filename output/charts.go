package output

import (
	"call-distributions/pipeline"
	"fmt"
	"image/color"
	"path/filepath"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const (
	chartWidth  = 8 * vg.Inch
	chartHeight = 4 * vg.Inch
	histBins    = 40
)

var chartBlue = color.RGBA{R: 31, G: 119, B: 180, A: 255}

// WriteCharts renders a bar chart of calls per hour and a histogram for each
// duration series into dir. Empty series are skipped. It returns the paths
// written.
func WriteCharts(dir string, res *pipeline.Result) ([]string, error) {
	var written []string

	path := filepath.Join(dir, "call_hour_volume.png")
	if err := hourChart(path, res); err != nil {
		return written, err
	}
	written = append(written, path)

	hists := []struct {
		file   string
		title  string
		values []int
	}{
		{"call_wait_time_hist.png", "Dispatch wait time", res.Series.Wait},
		{"officer_travel_time_hist.png", "Officer travel time", res.Series.Travel},
		{"call_duration_time_hist.png", "Call resolution duration", res.Series.Duration},
	}
	for _, h := range hists {
		if len(h.values) == 0 {
			continue
		}
		path := filepath.Join(dir, h.file)
		if err := histogram(path, h.title, h.values); err != nil {
			return written, fmt.Errorf("%s: %w", h.file, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func hourChart(path string, res *pipeline.Result) error {
	values := make(plotter.Values, 24)
	labels := make([]string, 24)
	for h := 0; h < 24; h++ {
		values[h] = float64(res.Hours.Get(h))
		labels[h] = strconv.Itoa(h)
	}

	p := plot.New()
	p.Title.Text = "Calls received per hour"
	p.X.Label.Text = "hour of day"
	p.Y.Label.Text = "calls"

	bars, err := plotter.NewBarChart(values, vg.Points(12))
	if err != nil {
		return err
	}
	bars.Color = chartBlue
	bars.LineStyle.Width = 0
	p.Add(bars, plotter.NewGrid())
	p.NominalX(labels...)

	return p.Save(chartWidth, chartHeight, path)
}

func histogram(path, title string, minutes []int) error {
	values := make(plotter.Values, len(minutes))
	for i, m := range minutes {
		values[i] = float64(m)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "minutes"
	p.Y.Label.Text = "calls"

	hist, err := plotter.NewHist(values, histBins)
	if err != nil {
		return err
	}
	hist.FillColor = chartBlue
	p.Add(hist)

	return p.Save(chartWidth, chartHeight, path)
}
