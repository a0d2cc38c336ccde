// Package plot renders report rows as an HTML line chart.
package plot

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/born-ml/gradspeed/internal/report"
)

// ErrNoRows is returned when no row matches the requested algorithm.
var ErrNoRows = errors.New("plot: no rows for algorithm")

// Point is one measured rate.
type Point struct {
	Size int
	Rate float64
}

// Series is the rate curve of one backend and time_setup setting.
type Series struct {
	Name   string
	Points []Point // sorted by Size
}

// SeriesName names the curve a row belongs to.
func SeriesName(backend string, timeSetup bool) string {
	if timeSetup {
		return backend + " (with setup)"
	}
	return backend
}

// Collect groups the rows of algorithm into series in first-seen order.
// When a size was measured more than once the last row wins.
func Collect(rows []report.Row, algorithm string) []Series {
	var (
		order []string
		bySz  = make(map[string]map[int]float64)
	)
	for _, r := range rows {
		if r.Algorithm != algorithm {
			continue
		}
		name := SeriesName(r.Backend, r.TimeSetup)
		m, ok := bySz[name]
		if !ok {
			m = make(map[int]float64)
			bySz[name] = m
			order = append(order, name)
		}
		m[r.Size] = r.Rate
	}

	series := make([]Series, 0, len(order))
	for _, name := range order {
		s := Series{Name: name}
		for size, rate := range bySz[name] {
			s.Points = append(s.Points, Point{Size: size, Rate: rate})
		}
		slices.SortFunc(s.Points, func(a, b Point) int { return cmp.Compare(a.Size, b.Size) })
		series = append(series, s)
	}
	return series
}

// Render writes a chart of rate against size for algorithm to w.
// The rate axis is logarithmic.
func Render(w io.Writer, rows []report.Row, algorithm string) error {
	series := Collect(rows, algorithm)
	if len(series) == 0 {
		return fmt.Errorf("%w %q", ErrNoRows, algorithm)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    algorithm,
			Subtitle: "evaluations per second",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "size", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "rate", Type: "log"}),
	)
	for _, s := range series {
		data := make([]opts.LineData, len(s.Points))
		for i, p := range s.Points {
			data[i] = opts.LineData{Value: []any{p.Size, p.Rate}}
		}
		line.AddSeries(s.Name, data, charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)}))
	}
	return line.Render(w)
}
