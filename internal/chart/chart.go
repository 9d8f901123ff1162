// Package chart draws PNG charts of report results with gonum/plot.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"path/filepath"
	"slices"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/KaramelBytes/happiness-cli/internal/dataset"
	"github.com/KaramelBytes/happiness-cli/internal/metrics"
	"github.com/KaramelBytes/happiness-cli/internal/report"
	"github.com/KaramelBytes/happiness-cli/internal/utils"
)

// Palette.
var (
	LightBlue   = color.RGBA{R: 0x8f, G: 0xd7, B: 0xd7, A: 0xff}
	MedBlue     = color.RGBA{R: 0x00, G: 0xb0, B: 0xbe, A: 0xff}
	LightPink   = color.RGBA{R: 0xff, G: 0x8c, B: 0xa1, A: 0xff}
	MedPink     = color.RGBA{R: 0xf4, G: 0x5f, B: 0x74, A: 0xff}
	LightGreen  = color.RGBA{R: 0xbd, G: 0xd3, B: 0x73, A: 0xff}
	MedGreen    = color.RGBA{R: 0x98, G: 0xc1, B: 0x27, A: 0xff}
	LightOrange = color.RGBA{R: 0xff, G: 0xcd, B: 0x8e, A: 0xff}
	MedOrange   = color.RGBA{R: 0xff, G: 0xb2, B: 0x55, A: 0xff}
)

// Chart names, also used as PNG file stems.
const (
	Top          = "top"
	Regions      = "regions"
	Distribution = "distribution"
	Factor       = "factor"
	Country      = "country"
)

// Names lists every chart in drawing order.
var Names = []string{Top, Regions, Distribution, Factor, Country}

var (
	// ErrUnknownChart is returned for a name outside Names.
	ErrUnknownChart = errors.New("unknown chart")
	// ErrNoData is returned when the selection has nothing to draw.
	ErrNoData = errors.New("no data to chart")
)

const scoreAxis = "Happiness score (0-10)"

// Size is the output size of a chart.
type Size struct {
	Width, Height vg.Length
}

// SizeInches converts inches to a Size, falling back to 8x4.5 for
// non-positive values.
func SizeInches(w, h float64) Size {
	if w <= 0 {
		w = 8
	}
	if h <= 0 {
		h = 4.5
	}
	return Size{Width: vg.Length(w) * vg.Inch, Height: vg.Length(h) * vg.Inch}
}

// Available returns the charts the report has data for, in drawing order.
func Available(r *report.Report) []string {
	var out []string
	for _, name := range Names {
		if hasData(name, r) {
			out = append(out, name)
		}
	}
	return out
}

func hasData(name string, r *report.Report) bool {
	switch name {
	case Top:
		return !r.Overview.Empty && len(r.Overview.Top) > 0
	case Regions:
		return !r.Overview.Empty && len(r.Overview.Regions) > 0
	case Distribution:
		return r.Overview.Histogram != nil
	case Factor:
		return len(r.Drivers.Factor.Pairs) > 0
	case Country:
		return r.Country != nil && !r.Country.Empty()
	}
	return false
}

// Build draws the named chart of a report.
func Build(name string, r *report.Report) (*plot.Plot, error) {
	if !slices.Contains(Names, name) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownChart, name)
	}
	if !hasData(name, r) {
		return nil, ErrNoData
	}
	switch name {
	case Top:
		return TopBars(r.Overview.Top, r.Overview.Year)
	case Regions:
		return RegionBars(r.Overview.Regions, r.Overview.Year)
	case Distribution:
		return ScoreHistogram(*r.Overview.Histogram), nil
	case Factor:
		return FactorScatter(r.Drivers.Factor)
	default:
		return CountryLine(r.Country.Country, r.Country.Series)
	}
}

// TopBars draws the top-N countries as bars.
func TopBars(rows []dataset.Record, year int) (*plot.Plot, error) {
	values := make(plotter.Values, len(rows))
	labels := make([]string, len(rows))
	for i, r := range rows {
		values[i] = r.HappinessScore
		labels[i] = r.Country
	}
	return bars(fmt.Sprintf("Top %d happiest countries in %d", len(rows), year), values, labels, MedBlue)
}

// RegionBars draws the mean score per region.
func RegionBars(means []metrics.GroupMean, year int) (*plot.Plot, error) {
	values := make(plotter.Values, len(means))
	labels := make([]string, len(means))
	for i, m := range means {
		values[i] = m.Mean
		labels[i] = m.Region
	}
	p, err := bars(fmt.Sprintf("Average happiness score by region in %d", year), values, labels, MedGreen)
	if err != nil {
		return nil, err
	}
	p.Y.Label.Text = "Average happiness score (0-10)"
	return p, nil
}

func bars(title string, values plotter.Values, labels []string, c color.Color) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = scoreAxis
	p.Y.Min = 0

	b, err := plotter.NewBarChart(values, vg.Points(18))
	if err != nil {
		return nil, fmt.Errorf("bar chart: %w", err)
	}
	b.Color = c
	b.LineStyle.Width = vg.Length(0)
	p.Add(b)

	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	return p, nil
}

// ScoreHistogram draws the distribution buckets.
func ScoreHistogram(h metrics.Histogram) *plot.Plot {
	p := plot.New()
	p.Title.Text = "Distribution of happiness scores"
	p.X.Label.Text = scoreAxis
	p.Y.Label.Text = "Number of countries"

	bins := make([]plotter.HistogramBin, len(h.Buckets))
	for i, b := range h.Buckets {
		bins[i] = plotter.HistogramBin{Min: b.Lo, Max: b.Hi, Weight: float64(b.Count)}
	}
	hist := &plotter.Histogram{Bins: bins, FillColor: LightPink, LineStyle: plotter.DefaultLineStyle}
	hist.LineStyle.Color = MedPink
	if len(h.Buckets) > 0 {
		hist.Width = h.Buckets[0].Hi - h.Buckets[0].Lo
	}
	p.Add(hist)
	return p
}

// FactorScatter plots a factor against the happiness score.
func FactorScatter(c metrics.Correlation) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Happiness vs " + c.Factor.Label()
	p.X.Label.Text = c.Factor.Label()
	p.Y.Label.Text = scoreAxis

	pts := make(plotter.XYs, len(c.Pairs))
	for i, pair := range c.Pairs {
		pts[i].X, pts[i].Y = pair.X, pair.Y
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, fmt.Errorf("scatter: %w", err)
	}
	s.GlyphStyle.Color = MedBlue
	s.GlyphStyle.Radius = vg.Points(3)
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(plotter.NewGrid(), s)
	return p, nil
}

// CountryLine plots a country's score per year.
func CountryLine(country string, series []dataset.Record) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Happiness score over time: " + country
	p.X.Label.Text = "Year"
	p.Y.Label.Text = scoreAxis
	p.X.Tick.Marker = plot.TickerFunc(yearTicks)

	pts := make(plotter.XYs, len(series))
	for i, r := range series {
		pts[i].X, pts[i].Y = float64(r.Year.Value), r.HappinessScore
	}
	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return nil, fmt.Errorf("line: %w", err)
	}
	line.Color = MedBlue
	line.Width = vg.Points(2)
	points.GlyphStyle.Shape = draw.CircleGlyph{}
	points.GlyphStyle.Color = MedBlue
	points.GlyphStyle.Radius = vg.Points(3)
	p.Add(plotter.NewGrid(), line, points)
	return p, nil
}

func yearTicks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	for y := math.Ceil(min); y <= max; y++ {
		ticks = append(ticks, plot.Tick{Value: y, Label: strconv.Itoa(int(y))})
	}
	return ticks
}

// WritePNG encodes the plot as PNG to w.
func WritePNG(w io.Writer, p *plot.Plot, size Size) error {
	wt, err := p.WriterTo(size.Width, size.Height, "png")
	if err != nil {
		return fmt.Errorf("render png: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

// SavePNG writes the plot to path, creating its directory.
func SavePNG(path string, p *plot.Plot, size Size) error {
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	if err := p.Save(size.Width, size.Height, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
