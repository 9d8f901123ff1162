// Package report turns metric results into Markdown, HTML and terminal tables,
// including the narrative sentences shown alongside them.
package report

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/happiness-cli/internal/dataset"
	"github.com/KaramelBytes/happiness-cli/internal/metrics"
)

// Notices shown instead of a result.
const (
	NoDataWarning = "No data for this selection. Try another year or region."
	NoFactorData  = "No data available for this factor in the current selection."
	NoCountryData = "No data available for this country."
)

// Options is a complete selection plus table sizes.
type Options struct {
	Year    int
	Region  string
	Factor  dataset.Field
	Country string
	TopN    int
	Bins    int
}

// DefaultOptions selects the first year, every region, the first factor and
// the first country in alphabetical order.
func DefaultOptions(t *dataset.Table) Options {
	opt := Options{
		Region: dataset.AllRegions,
		Factor: dataset.Factors[0],
		TopN:   metrics.DefaultTopN,
		Bins:   metrics.DefaultBins,
	}
	if years := t.Years(); len(years) > 0 {
		opt.Year = years[0]
	}
	if countries := t.Countries(); len(countries) > 0 {
		opt.Country = countries[0]
	}
	return opt
}

// Overview holds the headline numbers and tables of one selection.
type Overview struct {
	Year      int                 `json:"year"`
	Region    string              `json:"region"`
	Empty     bool                `json:"empty"`
	Summary   *metrics.Summary    `json:"summary,omitempty"`
	Top       []dataset.Record    `json:"top"`
	Regions   []metrics.GroupMean `json:"regions"`
	Histogram *metrics.Histogram  `json:"histogram,omitempty"`
}

// BuildOverview computes the overview of the selected year and region. The
// region means always cover every region of the year.
func BuildOverview(t *dataset.Table, opt Options) Overview {
	rows := dataset.Filter(t, opt.Year, opt.Region).Records()
	o := Overview{Year: opt.Year, Region: regionName(opt.Region), Empty: len(rows) == 0}
	if o.Empty {
		return o
	}
	if s, ok := metrics.Summarize(rows); ok {
		o.Summary = &s
	}
	o.Top = metrics.TopN(rows, opt.TopN)
	o.Regions = metrics.RegionMeans(t, opt.Year)
	if h, ok := metrics.Distribution(rows, opt.Bins); ok {
		o.Histogram = &h
	}
	return o
}

// Drivers relates the factors of a selection to its happiness scores.
type Drivers struct {
	Year    int                   `json:"year"`
	Region  string                `json:"region"`
	Empty   bool                  `json:"empty"`
	Factor  metrics.Correlation   `json:"factor"`
	Ranking []metrics.Correlation `json:"ranking"`
}

// BuildDrivers correlates the chosen factor and ranks all factors.
func BuildDrivers(t *dataset.Table, opt Options) Drivers {
	rows := dataset.Filter(t, opt.Year, opt.Region).Records()
	factor := opt.Factor
	if factor == "" {
		factor = dataset.Factors[0]
	}
	d := Drivers{Year: opt.Year, Region: regionName(opt.Region), Empty: len(rows) == 0}
	d.Factor = metrics.Correlate(rows, factor)
	if !d.Empty {
		d.Ranking = metrics.RankCorrelations(rows)
	}
	return d
}

// CountryFocus is the time series of one country and what changed in it.
type CountryFocus struct {
	Country    string                      `json:"country"`
	Series     []dataset.Record            `json:"series"`
	Trend      *metrics.CountryTrend       `json:"trend,omitempty"`
	Comparison *metrics.RegionalComparison `json:"comparison,omitempty"`
}

// Empty reports whether the country has no dated records.
func (c CountryFocus) Empty() bool { return len(c.Series) == 0 }

// BuildCountry collects the country's series, trend and regional comparison.
// It never depends on the year or region selection.
func BuildCountry(t *dataset.Table, country string) CountryFocus {
	c := CountryFocus{Country: country, Series: metrics.CountrySeries(t, country)}
	if tr, ok := metrics.Trend(c.Series); ok {
		c.Trend = &tr
	}
	if cmp, ok := metrics.CompareRegion(t, c.Series); ok {
		c.Comparison = &cmp
	}
	return c
}

// Report is the full analysis of one selection.
type Report struct {
	Source    string                  `json:"source"`
	Rows      int                     `json:"rows"`
	Dropped   int                     `json:"dropped"`
	Years     []int                   `json:"years"`
	Regions   int                     `json:"regions"`
	Countries int                     `json:"countries"`
	Columns   []metrics.ColumnProfile `json:"columns"`
	Overview  Overview                `json:"overview"`
	Drivers   Drivers                 `json:"drivers"`
	Country   *CountryFocus           `json:"country,omitempty"`
}

// Build runs every analysis for the selection. The country section is
// skipped when opt.Country is empty.
func Build(t *dataset.Table, opt Options) *Report {
	r := &Report{
		Source:    t.Path,
		Rows:      t.Len(),
		Dropped:   t.Dropped,
		Years:     t.Years(),
		Regions:   len(t.Regions()),
		Countries: len(t.Countries()),
		Columns:   metrics.Profile(t.Records()),
		Overview:  BuildOverview(t, opt),
		Drivers:   BuildDrivers(t, opt),
	}
	if opt.Country != "" {
		c := BuildCountry(t, opt.Country)
		r.Country = &c
	}
	return r
}

// Markdown renders the report as bracketed sections. An empty selection
// stops after the warning.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("# World Happiness report\n\n")
	b.WriteString("[DATASET SUMMARY]\n\n")
	if r.Source != "" {
		b.WriteString(fmt.Sprintf("- File: %s\n", r.Source))
	}
	if r.Dropped > 0 {
		b.WriteString(fmt.Sprintf("- Rows: %d (dropped %d without a country or score)\n", r.Rows, r.Dropped))
	} else {
		b.WriteString(fmt.Sprintf("- Rows: %d\n", r.Rows))
	}
	if len(r.Years) > 0 {
		b.WriteString(fmt.Sprintf("- Years: %d-%d\n", r.Years[0], r.Years[len(r.Years)-1]))
	}
	b.WriteString(fmt.Sprintf("- Regions: %d\n- Countries: %d\n\n", r.Regions, r.Countries))
	if len(r.Columns) > 0 {
		b.WriteString("[COLUMN PROFILE]\n\n")
		b.WriteString(ProfileTable(r.Columns).Markdown())
		b.WriteString("\n")
	}

	b.WriteString("[SELECTION]\n\n")
	b.WriteString(fmt.Sprintf("- Year: %d\n- Region: %s\n\n", r.Overview.Year, r.Overview.Region))

	if r.Overview.Empty {
		b.WriteString("[NOTES]\n\n")
		b.WriteString("- " + NoDataWarning + "\n")
		return b.String()
	}
	writeOverview(&b, r.Overview)
	writeDrivers(&b, r.Drivers)
	if r.Country != nil {
		writeCountry(&b, *r.Country)
	}
	b.WriteString("[HOW TO READ THE SCORES]\n\n")
	for _, line := range ScoreGuide {
		b.WriteString("- " + line + "\n")
	}
	b.WriteString("\n" + ScoreGuideNote + "\n")
	return b.String()
}

func writeOverview(b *strings.Builder, o Overview) {
	if o.Summary != nil {
		b.WriteString("[OVERVIEW]\n\n")
		b.WriteString(fmt.Sprintf("- Countries in selection: %d\n", o.Summary.Count))
		b.WriteString(fmt.Sprintf("- Average happiness score (0-10): %.2f\n", o.Summary.MeanScore))
		b.WriteString(fmt.Sprintf("- Happiest country in %d: %s (%.2f)\n\n", o.Year, o.Summary.Top.Country, o.Summary.Top.HappinessScore))
	}
	b.WriteString(fmt.Sprintf("[TOP %d HAPPIEST COUNTRIES IN %d]\n\n", len(o.Top), o.Year))
	writeMarkdownTable(b, TopTable(o.Top))
	b.WriteString(fmt.Sprintf("[AVERAGE HAPPINESS SCORE BY REGION IN %d]\n\n", o.Year))
	writeMarkdownTable(b, RegionTable(o.Regions))
	if o.Histogram != nil {
		b.WriteString("[DISTRIBUTION OF HAPPINESS SCORES]\n\n")
		writeMarkdownTable(b, HistogramTable(*o.Histogram))
	}
	b.WriteString("[OVERVIEW INSIGHTS]\n\n")
	for _, line := range OverviewInsights(o) {
		b.WriteString("- " + line + "\n")
	}
	b.WriteString("\n")
}

func writeDrivers(b *strings.Builder, d Drivers) {
	b.WriteString(fmt.Sprintf("[FACTOR: %s]\n\n", strings.ToUpper(d.Factor.Factor.Label())))
	if d.Factor.N == 0 {
		b.WriteString(NoFactorData + "\n\n")
	} else {
		b.WriteString(CorrelationSentence(d.Factor) + "\n\n")
	}
	b.WriteString("[CORRELATIONS]\n\n")
	b.WriteString("Correlation with happiness score (higher = stronger positive relationship):\n\n")
	writeMarkdownTable(b, RankingTable(d.Ranking))
	b.WriteString(CorrelationCaveat + "\n\n")
}

func writeCountry(b *strings.Builder, c CountryFocus) {
	b.WriteString(fmt.Sprintf("[COUNTRY FOCUS: %s]\n\n", c.Country))
	if c.Empty() {
		b.WriteString(NoCountryData + "\n\n")
		return
	}
	b.WriteString("Key factors over time:\n\n")
	writeMarkdownTable(b, SeriesTable(c.Series))
	b.WriteString("[COUNTRY INSIGHTS]\n\n")
	for _, line := range CountryInsights(c) {
		b.WriteString("- " + line + "\n")
	}
	b.WriteString("\n")
}

func regionName(region string) string {
	if region == "" {
		return dataset.AllRegions
	}
	return region
}
