package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/happiness-cli/internal/dataset"
	"github.com/KaramelBytes/happiness-cli/internal/metrics"
)

func rec(country, region string, year int, score float64, factors ...float64) dataset.Record {
	r := dataset.Record{Country: country, Year: dataset.SomeInt(year), HappinessScore: score}
	if region != "" {
		r.Region = dataset.SomeStr(region)
	}
	vals := []*dataset.Num{&r.Economy, &r.Family, &r.Health, &r.Freedom, &r.Trust, &r.Generosity}
	for i, v := range factors {
		*vals[i] = dataset.Some(v)
	}
	return r
}

func fixture() *dataset.Table {
	return dataset.NewTable([]dataset.Record{
		rec("Finland", "Western Europe", 2015, 7.5, 1.30, 1.30, 0.90, 0.60, 0.40, 0.20),
		rec("Norway", "Western Europe", 2015, 7.4, 1.45, 1.30, 0.88, 0.65, 0.36, 0.35),
		rec("Togo", "Sub-Saharan Africa", 2015, 2.8, 0.20, 0.13, 0.28, 0.36, 0.10, 0.16),
		rec("Chile", "Latin America", 2015, 6.6, 1.10, 1.05, 0.80, 0.40, 0.08, 0.30),
		rec("Finland", "Western Europe", 2016, 7.4, 1.40, 1.20, 0.90, 0.60, 0.40, 0.20),
		rec("Norway", "Western Europe", 2016, 7.5, 1.50, 1.10, 0.80, 0.60, 0.30, 0.30),
	})
}

func TestDefaultOptions(t *testing.T) {
	opt := DefaultOptions(fixture())
	assert.Equal(t, 2015, opt.Year)
	assert.Equal(t, dataset.AllRegions, opt.Region)
	assert.Equal(t, dataset.FieldEconomy, opt.Factor)
	assert.Equal(t, "Chile", opt.Country)
	assert.Equal(t, metrics.DefaultTopN, opt.TopN)
}

func TestBuildOverview(t *testing.T) {
	opt := DefaultOptions(fixture())
	o := BuildOverview(fixture(), opt)
	require.False(t, o.Empty)
	require.NotNil(t, o.Summary)
	assert.Equal(t, 4, o.Summary.Count)
	assert.Equal(t, "Finland", o.Summary.Top.Country)
	require.Len(t, o.Top, 4)
	assert.Equal(t, "Togo", o.Top[3].Country)
	require.Len(t, o.Regions, 3)
	assert.Equal(t, "Western Europe", o.Regions[0].Region)
	require.NotNil(t, o.Histogram)
	assert.Len(t, o.Histogram.Buckets, metrics.DefaultBins)

	opt.Region = "Atlantis"
	o = BuildOverview(fixture(), opt)
	assert.True(t, o.Empty)
	assert.Nil(t, o.Summary)
}

func TestBuildDrivers(t *testing.T) {
	opt := DefaultOptions(fixture())
	d := BuildDrivers(fixture(), opt)
	assert.Equal(t, 4, d.Factor.N)
	assert.True(t, d.Factor.Valid)
	assert.Len(t, d.Factor.Pairs, 4)
	require.Len(t, d.Ranking, len(dataset.Factors))

	opt.Region = "Latin America"
	d = BuildDrivers(fixture(), opt)
	assert.False(t, d.Factor.Valid, "a single country cannot be correlated")
	assert.Equal(t, 1, d.Factor.N)
}

func TestBuildCountry(t *testing.T) {
	c := BuildCountry(fixture(), "Finland")
	require.Len(t, c.Series, 2)
	require.NotNil(t, c.Trend)
	assert.Equal(t, metrics.Decreased, c.Trend.Direction)
	assert.InDelta(t, 0.1, c.Trend.AbsChange, 1e-9)
	require.NotNil(t, c.Comparison)
	assert.Equal(t, metrics.Below, c.Comparison.Position)
	assert.InDelta(t, 7.45, c.Comparison.RegionMean, 1e-9)

	missing := BuildCountry(fixture(), "Atlantis")
	assert.True(t, missing.Empty())
	assert.Nil(t, missing.Trend)
}

func TestMarkdownSections(t *testing.T) {
	opt := DefaultOptions(fixture())
	opt.Country = "Finland"
	md := Build(fixture(), opt).Markdown()
	for _, want := range []string{
		"[DATASET SUMMARY]",
		"- Years: 2015-2016",
		"[COLUMN PROFILE]",
		"[SELECTION]",
		"[OVERVIEW]",
		"- Happiest country in 2015: Finland (7.50)",
		"[TOP 4 HAPPIEST COUNTRIES IN 2015]",
		"[AVERAGE HAPPINESS SCORE BY REGION IN 2015]",
		"[DISTRIBUTION OF HAPPINESS SCORES]",
		"[OVERVIEW INSIGHTS]",
		"[FACTOR: ECONOMY (GDP PER CAPITA)]",
		"The correlation between happiness and economy (gdp per capita) in this selection is approximately",
		"[CORRELATIONS]",
		"[COUNTRY FOCUS: Finland]",
		"has **decreased**, changing by about **0.10** points",
		"people now report being less happy than before",
		"is **below** the Western Europe average of **7.45**",
		"[HOW TO READ THE SCORES]",
	} {
		assert.Contains(t, md, want)
	}
	assert.Contains(t, md, "| Finland ")
}

func TestMarkdownEmptySelection(t *testing.T) {
	opt := DefaultOptions(fixture())
	opt.Year = 1999
	md := Build(fixture(), opt).Markdown()
	assert.Contains(t, md, NoDataWarning)
	assert.NotContains(t, md, "[OVERVIEW]")
	assert.NotContains(t, md, "[CORRELATIONS]")
}

func TestHTML(t *testing.T) {
	opt := DefaultOptions(fixture())
	out := string(HTML("World Happiness", Build(fixture(), opt).Markdown()))
	assert.True(t, strings.Contains(out, "<title>World Happiness</title>"))
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<h1")
	assert.Contains(t, out, "background-color: #e0e0e0")
}

func TestHTMLEscapesRawMarkup(t *testing.T) {
	md := "- Region: <script>alert(1)</script>\n\n[COUNTRY FOCUS: <img src=x onerror=alert(2)>]\n\n<div onclick=\"x()\">block</div>\n"
	out := string(HTML("t", md))
	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "<img src=x")
	assert.NotContains(t, out, "<div onclick")
	assert.Contains(t, out, "&lt;script&gt;alert(1)&lt;/script&gt;")

	page := string(Page("t", `<form id="sel"></form>`, md))
	assert.Contains(t, page, "<body>\n\n<form id=\"sel\"></form>")
	assert.NotContains(t, page, "<script>")
}

func TestTerminalTables(t *testing.T) {
	var b strings.Builder
	RankingTable(BuildDrivers(fixture(), DefaultOptions(fixture())).Ranking).Write(&b)
	out := b.String()
	assert.Contains(t, out, "Economy (GDP per capita)")
	assert.Contains(t, out, "Correlation")
	assert.Contains(t, out, "+")

	series := SeriesTable(metrics.CountrySeries(fixture(), "Norway"))
	require.Len(t, series.Rows, 2)
	assert.Equal(t, []string{"2015", "-", "7.400", "1.450", "1.300", "0.880", "0.650", "0.360", "0.350"}, series.Rows[0])
}
