package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/happiness-cli/internal/dataset"
)

func rec(country, region string, year int, score float64) dataset.Record {
	r := dataset.Record{Country: country, Year: dataset.SomeInt(year), HappinessScore: score}
	if region != "" {
		r.Region = dataset.SomeStr(region)
	}
	return r
}

func names(rows []dataset.Record) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Country
	}
	return out
}

func TestSummarize(t *testing.T) {
	rows := []dataset.Record{
		rec("A", "North", 2015, 6.0),
		rec("B", "North", 2015, 7.5),
		rec("C", "South", 2015, 7.5),
		rec("D", "South", 2015, 3.0),
	}
	s, ok := Summarize(rows)
	require.True(t, ok)
	assert.Equal(t, 4, s.Count)
	assert.InDelta(t, 6.0, s.MeanScore, 1e-9)
	assert.Equal(t, "B", s.Top.Country, "ties keep the first occurrence")

	_, ok = Summarize(nil)
	assert.False(t, ok)
}

func TestTopNOrderingAndStability(t *testing.T) {
	rows := []dataset.Record{
		rec("A", "", 2015, 5.0),
		rec("B", "", 2015, 7.0),
		rec("C", "", 2015, 5.0),
		rec("D", "", 2015, 9.0),
		rec("E", "", 2015, 7.0),
	}
	top := TopN(rows, 4)
	require.Len(t, top, 4)
	assert.Equal(t, []string{"D", "B", "E", "A"}, names(top))
	for i := 1; i < len(top); i++ {
		assert.GreaterOrEqual(t, top[i-1].HappinessScore, top[i].HappinessScore)
	}
	assert.Equal(t, "A", rows[0].Country, "input must not be reordered")

	assert.Len(t, TopN(rows, 0), 5, "n<=0 uses the default of 10")
	assert.Empty(t, TopN(nil, 3))
}

func TestRegionMeans(t *testing.T) {
	tbl := dataset.NewTable([]dataset.Record{
		rec("A", "North", 2015, 6.0),
		rec("B", "South", 2015, 5.0),
		rec("C", "North", 2015, 8.0),
		rec("D", "North", 2016, 1.0),
		rec("E", "", 2015, 9.9),
	})
	got := RegionMeans(tbl, 2015)
	require.Len(t, got, 2)
	assert.Equal(t, "North", got[0].Region)
	assert.InDelta(t, 7.0, got[0].Mean, 1e-9)
	assert.Equal(t, 2, got[0].Count)
	assert.Equal(t, "South", got[1].Region)
	assert.InDelta(t, 5.0, got[1].Mean, 1e-9)

	assert.Empty(t, RegionMeans(tbl, 1990))
}

func TestDistribution(t *testing.T) {
	rows := []dataset.Record{
		rec("A", "", 2015, 2.0),
		rec("B", "", 2015, 5.0),
		rec("C", "", 2015, 5.0),
		rec("D", "", 2015, 8.0),
	}
	h, ok := Distribution(rows, 3)
	require.True(t, ok)
	require.Len(t, h.Buckets, 3)
	assert.Equal(t, 2.0, h.Min)
	assert.Equal(t, 8.0, h.Max)
	assert.Equal(t, []int{1, 2, 1}, []int{h.Buckets[0].Count, h.Buckets[1].Count, h.Buckets[2].Count})
	assert.InDelta(t, 4.0, h.Buckets[0].Hi, 1e-9)

	h, ok = Distribution(rows, 0)
	require.True(t, ok)
	total := 0
	for _, b := range h.Buckets {
		total += b.Count
	}
	assert.Len(t, h.Buckets, DefaultBins)
	assert.Equal(t, len(rows), total, "the maximum lands in the last bucket")

	h, ok = Distribution([]dataset.Record{rec("A", "", 2015, 4.0)}, 2)
	require.True(t, ok)
	assert.Equal(t, 3.5, h.Min)
	assert.Equal(t, 4.5, h.Max)
	assert.Equal(t, 1, h.Buckets[1].Count)

	_, ok = Distribution(nil, 15)
	assert.False(t, ok)
}

func TestDistributionSkipsNonFiniteScores(t *testing.T) {
	rows := []dataset.Record{
		rec("A", "", 2015, 5.0),
		rec("B", "", 2015, math.Inf(1)),
		rec("C", "", 2015, 7.0),
		rec("D", "", 2015, math.NaN()),
	}
	var h Histogram
	var ok bool
	require.NotPanics(t, func() { h, ok = Distribution(rows, 2) })
	require.True(t, ok)
	assert.Equal(t, 5.0, h.Min)
	assert.Equal(t, 7.0, h.Max)
	assert.Equal(t, 1, h.Buckets[0].Count)
	assert.Equal(t, 1, h.Buckets[1].Count)

	_, ok = Distribution([]dataset.Record{rec("B", "", 2015, math.Inf(-1))}, 2)
	assert.False(t, ok)
}
