// Package metrics computes summary statistics and derived tables over
// dataset records. Every function is pure and tolerates empty input; results
// that cannot be computed are reported as unavailable rather than as errors.
package metrics

import (
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/KaramelBytes/happiness-cli/internal/dataset"
)

// DefaultTopN is the number of rows in a top-N table.
const DefaultTopN = 10

// Summary holds the headline numbers of a selection.
type Summary struct {
	Count     int            `json:"count"`
	MeanScore float64        `json:"mean_score"`
	Top       dataset.Record `json:"top"`
}

// Summarize counts rows, averages HappinessScore and picks the happiest
// record. Ties keep the first occurrence. It reports false for no rows.
func Summarize(rows []dataset.Record) (Summary, bool) {
	if len(rows) == 0 {
		return Summary{}, false
	}
	mean, err := stats.Mean(scores(rows))
	if err != nil {
		return Summary{}, false
	}
	top := rows[0]
	for _, r := range rows[1:] {
		if r.HappinessScore > top.HappinessScore {
			top = r
		}
	}
	return Summary{Count: len(rows), MeanScore: mean, Top: top}, true
}

// TopN returns the n highest-scoring rows. The sort is stable, so equal
// scores keep their original relative order. n <= 0 selects DefaultTopN.
func TopN(rows []dataset.Record, n int) []dataset.Record {
	if n <= 0 {
		n = DefaultTopN
	}
	sorted := make([]dataset.Record, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].HappinessScore > sorted[j].HappinessScore
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// GroupMean is the average score of one region.
type GroupMean struct {
	Region string  `json:"region"`
	Mean   float64 `json:"mean"`
	Count  int     `json:"count"`
}

// RegionMeans groups the table's records of the given year by region and
// returns the mean score per region, highest first. Records without a region
// are left out. Equal means are ordered by region name.
func RegionMeans(t *dataset.Table, year int) []GroupMean {
	byRegion := map[string][]float64{}
	for _, r := range dataset.Filter(t, year, dataset.AllRegions).Records() {
		if !r.Region.Valid {
			continue
		}
		byRegion[r.Region.Value] = append(byRegion[r.Region.Value], r.HappinessScore)
	}
	names := make([]string, 0, len(byRegion))
	for k := range byRegion {
		names = append(names, k)
	}
	sort.Strings(names)
	out := make([]GroupMean, 0, len(names))
	for _, name := range names {
		vals := byRegion[name]
		mean, err := stats.Mean(vals)
		if err != nil {
			continue
		}
		out = append(out, GroupMean{Region: name, Mean: mean, Count: len(vals)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Mean > out[j].Mean })
	return out
}

func scores(rows []dataset.Record) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = r.HappinessScore
	}
	return out
}
