package metrics

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/KaramelBytes/happiness-cli/internal/dataset"
)

// DefaultBins is the bucket count of the score distribution.
const DefaultBins = 15

// Bucket is one histogram bin covering [Lo, Hi); the last bin also
// includes Hi.
type Bucket struct {
	Lo    float64 `json:"lo"`
	Hi    float64 `json:"hi"`
	Count int     `json:"count"`
}

// Histogram is the score distribution of a selection.
type Histogram struct {
	Min     float64  `json:"min"`
	Max     float64  `json:"max"`
	Buckets []Bucket `json:"buckets"`
}

// Distribution counts HappinessScore values into equal-width buckets that
// span the observed minimum and maximum. When every score is equal the range
// is widened to min-0.5..max+0.5. Non-finite scores are not counted. It
// reports false when no finite score remains.
func Distribution(rows []dataset.Record, bins int) (Histogram, bool) {
	if bins <= 0 {
		bins = DefaultBins
	}
	vals := make([]float64, 0, len(rows))
	for _, v := range scores(rows) {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return Histogram{}, false
	}
	lo, err := stats.Min(vals)
	if err != nil {
		return Histogram{}, false
	}
	hi, err := stats.Max(vals)
	if err != nil {
		return Histogram{}, false
	}
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	edges := floats.Span(make([]float64, bins+1), lo, hi)
	// stat.Histogram treats the last divider as exclusive.
	dividers := make([]float64, len(edges))
	copy(dividers, edges)
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	sort.Float64s(vals)
	counts := stat.Histogram(nil, dividers, vals, nil)

	h := Histogram{Min: lo, Max: hi, Buckets: make([]Bucket, bins)}
	for i := range h.Buckets {
		h.Buckets[i] = Bucket{Lo: edges[i], Hi: edges[i+1], Count: int(counts[i])}
	}
	return h, true
}
