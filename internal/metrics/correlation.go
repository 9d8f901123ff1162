package metrics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/KaramelBytes/happiness-cli/internal/dataset"
)

// MinCorrelationPoints is the fewest co-present rows a coefficient needs.
const MinCorrelationPoints = 3

// Pair is one (factor, score) observation.
type Pair struct {
	Country string  `json:"country"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

// Correlation is the Pearson coefficient of a factor against HappinessScore.
// R is meaningful only when Valid is true.
type Correlation struct {
	Factor dataset.Field `json:"factor"`
	R      float64       `json:"r"`
	N      int           `json:"n"`
	Valid  bool          `json:"valid"`
	// Pairs are the co-present observations, for scatter plots.
	Pairs []Pair `json:"pairs,omitempty"`
}

// Correlate computes the correlation of factor with HappinessScore over rows
// where the factor is present. It is not valid with fewer than
// MinCorrelationPoints rows or when either side is constant.
func Correlate(rows []dataset.Record, factor dataset.Field) Correlation {
	c := Correlation{Factor: factor}
	for _, r := range rows {
		v := r.Factor(factor)
		if !v.Valid {
			continue
		}
		c.Pairs = append(c.Pairs, Pair{Country: r.Country, X: v.Value, Y: r.HappinessScore})
	}
	c.N = len(c.Pairs)
	xs := make([]float64, c.N)
	ys := make([]float64, c.N)
	for i, p := range c.Pairs {
		xs[i], ys[i] = p.X, p.Y
	}
	c.R, c.Valid = pearson(xs, ys)
	return c
}

// RankCorrelations correlates each factor with HappinessScore over rows that
// have every factor present, strongest positive first. Coefficients that
// cannot be computed are flagged and listed last in factor order.
func RankCorrelations(rows []dataset.Record) []Correlation {
	var complete []dataset.Record
	for _, r := range rows {
		ok := true
		for _, f := range dataset.Factors {
			if !r.Factor(f).Valid {
				ok = false
				break
			}
		}
		if ok {
			complete = append(complete, r)
		}
	}
	out := make([]Correlation, 0, len(dataset.Factors))
	for _, f := range dataset.Factors {
		c := Correlate(complete, f)
		c.Pairs = nil
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Valid != out[j].Valid {
			return out[i].Valid
		}
		return out[i].Valid && out[i].R > out[j].R
	})
	return out
}

func pearson(xs, ys []float64) (float64, bool) {
	if len(xs) < MinCorrelationPoints || len(xs) != len(ys) {
		return 0, false
	}
	if stat.Variance(xs, nil) == 0 || stat.Variance(ys, nil) == 0 {
		return 0, false
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, false
	}
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r, true
}
