package metrics

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/KaramelBytes/happiness-cli/internal/dataset"
)

// Direction classifies a change between two values.
type Direction string

const (
	Increased Direction = "increased"
	Decreased Direction = "decreased"
	Unchanged Direction = "unchanged"
)

func direction(from, to float64) Direction {
	switch {
	case to > from:
		return Increased
	case to < from:
		return Decreased
	default:
		return Unchanged
	}
}

// CountrySeries returns the country's records that carry a year, in
// ascending year order. Records sharing a year keep their table order.
func CountrySeries(t *dataset.Table, country string) []dataset.Record {
	rows := t.All().Where(func(r dataset.Record) bool {
		return r.Country == country && r.Year.Valid
	}).Records()
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Year.Value < rows[j].Year.Value })
	return rows
}

// FactorChange is the change of one factor between the first and last year.
type FactorChange struct {
	Factor    dataset.Field `json:"factor"`
	From      float64       `json:"from"`
	To        float64       `json:"to"`
	Change    float64       `json:"change"`
	AbsChange float64       `json:"abs_change"`
	Direction Direction     `json:"direction"`
}

// CountryTrend summarizes how a country's score moved over its series.
type CountryTrend struct {
	Country    string    `json:"country"`
	StartYear  int       `json:"start_year"`
	EndYear    int       `json:"end_year"`
	FirstScore float64   `json:"first_score"`
	LastScore  float64   `json:"last_score"`
	Change     float64   `json:"change"`
	AbsChange  float64   `json:"abs_change"`
	Direction  Direction `json:"direction"`
	// TopFactor is the factor with the largest absolute change; nil when no
	// factor is present at both endpoints.
	TopFactor *FactorChange `json:"top_factor"`
}

// endpoints returns the first record of the earliest and of the latest year
// of a year-sorted series.
func endpoints(series []dataset.Record) (first, last dataset.Record) {
	first = series[0]
	end := series[len(series)-1].Year.Value
	for _, r := range series {
		if r.Year.Value == end {
			return first, r
		}
	}
	return first, series[len(series)-1]
}

// Trend compares the first and last year of a series as returned by
// CountrySeries. It reports false for an empty series.
func Trend(series []dataset.Record) (CountryTrend, bool) {
	if len(series) == 0 {
		return CountryTrend{}, false
	}
	first, last := endpoints(series)
	change := last.HappinessScore - first.HappinessScore
	tr := CountryTrend{
		Country:    first.Country,
		StartYear:  first.Year.Value,
		EndYear:    last.Year.Value,
		FirstScore: first.HappinessScore,
		LastScore:  last.HappinessScore,
		Change:     change,
		AbsChange:  math.Abs(change),
		Direction:  direction(first.HappinessScore, last.HappinessScore),
	}
	for _, f := range dataset.Factors {
		from, to := first.Factor(f), last.Factor(f)
		if !from.Valid || !to.Valid {
			continue
		}
		d := to.Value - from.Value
		if tr.TopFactor != nil && math.Abs(d) <= tr.TopFactor.AbsChange {
			continue
		}
		tr.TopFactor = &FactorChange{
			Factor:    f,
			From:      from.Value,
			To:        to.Value,
			Change:    d,
			AbsChange: math.Abs(d),
			Direction: direction(from.Value, to.Value),
		}
	}
	return tr, true
}

// Position places a score relative to a regional mean.
type Position string

const (
	Above Position = "above"
	Below Position = "below"
	Equal Position = "equal"
)

// RegionalComparison sets a country's final score against its region's mean
// in the same year.
type RegionalComparison struct {
	Country    string   `json:"country"`
	Region     string   `json:"region"`
	Year       int      `json:"year"`
	Score      float64  `json:"score"`
	RegionMean float64  `json:"region_mean"`
	Members    int      `json:"members"`
	Position   Position `json:"position"`
}

// PrimaryRegion returns the most frequent region of a series; ties go to the
// region seen first.
func PrimaryRegion(series []dataset.Record) (string, bool) {
	counts := map[string]int{}
	var order []string
	for _, r := range series {
		if !r.Region.Valid {
			continue
		}
		if counts[r.Region.Value] == 0 {
			order = append(order, r.Region.Value)
		}
		counts[r.Region.Value]++
	}
	best, bestCount := "", 0
	for _, reg := range order {
		if counts[reg] > bestCount {
			best, bestCount = reg, counts[reg]
		}
	}
	return best, bestCount > 0
}

// CompareRegion compares the series' final score with the mean score of every
// record in the country's primary region for the final year. It reports
// false when the region is unknown or has no records that year.
func CompareRegion(t *dataset.Table, series []dataset.Record) (RegionalComparison, bool) {
	if len(series) == 0 {
		return RegionalComparison{}, false
	}
	region, ok := PrimaryRegion(series)
	if !ok {
		return RegionalComparison{}, false
	}
	_, last := endpoints(series)
	members := dataset.Filter(t, last.Year.Value, region).Records()
	if len(members) == 0 {
		return RegionalComparison{}, false
	}
	mean, err := stats.Mean(scores(members))
	if err != nil {
		return RegionalComparison{}, false
	}
	cmp := RegionalComparison{
		Country:    last.Country,
		Region:     region,
		Year:       last.Year.Value,
		Score:      last.HappinessScore,
		RegionMean: mean,
		Members:    len(members),
		Position:   Equal,
	}
	if cmp.Score > mean {
		cmp.Position = Above
	} else if cmp.Score < mean {
		cmp.Position = Below
	}
	return cmp, true
}

// ScoreBand describes where a 0-10 score sits on the reading guide.
type ScoreBand string

const (
	BandVeryLow  ScoreBand = "very low"
	BandMixed    ScoreBand = "mixed / below average"
	BandGood     ScoreBand = "good"
	BandVeryHigh ScoreBand = "very high"
)

// BandOf classifies a score: below 3.5 very low, below 5.5 mixed, below 8
// good, otherwise very high.
func BandOf(score float64) ScoreBand {
	switch {
	case score < 3.5:
		return BandVeryLow
	case score < 5.5:
		return BandMixed
	case score < 8:
		return BandGood
	default:
		return BandVeryHigh
	}
}
