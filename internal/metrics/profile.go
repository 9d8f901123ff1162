package metrics

import (
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"github.com/KaramelBytes/happiness-cli/internal/dataset"
)

// ProfileFields are the numeric columns covered by Profile, in display order.
var ProfileFields = append(append([]dataset.Field{dataset.FieldHappinessScore, dataset.FieldStandardError},
	dataset.Factors...), dataset.FieldDystopiaResidual)

// ColumnProfile captures presence and spread of one numeric column.
type ColumnProfile struct {
	Field   dataset.Field `json:"field"`
	NonNull int           `json:"non_null"`
	Missing int           `json:"missing"`
	Min     float64       `json:"min"`
	Max     float64       `json:"max"`
	Mean    float64       `json:"mean"`
	Std     float64       `json:"std"`
}

// Profile summarizes every numeric column of rows. Statistics stay zero for
// a column without values; Std needs at least two.
func Profile(rows []dataset.Record) []ColumnProfile {
	out := make([]ColumnProfile, 0, len(ProfileFields))
	for _, f := range ProfileFields {
		cp := ColumnProfile{Field: f}
		var vals []float64
		for _, r := range rows {
			if v := r.Factor(f); v.Valid {
				vals = append(vals, v.Value)
			}
		}
		cp.NonNull, cp.Missing = len(vals), len(rows)-len(vals)
		if len(vals) > 0 {
			cp.Min, _ = stats.Min(vals)
			cp.Max, _ = stats.Max(vals)
			cp.Mean, _ = stats.Mean(vals)
		}
		if len(vals) > 1 {
			cp.Std = stat.StdDev(vals, nil)
		}
		out = append(out, cp)
	}
	return out
}
