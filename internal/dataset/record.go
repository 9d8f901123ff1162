package dataset

import (
	"encoding/json"
	"strconv"
)

// AllRegions is the region selection that disables region filtering.
const AllRegions = "All regions"

// Field is a canonical column name.
type Field string

// Canonical field names.
const (
	FieldCountry          Field = "Country"
	FieldRegion           Field = "Region"
	FieldYear             Field = "Year"
	FieldHappinessScore   Field = "HappinessScore"
	FieldHappinessRank    Field = "HappinessRank"
	FieldStandardError    Field = "StandardError"
	FieldEconomy          Field = "Economy"
	FieldFamily           Field = "Family"
	FieldHealth           Field = "Health"
	FieldFreedom          Field = "Freedom"
	FieldTrust            Field = "Trust"
	FieldGenerosity       Field = "Generosity"
	FieldDystopiaResidual Field = "DystopiaResidual"
)

// Factors lists the factor fields in their fixed order. Tie-breaks that pick
// "the first factor" use this order.
var Factors = []Field{
	FieldEconomy,
	FieldFamily,
	FieldHealth,
	FieldFreedom,
	FieldTrust,
	FieldGenerosity,
}

// fieldLabels are the descriptive labels shown for numeric fields.
var fieldLabels = map[Field]string{
	FieldHappinessScore:   "Happiness score",
	FieldStandardError:    "Standard error",
	FieldEconomy:          "Economy (GDP per capita)",
	FieldFamily:           "Family (social support)",
	FieldHealth:           "Health (life expectancy)",
	FieldFreedom:          "Freedom",
	FieldTrust:            "Trust (government corruption)",
	FieldGenerosity:       "Generosity",
	FieldDystopiaResidual: "Dystopia residual",
}

// Label returns the human-readable label of a field.
func (f Field) Label() string {
	if l, ok := fieldLabels[f]; ok {
		return l
	}
	return string(f)
}

// Num is an optional float value.
type Num struct {
	Value float64
	Valid bool
}

// Some returns a present Num.
func Some(v float64) Num { return Num{Value: v, Valid: true} }

func (n Num) String() string {
	if !n.Valid {
		return ""
	}
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}

// Int is an optional integer value.
type Int struct {
	Value int
	Valid bool
}

// SomeInt returns a present Int.
func SomeInt(v int) Int { return Int{Value: v, Valid: true} }

// MarshalJSON encodes a missing value as null.
func (n Num) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

func (i Int) String() string {
	if !i.Valid {
		return ""
	}
	return strconv.Itoa(i.Value)
}

// MarshalJSON encodes a missing value as null.
func (i Int) MarshalJSON() ([]byte, error) {
	if !i.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(i.Value)
}

// Str is an optional string value.
type Str struct {
	Value string
	Valid bool
}

// SomeStr returns a present Str.
func SomeStr(v string) Str { return Str{Value: v, Valid: true} }

// MarshalJSON encodes a missing value as null.
func (s Str) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(s.Value)
}

// Record is one country-year observation.
type Record struct {
	Country          string  `json:"country"`
	Region           Str     `json:"region"`
	Year             Int     `json:"year"`
	HappinessScore   float64 `json:"happiness_score"`
	HappinessRank    Int     `json:"happiness_rank"`
	StandardError    Num     `json:"standard_error"`
	Economy          Num     `json:"economy"`
	Family           Num     `json:"family"`
	Health           Num     `json:"health"`
	Freedom          Num     `json:"freedom"`
	Trust            Num     `json:"trust"`
	Generosity       Num     `json:"generosity"`
	DystopiaResidual Num     `json:"dystopia_residual"`
	// Extra holds source columns without a canonical field, keyed by header.
	Extra map[string]string `json:"extra,omitempty"`
}

// Factor returns the value of a numeric field. Unknown fields are missing.
func (r Record) Factor(f Field) Num {
	switch f {
	case FieldStandardError:
		return r.StandardError
	case FieldDystopiaResidual:
		return r.DystopiaResidual
	case FieldEconomy:
		return r.Economy
	case FieldFamily:
		return r.Family
	case FieldHealth:
		return r.Health
	case FieldFreedom:
		return r.Freedom
	case FieldTrust:
		return r.Trust
	case FieldGenerosity:
		return r.Generosity
	case FieldHappinessScore:
		return Some(r.HappinessScore)
	}
	return Num{}
}

func (r *Record) setNum(f Field, n Num) {
	switch f {
	case FieldStandardError:
		r.StandardError = n
	case FieldEconomy:
		r.Economy = n
	case FieldFamily:
		r.Family = n
	case FieldHealth:
		r.Health = n
	case FieldFreedom:
		r.Freedom = n
	case FieldTrust:
		r.Trust = n
	case FieldGenerosity:
		r.Generosity = n
	case FieldDystopiaResidual:
		r.DystopiaResidual = n
	}
}
