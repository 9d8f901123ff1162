package dataset

import (
	"fmt"
	"sort"
	"strings"
)

// Table is the normalized, read-only dataset.
type Table struct {
	// Path is the resolved source file.
	Path string
	// RowsRead counts data rows in the source; Dropped counts rows removed
	// for a missing Country or HappinessScore.
	RowsRead int
	Dropped  int

	records []Record
}

// NewTable builds a table from records already in canonical form.
func NewTable(records []Record) *Table {
	cp := make([]Record, len(records))
	copy(cp, records)
	return &Table{RowsRead: len(cp), records: cp}
}

// Len returns the number of records.
func (t *Table) Len() int { return len(t.records) }

// At returns the i-th record.
func (t *Table) At(i int) Record { return t.records[i] }

// Records returns a copy of the records in source order.
func (t *Table) Records() []Record {
	cp := make([]Record, len(t.records))
	copy(cp, t.records)
	return cp
}

// All returns a view over every record.
func (t *Table) All() View {
	idx := make([]int, len(t.records))
	for i := range idx {
		idx[i] = i
	}
	return View{table: t, indices: idx}
}

// Years returns the distinct years present, ascending.
func (t *Table) Years() []int {
	seen := map[int]bool{}
	var out []int
	for _, r := range t.records {
		if r.Year.Valid && !seen[r.Year.Value] {
			seen[r.Year.Value] = true
			out = append(out, r.Year.Value)
		}
	}
	sort.Ints(out)
	return out
}

// Regions returns the distinct regions present, ascending.
func (t *Table) Regions() []string {
	return t.distinct(func(r Record) (string, bool) { return r.Region.Value, r.Region.Valid })
}

// RegionChoices returns AllRegions followed by Regions.
func (t *Table) RegionChoices() []string {
	return append([]string{AllRegions}, t.Regions()...)
}

// Countries returns the distinct country names, ascending.
func (t *Table) Countries() []string {
	return t.distinct(func(r Record) (string, bool) { return r.Country, r.Country != "" })
}

func (t *Table) distinct(key func(Record) (string, bool)) []string {
	seen := map[string]bool{}
	var out []string
	for _, r := range t.records {
		k, ok := key(r)
		if ok && !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// HasYear reports whether any record carries the given year.
func (t *Table) HasYear(year int) bool {
	for _, r := range t.records {
		if r.Year.Valid && r.Year.Value == year {
			return true
		}
	}
	return false
}

// ParseFactor resolves a factor by field name or descriptive label,
// ignoring case.
func ParseFactor(s string) (Field, error) {
	s = strings.TrimSpace(s)
	for _, f := range Factors {
		if strings.EqualFold(s, string(f)) || strings.EqualFold(s, f.Label()) {
			return f, nil
		}
	}
	names := make([]string, len(Factors))
	for i, f := range Factors {
		names[i] = string(f)
	}
	return "", fmt.Errorf("unknown factor %q (use one of %s)", s, strings.Join(names, ", "))
}
