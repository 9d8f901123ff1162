package dataset

// View is an order-preserving projection of a Table. It holds indices into
// its table and never copies or mutates records.
type View struct {
	table   *Table
	indices []int
}

// Len returns the number of records in the view.
func (v View) Len() int { return len(v.indices) }

// Empty reports whether the view selected nothing.
func (v View) Empty() bool { return len(v.indices) == 0 }

// At returns the i-th record of the view.
func (v View) At(i int) Record { return v.table.records[v.indices[i]] }

// Records materializes the view in table order.
func (v View) Records() []Record {
	out := make([]Record, len(v.indices))
	for i, idx := range v.indices {
		out[i] = v.table.records[idx]
	}
	return out
}

// Where returns the sub-view of records matching keep.
func (v View) Where(keep func(Record) bool) View {
	out := make([]int, 0, len(v.indices))
	for _, idx := range v.indices {
		if keep(v.table.records[idx]) {
			out = append(out, idx)
		}
	}
	return View{table: v.table, indices: out}
}

// Filter selects records of the given year and, unless region is empty or
// AllRegions, of the given region. Records without a year never match.
func Filter(t *Table, year int, region string) View {
	restrict := region != "" && region != AllRegions
	return t.All().Where(func(r Record) bool {
		if !r.Year.Valid || r.Year.Value != year {
			return false
		}
		if restrict && (!r.Region.Valid || r.Region.Value != region) {
			return false
		}
		return true
	})
}
