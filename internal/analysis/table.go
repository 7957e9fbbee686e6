// Package analysis implements the Excel-style operations the lessons run over
// the sample dataset: filtering, lookups, pivots and summary statistics.
package analysis

import (
	"sort"

	"pbihub/domain/sales"
	"pbihub/internal/errors"
)

// Criteria narrows a dataset. Empty Month/Person mean "(All)"; a nil Regions
// slice keeps every region while an empty non-nil one keeps none.
type Criteria struct {
	Month   string
	Person  string
	Regions []string
}

// Filter returns the records matching c, in their original order.
func Filter(records []sales.Record, c Criteria) []sales.Record {
	var regions map[string]bool
	if c.Regions != nil {
		regions = make(map[string]bool, len(c.Regions))
		for _, r := range c.Regions {
			regions[r] = true
		}
	}
	out := make([]sales.Record, 0, len(records))
	for _, r := range records {
		if c.Month != "" && r.Month != c.Month {
			continue
		}
		if c.Person != "" && r.Person != c.Person {
			continue
		}
		if regions != nil && !regions[r.Region] {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Lookup sums revenue for a month/person pair, the way SUMIFS would. The bool is
// false when no row matched.
func Lookup(records []sales.Record, month, person string) (float64, bool) {
	total, found := 0.0, false
	for _, r := range records {
		if r.Month == month && r.Person == person {
			total += r.Revenue
			found = true
		}
	}
	return total, found
}

// UniqueRegions returns the distinct regions, sorted.
func UniqueRegions(records []sales.Record) []string {
	return unique(records, func(r sales.Record) string { return r.Region }, true)
}

// UniquePeople returns the distinct people, sorted.
func UniquePeople(records []sales.Record) []string {
	return unique(records, func(r sales.Record) string { return r.Person }, true)
}

// UniqueMonths returns the distinct months in first-seen order, which keeps
// calendar order for generated data.
func UniqueMonths(records []sales.Record) []string {
	return unique(records, func(r sales.Record) string { return r.Month }, false)
}

func unique(records []sales.Record, key func(sales.Record) string, sorted bool) []string {
	seen := map[string]bool{}
	var out []string
	for _, r := range records {
		k := key(r)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	if sorted {
		sort.Strings(out)
	}
	return out
}

// Dimension is a column a pivot can group by.
type Dimension int

const (
	ByMonth Dimension = iota
	ByPerson
	ByRegion
)

// ParseDimension resolves "month", "person" or "region".
func ParseDimension(s string) (Dimension, error) {
	switch s {
	case "month":
		return ByMonth, nil
	case "person":
		return ByPerson, nil
	case "region":
		return ByRegion, nil
	}
	return ByMonth, errors.InvalidInputf("unknown pivot dimension %q", s)
}

func (d Dimension) key(r sales.Record) string {
	switch d {
	case ByPerson:
		return r.Person
	case ByRegion:
		return r.Region
	default:
		return r.Month
	}
}

// PivotCell is one row of a pivot table.
type PivotCell struct {
	Key     string  `json:"key"`
	Rows    int     `json:"rows"`
	Units   int     `json:"units"`
	Revenue float64 `json:"revenue"`
	Share   float64 `json:"share"`
}

// Pivot groups records by d in first-seen order and totals units and revenue.
func Pivot(records []sales.Record, d Dimension) []PivotCell {
	index := map[string]int{}
	var cells []PivotCell
	total := 0.0
	for _, r := range records {
		k := d.key(r)
		i, ok := index[k]
		if !ok {
			i = len(cells)
			index[k] = i
			cells = append(cells, PivotCell{Key: k})
		}
		cells[i].Rows++
		cells[i].Units += r.Units
		cells[i].Revenue += r.Revenue
		total += r.Revenue
	}
	if total > 0 {
		for i := range cells {
			cells[i].Share = cells[i].Revenue / total
		}
	}
	return cells
}

// SequenceRow is one row of the dynamic-array demo.
type SequenceRow struct {
	N       int `json:"n"`
	Squared int `json:"n2"`
	Cubed   int `json:"n3"`
}

// MaxSequence is the longest sequence the demo renders.
const MaxSequence = 100

// Sequence mimics =SEQUENCE(n) with squared and cubed helper columns.
func Sequence(n int) ([]SequenceRow, error) {
	if n < 1 || n > MaxSequence {
		return nil, errors.InvalidInputf("sequence length must be 1..%d, got %d", MaxSequence, n)
	}
	rows := make([]SequenceRow, n)
	for i := range rows {
		v := i + 1
		rows[i] = SequenceRow{N: v, Squared: v * v, Cubed: v * v * v}
	}
	return rows, nil
}
