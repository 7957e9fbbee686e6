package sales

import (
	"pbihub/internal/errors"
)

// Record is one synthetic row of demonstration sales data.
type Record struct {
	Month   string  `json:"month"`
	Person  string  `json:"person"`
	Region  string  `json:"region"`
	Units   int     `json:"units"`
	Price   float64 `json:"price"`
	Revenue float64 `json:"revenue"`
}

// NewRecord builds a record with revenue derived from units and price.
func NewRecord(month, person, region string, units int, price float64) (Record, error) {
	r := Record{Month: month, Person: person, Region: region, Units: units, Price: price}
	if err := r.Validate(); err != nil {
		return Record{}, err
	}
	return r.WithRevenue(), nil
}

// WithRevenue returns a copy of r with Revenue recomputed as Units × Price.
func (r Record) WithRevenue() Record {
	r.Revenue = float64(r.Units) * r.Price
	return r
}

// Validate checks the record's own fields; Revenue is not trusted and is ignored.
func (r Record) Validate() error {
	if r.Month == "" {
		return errors.InvalidInput("month is required")
	}
	if r.Person == "" {
		return errors.InvalidInput("person is required")
	}
	if r.Units <= 0 {
		return errors.InvalidInputf("units must be positive, got %d", r.Units)
	}
	if r.Price <= 0 {
		return errors.InvalidInputf("price must be positive, got %v", r.Price)
	}
	return nil
}

// Columns is the header order used by every tabular rendering of records.
var Columns = []string{"Month", "Person", "Region", "Units", "Price", "Revenue"}

// Rebuild validates externally supplied rows and returns a fresh dataset with
// revenue recomputed. The input slice is not modified.
func Rebuild(rows []Record) ([]Record, error) {
	out := make([]Record, len(rows))
	for i, r := range rows {
		if err := r.Validate(); err != nil {
			return nil, errors.Wrapf(err, "row %d", i+1)
		}
		out[i] = r.WithRevenue()
	}
	return out, nil
}
