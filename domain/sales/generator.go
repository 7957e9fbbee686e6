package sales

import (
	"math/rand"

	"pbihub/internal/errors"
)

// UnitsRange is an inclusive range of unit counts.
type UnitsRange struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// Params describes a generation request. Months and People are ordered; Regions
// and Prices are the sets a record draws from.
type Params struct {
	Months  []string   `json:"months"`
	People  []string   `json:"people"`
	Regions []string   `json:"regions"`
	Prices  []float64  `json:"prices"`
	Units   UnitsRange `json:"units"`
}

// DefaultParams mirrors the sample dataset shipped with the learning hub.
func DefaultParams() Params {
	return Params{
		Months:  []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
		People:  []string{"Aarav", "Isha", "Vihaan", "Diya", "Kabir", "Anaya", "Advait", "Myra", "Vivaan", "Sara"},
		Regions: []string{"North", "South", "East", "West"},
		Prices:  []float64{99, 199, 299, 399, 499},
		Units:   UnitsRange{Low: 5, High: 59},
	}
}

// MaxRecords bounds months x people for one dataset.
const MaxRecords = 10000

// Validate reports the first parameter that would leave generation undefined
// or the dataset larger than MaxRecords.
func (p Params) Validate() error {
	if len(p.Months) == 0 {
		return errors.InvalidInput("months must not be empty")
	}
	if len(p.People) == 0 {
		return errors.InvalidInput("people must not be empty")
	}
	if len(p.Months) > MaxRecords/len(p.People) {
		return errors.InvalidInputf("%d months x %d people exceeds %d records", len(p.Months), len(p.People), MaxRecords)
	}
	if len(p.Regions) == 0 {
		return errors.InvalidInput("regions must not be empty")
	}
	if len(p.Prices) == 0 {
		return errors.InvalidInput("price choices must not be empty")
	}
	for _, price := range p.Prices {
		if price <= 0 {
			return errors.InvalidInputf("price choices must be positive, got %v", price)
		}
	}
	if p.Units.Low > p.Units.High {
		return errors.InvalidInputf("units range %d..%d is inverted", p.Units.Low, p.Units.High)
	}
	if p.Units.Low <= 0 {
		return errors.InvalidInputf("units range must start above zero, got %d", p.Units.Low)
	}
	return nil
}

// Generate builds the dataset for seed. Two calls with the same seed and params
// return identical records.
func Generate(seed int64, p Params) ([]Record, error) {
	return GenerateWith(rand.New(rand.NewSource(seed)), p)
}

// GenerateWith builds the dataset drawing from rng, which the caller owns.
// Records come out months outer, people inner. Each record draws units, then
// price, then region, so the sequence of draws is fixed for a given params shape.
func GenerateWith(rng *rand.Rand, p Params) ([]Record, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	span := p.Units.High - p.Units.Low + 1
	records := make([]Record, 0, len(p.Months)*len(p.People))
	for _, month := range p.Months {
		for _, person := range p.People {
			units := p.Units.Low + rng.Intn(span)
			price := p.Prices[rng.Intn(len(p.Prices))]
			region := p.Regions[rng.Intn(len(p.Regions))]
			records = append(records, Record{
				Month:  month,
				Person: person,
				Region: region,
				Units:  units,
				Price:  price,
			}.WithRevenue())
		}
	}
	return records, nil
}
