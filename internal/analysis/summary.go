package analysis

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"pbihub/domain/sales"
)

// UnitStats describes the distribution of units across a dataset.
type UnitStats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Q25    float64 `json:"q25"`
	Q75    float64 `json:"q75"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Summary holds the KPI cards shown on the home and datasets pages.
type Summary struct {
	Rows         int       `json:"rows"`
	People       int       `json:"people"`
	TotalUnits   int       `json:"total_units"`
	TotalRevenue float64   `json:"total_revenue"`
	AvgPrice     float64   `json:"avg_price"` // weighted by units
	Units        UnitStats `json:"units"`
	UnitsRevCorr float64   `json:"units_revenue_corr"`
	TopRegion    string    `json:"top_region"`
	TopRegionRev float64   `json:"top_region_revenue"`
}

// Summarize computes the KPIs of records. An empty dataset yields a zero Summary.
func Summarize(records []sales.Record) (Summary, error) {
	var sum Summary
	if len(records) == 0 {
		return sum, nil
	}

	units := make([]float64, len(records))
	revenue := make([]float64, len(records))
	prices := make([]float64, len(records))
	people := map[string]struct{}{}
	for i, r := range records {
		units[i] = float64(r.Units)
		revenue[i] = r.Revenue
		prices[i] = r.Price
		sum.TotalUnits += r.Units
		sum.TotalRevenue += r.Revenue
		people[r.Person] = struct{}{}
	}
	sum.Rows = len(records)
	sum.People = len(people)
	sum.AvgPrice = stat.Mean(prices, units)

	var err error
	if sum.Units.Mean, err = stats.Mean(units); err != nil {
		return sum, err
	}
	if sum.Units.Median, err = stats.Median(units); err != nil {
		return sum, err
	}
	if sum.Units.StdDev, err = stats.StandardDeviation(units); err != nil {
		return sum, err
	}
	sorted := append([]float64(nil), units...)
	sort.Float64s(sorted)
	sum.Units.Q25 = stat.Quantile(0.25, stat.Empirical, sorted, nil)
	sum.Units.Q75 = stat.Quantile(0.75, stat.Empirical, sorted, nil)
	if sum.Units.Min, err = stats.Min(units); err != nil {
		return sum, err
	}
	if sum.Units.Max, err = stats.Max(units); err != nil {
		return sum, err
	}

	// Correlation is undefined for a single row or constant columns.
	if len(records) > 1 && sum.Units.StdDev > 0 {
		if corr := stat.Correlation(units, revenue, nil); !math.IsNaN(corr) {
			sum.UnitsRevCorr = corr
		}
	}

	for _, cell := range Pivot(records, ByRegion) {
		if cell.Revenue > sum.TopRegionRev {
			sum.TopRegion = cell.Key
			sum.TopRegionRev = cell.Revenue
		}
	}
	return sum, nil
}
