package sales

import (
	"math/rand"
	"sync"
	"testing"

	"pbihub/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioParams() Params {
	return Params{
		Months:  []string{"Jan", "Feb"},
		People:  []string{"Alice", "Bob"},
		Regions: []string{"North", "South"},
		Prices:  []float64{100, 200},
		Units:   UnitsRange{Low: 10, High: 10},
	}
}

func TestGenerateScenario(t *testing.T) {
	first, err := Generate(7, scenarioParams())
	require.NoError(t, err)
	require.Len(t, first, 4)

	wantOrder := [][2]string{{"Jan", "Alice"}, {"Jan", "Bob"}, {"Feb", "Alice"}, {"Feb", "Bob"}}
	for i, r := range first {
		assert.Equal(t, wantOrder[i][0], r.Month)
		assert.Equal(t, wantOrder[i][1], r.Person)
		assert.Equal(t, 10, r.Units)
		assert.Contains(t, []float64{100, 200}, r.Price)
		assert.Contains(t, []float64{1000, 2000}, r.Revenue)
		assert.Contains(t, []string{"North", "South"}, r.Region)
	}

	second, err := Generate(7, scenarioParams())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerateDefaultsRevenueInvariant(t *testing.T) {
	records, err := Generate(42, DefaultParams())
	require.NoError(t, err)
	require.Len(t, records, 120)

	for _, r := range records {
		assert.Equal(t, float64(r.Units)*r.Price, r.Revenue)
		assert.GreaterOrEqual(t, r.Units, 5)
		assert.LessOrEqual(t, r.Units, 59)
	}
}

func TestGenerateDifferentSeedsDiffer(t *testing.T) {
	a, err := Generate(1, DefaultParams())
	require.NoError(t, err)
	b, err := Generate(2, DefaultParams())
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestGenerateConcurrentGeneratorsAreIndependent(t *testing.T) {
	want, err := Generate(99, DefaultParams())
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([][]Record, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = GenerateWith(rand.New(rand.NewSource(99)), DefaultParams())
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestGenerateInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"no months", func(p *Params) { p.Months = nil }},
		{"no people", func(p *Params) { p.People = []string{} }},
		{"no regions", func(p *Params) { p.Regions = nil }},
		{"no prices", func(p *Params) { p.Prices = nil }},
		{"zero price", func(p *Params) { p.Prices = []float64{0} }},
		{"inverted units", func(p *Params) { p.Units = UnitsRange{Low: 9, High: 3} }},
		{"zero units", func(p *Params) { p.Units = UnitsRange{Low: 0, High: 3} }},
		{"too many records", func(p *Params) {
			p.Months = make([]string, 101)
			p.People = make([]string, 100)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := scenarioParams()
			tt.mutate(&p)
			records, err := Generate(7, p)
			require.Error(t, err)
			assert.Nil(t, records)
			assert.True(t, errors.IsInvalidInput(err))
		})
	}
}

func TestRebuildRecomputesRevenue(t *testing.T) {
	rows := []Record{{Month: "Jan", Person: "Diya", Region: "East", Units: 3, Price: 99, Revenue: 1}}

	rebuilt, err := Rebuild(rows)
	require.NoError(t, err)
	assert.Equal(t, 297.0, rebuilt[0].Revenue)
	assert.Equal(t, 1.0, rows[0].Revenue, "input rows are left untouched")

	_, err = Rebuild([]Record{{Month: "Jan", Person: "Diya", Units: -1, Price: 99}})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidInput(err))
	assert.Contains(t, err.Error(), "row 1")
}

func TestNewRecord(t *testing.T) {
	r, err := NewRecord("Mar", "Kabir", "West", 4, 2.5)
	require.NoError(t, err)
	assert.Equal(t, 10.0, r.Revenue)

	_, err = NewRecord("", "Kabir", "West", 4, 2.5)
	assert.Error(t, err)
}
