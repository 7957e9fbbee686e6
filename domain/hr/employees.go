// Package hr generates the synthetic employee table used by the pivot and
// Power BI modelling lessons.
package hr

import (
	"fmt"
	"math/rand"
	"time"

	"pbihub/internal/errors"
)

type Employee struct {
	ID          string    `json:"employee"`
	Dept        string    `json:"dept"`
	Level       string    `json:"level"`
	Salary      int       `json:"salary"`
	JoinDate    time.Time `json:"join_date"`
	Performance string    `json:"performance"`
}

type weighted struct {
	value  string
	weight float64
}

var (
	depts       = []string{"Finance", "Sales", "Ops", "HR", "IT"}
	levels      = []weighted{{"Junior", 0.5}, {"Mid", 0.35}, {"Senior", 0.15}}
	performance = []weighted{{"A", 0.2}, {"B", 0.6}, {"C", 0.2}}

	joinFrom = time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC)
	joinTo   = time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
)

const (
	salaryMin = 25000
	salaryMax = 250000 // exclusive
)

const (
	// DefaultCount is the size of the bundled HR sample.
	DefaultCount = 200
	// MaxCount bounds a single sheet.
	MaxCount = 10000
)

// Generate draws n employees E001.. from rng. Each employee draws dept, level,
// salary, join date and performance in that order.
func Generate(rng *rand.Rand, n int) ([]Employee, error) {
	if n <= 0 {
		return nil, errors.InvalidInputf("employee count must be positive, got %d", n)
	}
	if n > MaxCount {
		return nil, errors.InvalidInputf("employee count %d exceeds %d", n, MaxCount)
	}
	days := int(joinTo.Sub(joinFrom).Hours()/24) + 1

	out := make([]Employee, n)
	for i := range out {
		out[i] = Employee{
			ID:          fmt.Sprintf("E%03d", i+1),
			Dept:        depts[rng.Intn(len(depts))],
			Level:       pick(rng, levels),
			Salary:      salaryMin + rng.Intn(salaryMax-salaryMin),
			JoinDate:    joinFrom.AddDate(0, 0, rng.Intn(days)),
			Performance: pick(rng, performance),
		}
	}
	return out, nil
}

func pick(rng *rand.Rand, choices []weighted) string {
	r := rng.Float64()
	acc := 0.0
	for _, c := range choices {
		acc += c.weight
		if r < acc {
			return c.value
		}
	}
	return choices[len(choices)-1].value
}
