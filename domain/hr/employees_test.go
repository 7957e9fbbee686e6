package hr

import (
	"math/rand"
	"testing"
	"time"

	"pbihub/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateEmployees(t *testing.T) {
	employees, err := Generate(rand.New(rand.NewSource(42)), DefaultCount)
	require.NoError(t, err)
	require.Len(t, employees, DefaultCount)

	assert.Equal(t, "E001", employees[0].ID)
	assert.Equal(t, "E200", employees[199].ID)

	levels := map[string]int{}
	for _, e := range employees {
		assert.GreaterOrEqual(t, e.Salary, salaryMin)
		assert.Less(t, e.Salary, salaryMax)
		assert.False(t, e.JoinDate.Before(joinFrom))
		assert.False(t, e.JoinDate.After(joinTo))
		assert.Contains(t, []string{"A", "B", "C"}, e.Performance)
		levels[e.Level]++
	}
	assert.Greater(t, levels["Junior"], levels["Senior"], "junior is the most heavily weighted level")
}

func TestGenerateEmployeesDeterministic(t *testing.T) {
	a, err := Generate(rand.New(rand.NewSource(9)), 25)
	require.NoError(t, err)
	b, err := Generate(rand.New(rand.NewSource(9)), 25)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerateEmployeesRejectsEmpty(t *testing.T) {
	_, err := Generate(rand.New(rand.NewSource(1)), 0)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidInput(err))
}

func TestGenerateEmployeesRejectsOversized(t *testing.T) {
	_, err := Generate(rand.New(rand.NewSource(1)), 1<<40)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidInput(err))

	rows, err := Generate(rand.New(rand.NewSource(1)), MaxCount)
	require.NoError(t, err)
	assert.Len(t, rows, MaxCount)
}

func TestPickFallsBackToLast(t *testing.T) {
	choices := []weighted{{"x", 0.1}, {"y", 0.1}}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := 0; i < 20; i++ {
		assert.Contains(t, []string{"x", "y"}, pick(rng, choices))
	}
}
