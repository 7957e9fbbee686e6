package container

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pbihub/adapters/store"
	"pbihub/internal/config"
	"pbihub/internal/quizbank"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Database: config.DatabaseConfig{Driver: "sqlite3", URL: "file::memory:?_foreign_keys=on"},
		Server:   config.ServerConfig{Port: "0", GinMode: "test"},
		Quiz:     config.QuizConfig{PassThreshold: 0.8, Size: 5},
		Data:     config.DataConfig{Seed: 42},
		Learner:  config.LearnerConfig{DefaultUsername: "Learner", DefaultAccent: "Mango"},
	}
}

func TestNewRequiresConfig(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

func TestWiresHub(t *testing.T) {
	cfg := testConfig()
	c, err := New(cfg)
	require.NoError(t, err)

	db, err := store.Open(context.Background(), cfg.Database.Driver, cfg.Database.URL)
	require.NoError(t, err)
	require.NoError(t, c.InitWithDatabase(db))
	defer c.Shutdown(context.Background())

	require.NoError(t, c.InitContent())
	assert.Equal(t, quizbank.Default().Len(), c.Bank.Len())
	_, info := c.Data.Snapshot()
	assert.Equal(t, 120, info.Rows)
	assert.Equal(t, int64(42), info.Seed)

	handler, err := c.Handler()
	require.NoError(t, err)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "--accent: #FF8C00")

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/quiz/questions?seed=1", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"seed":1`)
}

func TestHandlerWithoutDatabase(t *testing.T) {
	c, err := New(testConfig())
	require.NoError(t, err)
	_, err = c.Handler()
	assert.Error(t, err, "content must be loaded first")

	require.NoError(t, c.InitContent())
	handler, err := c.Handler()
	require.NoError(t, err)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/quiz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, c.Shutdown(context.Background()))
}

func TestInitContentFromFiles(t *testing.T) {
	dir := t.TempDir()
	bankPath := filepath.Join(dir, "bank.yaml")
	require.NoError(t, os.WriteFile(bankPath, []byte(strings.TrimSpace(`
version: 1
questions:
  - question: Which function joins text and skips blanks?
    options: [TEXTJOIN, CONCAT]
    correct: 0
`)), 0o644))
	dataPath := filepath.Join(dir, "sales.csv")
	require.NoError(t, os.WriteFile(dataPath, []byte("Month,Person,Units,Price\nJan,Isha,2,10\n"), 0o644))

	cfg := testConfig()
	cfg.Quiz.BankFile = bankPath
	cfg.Data.ExcelFile = dataPath
	c, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, c.InitContent())

	assert.Equal(t, 1, c.Bank.Len())
	records, info := c.Data.Snapshot()
	assert.Equal(t, dataPath, info.Source)
	require.Len(t, records, 1)
	assert.Equal(t, 20.0, records[0].Revenue)

	cfg.Data.ExcelFile = filepath.Join(dir, "missing.xlsx")
	assert.Error(t, c.InitContent())
}
