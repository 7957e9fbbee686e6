package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pbihub/adapters/excel"
	"pbihub/domain/quiz"
	"pbihub/domain/sales"
	"pbihub/domain/session"
	"pbihub/internal/dataset"
	"pbihub/internal/errors"
	"pbihub/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Save(ctx context.Context, s session.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSessionStore) Get(ctx context.Context, id uuid.UUID) (session.Session, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(session.Session), args.Error(1)
}

type MockProgressStore struct {
	mock.Mock
}

func (m *MockProgressStore) SaveResult(ctx context.Context, result *models.QuizResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *MockProgressStore) ListResults(ctx context.Context, learnerID uuid.UUID, limit int) ([]models.QuizResult, error) {
	args := m.Called(ctx, learnerID, limit)
	return args.Get(0).([]models.QuizResult), args.Error(1)
}

func (m *MockProgressStore) BestResult(ctx context.Context, learnerID uuid.UUID, quizKey string) (*models.QuizResult, error) {
	args := m.Called(ctx, learnerID, quizKey)
	return args.Get(0).(*models.QuizResult), args.Error(1)
}

func (m *MockProgressStore) Summary(ctx context.Context, learnerID uuid.UUID) (*models.ProgressSummary, error) {
	args := m.Called(ctx, learnerID)
	return args.Get(0).(*models.ProgressSummary), args.Error(1)
}

func init() {
	gin.SetMode(gin.TestMode)
}

func testBank() *quiz.Bank {
	return quiz.NewBank([]quiz.Question{
		quiz.MustQuestion("Which function sums with conditions?", []string{"SUMIFS", "COUNT", "LEN"}, 0, "SUMIFS adds values that meet every criterion."),
		quiz.MustQuestion("Which language defines measures?", []string{"M", "DAX"}, 1, "Measures are written in DAX."),
		quiz.MustQuestion("Where do you unpivot columns?", []string{"Power Query", "Report view"}, 0, ""),
		quiz.MustQuestion("What does IFERROR return on error?", []string{"#N/A", "The fallback value"}, 1, "IFERROR swaps errors for the fallback."),
	})
}

// testBankCorrect is the correct option of each testBank position.
var testBankCorrect = []quiz.Choice{0, 1, 0, 1}

func newTestServer(t *testing.T, deps Deps) (*gin.Engine, Deps) {
	t.Helper()
	if deps.Bank == nil {
		deps.Bank = testBank()
	}
	if deps.Data == nil {
		records, err := sales.Generate(42, sales.DefaultParams())
		require.NoError(t, err)
		deps.Data = dataset.NewCurrent(records, "generated", 42)
	}
	if deps.PassThreshold == 0 {
		deps.PassThreshold = 0.8
	}
	if deps.QuizSize == 0 {
		deps.QuizSize = 3
	}
	deps.Seed = func() int64 { return 7 }
	return NewEngine(NewHandler(deps)), deps
}

func do(engine http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func TestQuestionsHideAnswers(t *testing.T) {
	engine, _ := newTestServer(t, Deps{})

	w := do(engine, http.MethodGet, "/api/quiz/questions?seed=3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "correct")
	assert.NotContains(t, w.Body.String(), "SUMIFS adds values")

	var body struct {
		Seed      int64          `json:"seed"`
		Questions []QuestionView `json:"questions"`
	}
	decode(t, w, &body)
	assert.Equal(t, int64(3), body.Seed)
	require.Len(t, body.Questions, 3)

	// Same seed, same presentation.
	again := do(engine, http.MethodGet, "/api/quiz/questions?seed=3", nil)
	assert.Equal(t, w.Body.String(), again.Body.String())

	w = do(engine, http.MethodGet, "/api/quiz/questions?n=0", nil)
	decode(t, w, &body)
	assert.Len(t, body.Questions, 4)

	w = do(engine, http.MethodGet, "/api/quiz/questions?n=many", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func seeded(seed int64, n int, answers ...quiz.Answer) ScoreRequest {
	return ScoreRequest{Seed: &seed, N: &n, Answers: answers}
}

func reviewFor(t *testing.T, resp ScoreResponse, index int) ReviewItem {
	t.Helper()
	for _, item := range resp.Review {
		if item.Index == index {
			return item
		}
	}
	t.Fatalf("question %d not reviewed", index)
	return ReviewItem{}
}

func TestScore(t *testing.T) {
	engine, _ := newTestServer(t, Deps{})

	// n=0 presents the whole four-question bank
	tests := []struct {
		name    string
		answers []quiz.Answer
		score   int
		passed  bool
	}{
		{"all correct", []quiz.Answer{{Index: 0, Selected: 0}, {Index: 1, Selected: 1}, {Index: 2, Selected: 0}, {Index: 3, Selected: 1}}, 4, true},
		{"three of four", []quiz.Answer{{Index: 0, Selected: 0}, {Index: 1, Selected: 1}, {Index: 2, Selected: 0}, {Index: 3, Selected: 0}}, 3, false},
		{"unanswered and out of range", []quiz.Answer{{Index: 0, Selected: quiz.Unanswered}, {Index: 1, Selected: 9}}, 0, false},
		{"one answer counts against all presented", []quiz.Answer{{Index: 1, Selected: 1}}, 1, false},
		{"empty", nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(engine, http.MethodPost, "/api/quiz/score", seeded(11, 0, tt.answers...))
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			var resp ScoreResponse
			decode(t, w, &resp)
			assert.Equal(t, tt.score, resp.Score)
			assert.Equal(t, 4, resp.Total)
			assert.Equal(t, tt.passed, resp.Passed)
			assert.Len(t, resp.Review, 4)
			assert.False(t, resp.Recorded)
		})
	}
}

func TestScoreRejectsAnswersOutsideThePresentedQuiz(t *testing.T) {
	engine, _ := newTestServer(t, Deps{})

	w := do(engine, http.MethodPost, "/api/quiz/score", seeded(11, 0,
		quiz.Answer{Index: 0, Selected: 0}, quiz.Answer{Index: 0, Selected: 0}, quiz.Answer{Index: 0, Selected: 0}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotContains(t, w.Body.String(), `"passed":true`)

	w = do(engine, http.MethodPost, "/api/quiz/score", seeded(11, 0, quiz.Answer{Index: 99, Selected: 0}))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// A one-question quiz only accepts the question it presented.
	presented := testBank().PresentIndices(rand.New(rand.NewSource(11)), 1)[0]
	other := (presented + 1) % 4
	w = do(engine, http.MethodPost, "/api/quiz/score", seeded(11, 1, quiz.Answer{Index: other, Selected: 0}))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(engine, http.MethodPost, "/api/quiz/score", ScoreRequest{Answers: []quiz.Answer{{Index: 0, Selected: 0}}})
	assert.Equal(t, http.StatusBadRequest, w.Code, "seed is required")
}

func TestScoreMatchesPresentedQuestions(t *testing.T) {
	engine, _ := newTestServer(t, Deps{})

	w := do(engine, http.MethodGet, "/api/quiz/questions?seed=21", nil)
	var body struct {
		Questions []QuestionView `json:"questions"`
	}
	decode(t, w, &body)
	require.Len(t, body.Questions, 3)

	first := body.Questions[0].Index
	w = do(engine, http.MethodPost, "/api/quiz/score", ScoreRequest{
		Seed:    func() *int64 { v := int64(21); return &v }(),
		Answers: []quiz.Answer{{Index: first, Selected: testBankCorrect[first]}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp ScoreResponse
	decode(t, w, &resp)
	assert.Equal(t, 1, resp.Score)
	assert.Equal(t, 3, resp.Total)
	assert.False(t, resp.Passed)
	for n, q := range body.Questions {
		assert.Equal(t, q.Index, resp.Review[n].Index)
	}
}

func TestScoreReviewExplains(t *testing.T) {
	engine, _ := newTestServer(t, Deps{})
	w := do(engine, http.MethodPost, "/api/quiz/score", seeded(11, 0, quiz.Answer{Index: 3, Selected: 0}, quiz.Answer{Index: 2, Selected: 0}))

	var resp ScoreResponse
	decode(t, w, &resp)
	require.Len(t, resp.Review, 4)

	wrong := reviewFor(t, resp, 3)
	assert.False(t, wrong.Correct)
	assert.Equal(t, 1, wrong.CorrectIndex)
	assert.Equal(t, "IFERROR swaps errors for the fallback.", wrong.Explanation)

	right := reviewFor(t, resp, 2)
	assert.True(t, right.Correct)
	assert.Equal(t, "", right.Explanation)

	assert.Equal(t, quiz.Unanswered, reviewFor(t, resp, 0).Selected)
}

func TestScoreRecordsAgainstSession(t *testing.T) {
	sessions := &MockSessionStore{}
	progress := &MockProgressStore{}
	engine, _ := newTestServer(t, Deps{Sessions: sessions, Progress: progress})

	s := session.New("Isha", session.AccentLime)
	sessions.On("Get", mock.Anything, s.ID).Return(s, nil)
	sessions.On("Save", mock.Anything, mock.MatchedBy(func(saved session.Session) bool {
		return saved.ID == s.ID && saved.PassedQuiz && saved.Scores["final"].Score == 4
	})).Return(nil)
	progress.On("SaveResult", mock.Anything, mock.MatchedBy(func(r *models.QuizResult) bool {
		return r.LearnerID == s.ID && r.Passed && r.Total == 4 && r.QuizKey == "final"
	})).Return(nil)

	req := seeded(11, 0, quiz.Answer{Index: 0, Selected: 0}, quiz.Answer{Index: 1, Selected: 1}, quiz.Answer{Index: 2, Selected: 0}, quiz.Answer{Index: 3, Selected: 1})
	req.SessionID = s.ID.String()
	w := do(engine, http.MethodPost, "/api/quiz/score", req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp ScoreResponse
	decode(t, w, &resp)
	assert.True(t, resp.Recorded)
	sessions.AssertExpectations(t)
	progress.AssertExpectations(t)
}

func TestScoreDoesNotRecordShortQuizzes(t *testing.T) {
	sessions := &MockSessionStore{}
	progress := &MockProgressStore{}
	engine, _ := newTestServer(t, Deps{Sessions: sessions, Progress: progress})

	presented := testBank().PresentIndices(rand.New(rand.NewSource(11)), 1)[0]
	req := seeded(11, 1, quiz.Answer{Index: presented, Selected: testBankCorrect[presented]})
	req.SessionID = uuid.NewString()
	w := do(engine, http.MethodPost, "/api/quiz/score", req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	sessions.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	progress.AssertNotCalled(t, "SaveResult", mock.Anything, mock.Anything)
}

func TestScoreUnknownSession(t *testing.T) {
	sessions := &MockSessionStore{}
	engine, _ := newTestServer(t, Deps{Sessions: sessions, Progress: &MockProgressStore{}})

	id := uuid.New()
	sessions.On("Get", mock.Anything, id).Return(session.Session{}, errors.NotFound("session"))

	req := seeded(11, 0)
	req.SessionID = id.String()
	w := do(engine, http.MethodPost, "/api/quiz/score", req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req.SessionID = "nope"
	w = do(engine, http.MethodPost, "/api/quiz/score", req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScoreWithoutStore(t *testing.T) {
	engine, _ := newTestServer(t, Deps{})
	req := seeded(11, 0)
	req.SessionID = uuid.NewString()
	w := do(engine, http.MethodPost, "/api/quiz/score", req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestScoreRejectsOversizedBody(t *testing.T) {
	engine, _ := newTestServer(t, Deps{})
	body := `{"seed":1,"quiz_key":"` + strings.Repeat("x", maxBodyBytes) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/quiz/score", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerate(t *testing.T) {
	engine, deps := newTestServer(t, Deps{})

	seed := int64(11)
	w := do(engine, http.MethodPost, "/api/datasets/generate", GenerateRequest{
		Seed:    &seed,
		Months:  []string{"Jan", "Feb"},
		People:  []string{"Isha"},
		Regions: []string{"North"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Seed    int64          `json:"seed"`
		Records []sales.Record `json:"records"`
	}
	decode(t, w, &body)
	want, err := sales.Generate(11, GenerateRequest{Months: []string{"Jan", "Feb"}, People: []string{"Isha"}, Regions: []string{"North"}}.Params())
	require.NoError(t, err)
	assert.Equal(t, want, body.Records)
	_, info := deps.Data.Snapshot()
	assert.Equal(t, 1, info.Version, "generate without activate leaves the active dataset alone")

	w = do(engine, http.MethodPost, "/api/datasets/generate", map[string]interface{}{"months": []string{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_INPUT")

	w = do(engine, http.MethodPost, "/api/datasets/generate", map[string]interface{}{"units": map[string]int{"low": 9, "high": 3}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(engine, http.MethodPost, "/api/datasets/generate", map[string]interface{}{"activate": true})
	require.Equal(t, http.StatusOK, w.Code)
	records, info := deps.Data.Snapshot()
	assert.Equal(t, 2, info.Version)
	assert.Equal(t, int64(7), info.Seed)
	assert.Len(t, records, 120)
}

func TestSalesFormats(t *testing.T) {
	engine, _ := newTestServer(t, Deps{})

	w := do(engine, http.MethodGet, "/api/datasets/sales?month=Jan&region=North&region=South", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Records []sales.Record `json:"records"`
	}
	decode(t, w, &body)
	require.NotEmpty(t, body.Records)
	for _, r := range body.Records {
		assert.Equal(t, "Jan", r.Month)
		assert.Contains(t, []string{"North", "South"}, r.Region)
	}

	w = do(engine, http.MethodGet, "/api/datasets/sales?format=csv", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, excel.CSVContentType, w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "Month,Person,Region,Units,Price,Revenue"))

	w = do(engine, http.MethodGet, "/api/datasets/sales?format=xlsx", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "sales.xlsx")
	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	rows, err := f.GetRows(excel.SalesSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 121)
	require.NoError(t, f.Close())

	w = do(engine, http.MethodGet, "/api/datasets/sales?format=pdf", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSummaryPivotLookup(t *testing.T) {
	engine, deps := newTestServer(t, Deps{})
	records := deps.Data.Records()

	w := do(engine, http.MethodGet, "/api/datasets/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary struct {
		Rows         int     `json:"rows"`
		TotalRevenue float64 `json:"total_revenue"`
	}
	decode(t, w, &summary)
	assert.Equal(t, 120, summary.Rows)
	total := 0.0
	for _, r := range records {
		total += r.Revenue
	}
	assert.InDelta(t, total, summary.TotalRevenue, 1e-6)

	w = do(engine, http.MethodGet, "/api/datasets/pivot?by=month", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var pivot struct {
		Cells []struct {
			Key string `json:"key"`
		} `json:"cells"`
	}
	decode(t, w, &pivot)
	require.Len(t, pivot.Cells, 12)
	assert.Equal(t, "Jan", pivot.Cells[0].Key)

	w = do(engine, http.MethodGet, "/api/datasets/pivot?by=colour", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	first := records[0]
	w = do(engine, http.MethodGet, "/api/datasets/lookup?month="+first.Month+"&person="+first.Person, nil)
	var lookup struct {
		Revenue float64 `json:"revenue"`
		Found   bool    `json:"found"`
	}
	decode(t, w, &lookup)
	assert.True(t, lookup.Found)
	assert.Equal(t, first.Revenue, lookup.Revenue)

	w = do(engine, http.MethodGet, "/api/datasets/lookup?month=Jan", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSequenceAndEmployees(t *testing.T) {
	engine, _ := newTestServer(t, Deps{})

	w := do(engine, http.MethodGet, "/api/datasets/sequence?n=3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"rows":[{"n":1,"n2":1,"n3":1},{"n":2,"n2":4,"n3":8},{"n":3,"n2":9,"n3":27}]}`, w.Body.String())

	w = do(engine, http.MethodGet, "/api/datasets/sequence?n=0", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(engine, http.MethodGet, "/api/datasets/employees?n=5&seed=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Employees []struct {
			ID string `json:"employee"`
		} `json:"employees"`
	}
	decode(t, w, &body)
	require.Len(t, body.Employees, 5)
	assert.Equal(t, "E001", body.Employees[0].ID)

	w = do(engine, http.MethodGet, "/api/datasets/employees?n=-1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDatasetSizesAreBounded(t *testing.T) {
	engine, _ := newTestServer(t, Deps{})

	w := do(engine, http.MethodGet, "/api/datasets/employees?n=1099511627776", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(engine, http.MethodGet, "/api/datasets/sequence?n=3000000", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	people := make([]string, 200)
	months := make([]string, 100)
	for i := range people {
		people[i] = fmt.Sprintf("P%d", i)
	}
	for i := range months {
		months[i] = fmt.Sprintf("M%d", i)
	}
	w = do(engine, http.MethodPost, "/api/datasets/generate", GenerateRequest{Months: months, People: people})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/datasets/generate",
		strings.NewReader(`{"months":["`+strings.Repeat("x", maxBodyBytes)+`"]}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func upload(t *testing.T, engine http.Handler, name, content string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/datasets/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestUploadReplacesDataset(t *testing.T) {
	engine, deps := newTestServer(t, Deps{})

	w := upload(t, engine, "team.csv", "Month,Person,Region,Units,Price\nJan,Isha,North,2,50\nFeb,Kabir,West,1,10\n")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	records, info := deps.Data.Snapshot()
	assert.Equal(t, "team.csv", info.Source)
	assert.Equal(t, 2, info.Version)
	require.Len(t, records, 2)
	assert.Equal(t, 100.0, records[0].Revenue)

	w = upload(t, engine, "bad.csv", "Month,Person,Units,Price\nJan,Isha,lots,1\n")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	_, info = deps.Data.Snapshot()
	assert.Equal(t, 2, info.Version, "a rejected upload keeps the previous dataset")

	req := httptest.NewRequest(http.MethodPost, "/api/datasets/upload", nil)
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionLifecycle(t *testing.T) {
	sessions := &MockSessionStore{}
	engine, _ := newTestServer(t, Deps{Sessions: sessions})

	var created SessionView
	sessions.On("Save", mock.Anything, mock.AnythingOfType("session.Session")).Return(nil)

	w := do(engine, http.MethodPost, "/api/sessions", SessionRequest{Username: "Diya", Accent: "ocean", Tab: "dax-lab"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	decode(t, w, &created)
	assert.Equal(t, "Diya", created.Username)
	assert.Equal(t, session.AccentOcean, created.Accent)
	assert.Equal(t, "dax-lab", created.TabSlug)
	assert.Equal(t, "#1E90FF", created.AccentHex)
	assert.False(t, created.CertificateEligible)

	w = do(engine, http.MethodPost, "/api/sessions", SessionRequest{Accent: "plaid"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	stored := created.Session
	sessions.On("Get", mock.Anything, stored.ID).Return(stored, nil)
	w = do(engine, http.MethodPatch, "/api/sessions/"+stored.ID.String(), SessionRequest{Tab: "quiz"})
	require.Equal(t, http.StatusOK, w.Code)
	var updated SessionView
	decode(t, w, &updated)
	assert.Equal(t, session.TabQuiz, updated.Tab)
	assert.Equal(t, "Diya", updated.Username)

	w = do(engine, http.MethodPatch, "/api/sessions/"+stored.ID.String(), SessionRequest{Tab: "nowhere"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(engine, http.MethodGet, "/api/sessions/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProgressEndpoint(t *testing.T) {
	sessions := &MockSessionStore{}
	progress := &MockProgressStore{}
	engine, _ := newTestServer(t, Deps{Sessions: sessions, Progress: progress})

	s := session.New("Myra", session.AccentRose)
	sessions.On("Get", mock.Anything, s.ID).Return(s, nil)
	progress.On("Summary", mock.Anything, s.ID).Return(&models.ProgressSummary{Attempts: 2, Passed: 1, BestPercentage: 0.9}, nil)
	progress.On("ListResults", mock.Anything, s.ID, 5).Return([]models.QuizResult{{QuizKey: "final", Score: 9, Total: 10}}, nil)

	w := do(engine, http.MethodGet, "/api/sessions/"+s.ID.String()+"/progress?limit=5", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var body struct {
		Summary models.ProgressSummary `json:"summary"`
		Results []models.QuizResult    `json:"results"`
	}
	decode(t, w, &body)
	assert.Equal(t, 2, body.Summary.Attempts)
	assert.Len(t, body.Results, 1)
	progress.AssertExpectations(t)
}

func TestSessionEndpointsWithoutStore(t *testing.T) {
	engine, _ := newTestServer(t, Deps{})
	w := do(engine, http.MethodGet, "/api/sessions/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
