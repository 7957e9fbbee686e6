// Package api serves the learning hub's JSON endpoints with gin.
package api

import (
	"log"
	"math/rand"
	"net/http"
	"time"

	"pbihub/domain/quiz"
	"pbihub/internal/dataset"
	"pbihub/internal/errors"
	"pbihub/ports"

	"github.com/gin-gonic/gin"
)

// DefaultQuizKey names the single quiz the hub currently offers.
const DefaultQuizKey = "final"

const (
	// maxUploadBytes caps replacement dataset uploads.
	maxUploadBytes = 10 << 20
	// maxBodyBytes caps JSON request bodies.
	maxBodyBytes = 1 << 20
)

// Deps are the collaborators the API is built from. The stores may be nil, in
// which case session and progress endpoints answer 503.
type Deps struct {
	Bank          *quiz.Bank
	Data          *dataset.Current
	PassThreshold float64
	QuizSize      int

	Sessions ports.SessionStore
	Progress ports.ProgressStore
	Notes    ports.NotesStore

	// Seed returns the seed for a request that did not name one.
	Seed func() int64
}

// Handler holds the API's dependencies.
type Handler struct {
	deps Deps
}

// NewHandler creates the API handler set
func NewHandler(deps Deps) *Handler {
	if deps.Seed == nil {
		deps.Seed = func() int64 { return time.Now().UnixNano() }
	}
	return &Handler{deps: deps}
}

// NewEngine builds a gin engine with every API route under /api.
func NewEngine(h *Handler) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())
	engine.MaxMultipartMemory = maxUploadBytes
	h.Register(engine.Group("/api"))
	return engine
}

// Register attaches the API routes to group.
func (h *Handler) Register(group *gin.RouterGroup) {
	group.GET("/health", h.handleHealth)

	quizGroup := group.Group("/quiz", limitBody(maxBodyBytes))
	quizGroup.GET("/questions", h.handleQuestions)
	quizGroup.POST("/score", h.handleScore)

	data := group.Group("/datasets")
	data.POST("/generate", limitBody(maxBodyBytes), h.handleGenerate)
	data.POST("/upload", h.handleUpload)
	data.GET("/sales", h.handleSales)
	data.GET("/summary", h.handleSummary)
	data.GET("/pivot", h.handlePivot)
	data.GET("/lookup", h.handleLookup)
	data.GET("/sequence", h.handleSequence)
	data.GET("/employees", h.handleEmployees)

	sessions := group.Group("/sessions", limitBody(maxBodyBytes))
	sessions.POST("", h.handleCreateSession)
	sessions.GET("/:id", h.handleGetSession)
	sessions.PATCH("/:id", h.handleUpdateSession)
	sessions.GET("/:id/progress", h.handleProgress)
	sessions.GET("/:id/notes", h.handleListNotes)
	sessions.POST("/:id/notes", h.handleCreateNote)
	sessions.DELETE("/:id/notes/:noteID", h.handleDeleteNote)
}

func (h *Handler) handleHealth(c *gin.Context) {
	_, info := h.deps.Data.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"questions": h.deps.Bank.Len(),
		"dataset":   info,
	})
}

// rng returns a source for the request, seeded from the seed query parameter
// when present. The seed is echoed back so a presentation can be replayed.
func (h *Handler) rng(c *gin.Context) (*rand.Rand, int64, error) {
	seed := h.deps.Seed()
	if raw := c.Query("seed"); raw != "" {
		var err error
		if seed, err = parseInt64(raw); err != nil {
			return nil, 0, errors.InvalidInputf("seed %q is not an integer", raw)
		}
	}
	return rand.New(rand.NewSource(seed)), seed, nil
}

// limitBody stops reading request bodies after n bytes; binding then fails
// with INVALID_INPUT.
func limitBody(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}

func respondError(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[API] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.AbortWithStatusJSON(status, gin.H{
		"error": err.Error(),
		"code":  errors.GetCode(err),
	})
}

func bindError(err error) error {
	return errors.WithCode(errors.CodeInvalidInput, errors.Wrap(err, "invalid request body"))
}
