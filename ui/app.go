package ui

import (
	"embed"
	"html/template"
	"io/fs"
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"pbihub/domain/quiz"
	"pbihub/domain/session"
	"pbihub/internal/dataset"
	"pbihub/internal/errors"
	"pbihub/ports"
	hubmw "pbihub/ui/middleware"
)

//go:embed templates/*.html static/*
var embeddedFiles embed.FS

// Deps are the collaborators the hub pages are built from. Sessions is
// required; Progress and Notes may be nil when no record store is configured.
type Deps struct {
	Bank          *quiz.Bank
	Data          *dataset.Current
	PassThreshold float64
	QuizSize      int

	Sessions ports.SessionStore
	Progress ports.ProgressStore
	Notes    ports.NotesStore

	DefaultUsername string
	DefaultAccent   session.Accent

	// API is mounted under /api when set.
	API http.Handler

	// Seed returns the seed for a quiz presentation that did not name one.
	Seed func() int64
}

// App represents the UI application
type App struct {
	router    *chi.Mux
	deps      Deps
	templates map[string]*template.Template
}

// NewApp creates a new UI application
func NewApp(deps Deps) (*App, error) {
	if deps.Sessions == nil {
		return nil, errors.ConfigInvalid("ui needs a session store")
	}
	if deps.Seed == nil {
		deps.Seed = func() int64 { return time.Now().UnixNano() }
	}

	templates, err := parseTemplates()
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse templates")
	}

	app := &App{
		router:    chi.NewRouter(),
		deps:      deps,
		templates: templates,
	}

	app.setupMiddleware()
	app.setupRoutes()

	return app, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		log.Printf("[setupRoutes] Error creating static filesystem: %v", err)
	} else {
		a.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	}

	if a.deps.API != nil {
		a.router.Mount("/api", a.deps.API)
	}

	a.router.Group(func(r chi.Router) {
		r.Use(hubmw.EnsureSession(a.deps.Sessions, hubmw.Defaults{
			Username: a.deps.DefaultUsername,
			Accent:   a.deps.DefaultAccent,
		}))

		// Main pages
		r.Get("/", a.handleHome)
		r.Get("/lessons/{tab}", a.handleLesson)
		r.Get("/certificate", a.handleCertificate)
		r.Post("/accent", a.handleAccent)

		r.Get("/datasets", a.handleDatasets)
		r.Post("/datasets/upload", a.handleDatasetUpload)
		r.Post("/datasets/regenerate", a.handleDatasetRegenerate)

		r.Get("/quiz", a.handleQuiz)
		r.Post("/quiz", a.handleQuizSubmit)

		r.Get("/notes", a.handleNotes)
		r.Post("/notes", a.handleNoteCreate)
		r.Post("/notes/{id}/delete", a.handleNoteDelete)
	})
}

// Router exposes the handler for an http.Server.
func (a *App) Router() http.Handler {
	return a.router
}

// rng returns the source a quiz presentation draws from.
func (a *App) rng(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
