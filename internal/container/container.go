package container

import (
	"context"
	"log"
	"net/http"

	"pbihub/adapters/excel"
	"pbihub/adapters/store"
	"pbihub/domain/quiz"
	"pbihub/domain/sales"
	"pbihub/domain/session"
	"pbihub/internal/api"
	"pbihub/internal/config"
	"pbihub/internal/dataset"
	"pbihub/internal/errors"
	"pbihub/internal/quizbank"
	"pbihub/ports"
	"pbihub/ui"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config

	// Infrastructure
	DB *sqlx.DB

	// Repositories (data access layer)
	Sessions ports.SessionStore
	Progress ports.ProgressStore
	Notes    ports.NotesStore

	// Learning content
	Bank *quiz.Bank
	Data *dataset.Current
}

// New creates a new dependency injection container
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, errors.ConfigInvalid("config cannot be nil")
	}
	return &Container{Config: cfg}, nil
}

// InitWithDatabase initializes the repositories over an open record store
func (c *Container) InitWithDatabase(db *sqlx.DB) error {
	if db == nil {
		return errors.ConfigInvalid("database connection cannot be nil")
	}
	c.DB = db
	c.Sessions = store.NewSessionRepository(db)
	c.Progress = store.NewProgressRepository(db)
	c.Notes = store.NewNotesRepository(db)
	log.Printf("Container initialized with %s record store", db.DriverName())
	return nil
}

// InitContent loads the question bank and the starting dataset. An EXCEL_FILE
// replaces the generated sample.
func (c *Container) InitContent() error {
	if c.Config.Quiz.BankFile != "" {
		bank, err := quizbank.LoadFile(c.Config.Quiz.BankFile)
		if err != nil {
			return errors.Wrapf(err, "failed to load question bank %s", c.Config.Quiz.BankFile)
		}
		c.Bank = bank
		log.Printf("Loaded %d questions from %s", bank.Len(), c.Config.Quiz.BankFile)
	} else {
		c.Bank = quizbank.Default()
	}

	if c.Config.Data.ExcelFile != "" {
		records, err := excel.NewDataReader(c.Config.Data.ExcelFile).ReadFile()
		if err != nil {
			return errors.Wrapf(err, "failed to load dataset %s", c.Config.Data.ExcelFile)
		}
		c.Data = dataset.NewCurrent(records, c.Config.Data.ExcelFile, 0)
		log.Printf("Using Excel data source: %s (%d rows)", c.Config.Data.ExcelFile, len(records))
		return nil
	}

	records, err := sales.Generate(c.Config.Data.Seed, sales.DefaultParams())
	if err != nil {
		return errors.Wrap(err, "failed to generate sample dataset")
	}
	c.Data = dataset.NewCurrent(records, "generated", c.Config.Data.Seed)
	return nil
}

// Handler builds the HTML hub with the JSON API mounted under /api.
func (c *Container) Handler() (http.Handler, error) {
	if c.Bank == nil || c.Data == nil {
		return nil, errors.InternalError("content not initialized")
	}
	gin.SetMode(c.Config.Server.GinMode)

	sessions := c.Sessions
	if sessions == nil {
		log.Printf("No record store configured, keeping sessions in memory")
		sessions = store.NewMemorySessionStore()
	}

	apiHandler := api.NewHandler(api.Deps{
		Bank:          c.Bank,
		Data:          c.Data,
		PassThreshold: c.Config.Quiz.PassThreshold,
		QuizSize:      c.Config.Quiz.Size,
		Sessions:      sessions,
		Progress:      c.Progress,
		Notes:         c.Notes,
	})

	accent, err := session.ParseAccent(c.Config.Learner.DefaultAccent)
	if err != nil {
		log.Printf("Unknown ACCENT %q, using %s", c.Config.Learner.DefaultAccent, accent)
	}

	app, err := ui.NewApp(ui.Deps{
		Bank:            c.Bank,
		Data:            c.Data,
		PassThreshold:   c.Config.Quiz.PassThreshold,
		QuizSize:        c.Config.Quiz.Size,
		Sessions:        sessions,
		Progress:        c.Progress,
		Notes:           c.Notes,
		DefaultUsername: c.Config.Learner.DefaultUsername,
		DefaultAccent:   accent,
		API:             api.NewEngine(apiHandler),
	})
	if err != nil {
		return nil, err
	}
	return app.Router(), nil
}

// Shutdown releases the record store
func (c *Container) Shutdown(ctx context.Context) error {
	if c.DB == nil {
		return nil
	}
	log.Printf("Closing record store")
	return c.DB.Close()
}
