package ports

import (
	"context"

	"pbihub/domain/session"
	"pbihub/models"

	"github.com/google/uuid"
)

// SessionStore persists hub sessions between requests
type SessionStore interface {
	// Save upserts the learner row and the session snapshot
	Save(ctx context.Context, s session.Session) error

	// Get returns the stored session, or a NOT_FOUND error
	Get(ctx context.Context, id uuid.UUID) (session.Session, error)
}

// ProgressStore records finalized quiz attempts
type ProgressStore interface {
	SaveResult(ctx context.Context, result *models.QuizResult) error
	ListResults(ctx context.Context, learnerID uuid.UUID, limit int) ([]models.QuizResult, error)
	BestResult(ctx context.Context, learnerID uuid.UUID, quizKey string) (*models.QuizResult, error)
	Summary(ctx context.Context, learnerID uuid.UUID) (*models.ProgressSummary, error)
}

// NotesStore keeps learner notes
type NotesStore interface {
	SaveNote(ctx context.Context, note *models.Note) error
	ListNotes(ctx context.Context, learnerID uuid.UUID) ([]models.Note, error)
	DeleteNote(ctx context.Context, learnerID, noteID uuid.UUID) error
}
