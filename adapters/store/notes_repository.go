package store

import (
	"context"
	"strings"
	"time"

	"pbihub/internal/errors"
	"pbihub/models"
	"pbihub/ports"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// MaxNoteLength caps a note body in bytes.
const MaxNoteLength = 4000

// NotesRepository stores learner notes.
type NotesRepository struct {
	db *sqlx.DB
}

// NewNotesRepository creates a notes store over db
func NewNotesRepository(db *sqlx.DB) ports.NotesStore {
	return &NotesRepository{db: db}
}

// SaveNote inserts a note. Empty or oversized bodies are rejected.
func (r *NotesRepository) SaveNote(ctx context.Context, note *models.Note) error {
	note.Body = strings.TrimSpace(note.Body)
	if note.Body == "" {
		return errors.InvalidInput("note body is empty")
	}
	if len(note.Body) > MaxNoteLength {
		return errors.InvalidInputf("note body exceeds %d bytes", MaxNoteLength)
	}
	if note.ID == uuid.Nil {
		note.ID = uuid.New()
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now()
	}
	note.CreatedAt = note.CreatedAt.UTC()

	query, args, err := r.db.BindNamed(`
		INSERT INTO notes (id, learner_id, tab, body, created_at)
		VALUES (:id, :learner_id, :tab, :body, :created_at)`, note)
	if err != nil {
		return errors.Wrap(err, "failed to bind note")
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.DatabaseError("failed to save note", err)
	}
	return nil
}

// ListNotes returns a learner's notes, oldest first.
func (r *NotesRepository) ListNotes(ctx context.Context, learnerID uuid.UUID) ([]models.Note, error) {
	notes := []models.Note{}
	err := r.db.SelectContext(ctx, &notes, r.db.Rebind(`
		SELECT id, learner_id, tab, body, created_at
		FROM notes
		WHERE learner_id = ?
		ORDER BY created_at ASC`), learnerID)
	if err != nil {
		return nil, errors.DatabaseError("failed to list notes", err)
	}
	return notes, nil
}

// DeleteNote removes one of the learner's notes.
func (r *NotesRepository) DeleteNote(ctx context.Context, learnerID, noteID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM notes WHERE id = ? AND learner_id = ?`), noteID, learnerID)
	if err != nil {
		return errors.DatabaseError("failed to delete note", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return errors.NotFound("note " + noteID.String())
	}
	return nil
}
