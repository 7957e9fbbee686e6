package store

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"time"

	"pbihub/domain/session"
	"pbihub/internal/errors"
	"pbihub/ports"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// SessionRepository keeps a learner row plus a JSON snapshot of the session.
type SessionRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewSessionRepository creates a session store over db
func NewSessionRepository(db *sqlx.DB) ports.SessionStore {
	return &SessionRepository{db: db, now: time.Now}
}

// Save upserts the learner and its session snapshot.
func (r *SessionRepository) Save(ctx context.Context, s session.Session) error {
	state, err := json.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "failed to marshal session")
	}
	now := r.now().UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.DatabaseError("failed to begin session save", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, tx.Rebind(`
		INSERT INTO learners (id, username, accent, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			username = EXCLUDED.username,
			accent = EXCLUDED.accent`),
		s.ID, s.Username, string(s.Accent), now)
	if err != nil {
		return errors.DatabaseError("failed to save learner", err)
	}

	_, err = tx.ExecContext(ctx, tx.Rebind(`
		INSERT INTO session_state (learner_id, state, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (learner_id) DO UPDATE SET
			state = EXCLUDED.state,
			updated_at = EXCLUDED.updated_at`),
		s.ID, string(state), now)
	if err != nil {
		return errors.DatabaseError("failed to save session state", err)
	}

	if err := tx.Commit(); err != nil {
		return errors.DatabaseError("failed to commit session save", err)
	}
	return nil
}

// Get loads a session snapshot.
func (r *SessionRepository) Get(ctx context.Context, id uuid.UUID) (session.Session, error) {
	var state string
	err := r.db.GetContext(ctx, &state, r.db.Rebind(`SELECT state FROM session_state WHERE learner_id = ?`), id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return session.Session{}, errors.NotFound("session " + id.String())
		}
		return session.Session{}, errors.DatabaseError("failed to get session", err)
	}

	var s session.Session
	if err := json.Unmarshal([]byte(state), &s); err != nil {
		return session.Session{}, errors.Wrap(err, "failed to unmarshal session")
	}
	if s.Scores == nil {
		s.Scores = map[string]session.ScoreEntry{}
	}
	return s, nil
}
