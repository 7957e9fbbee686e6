package store

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"pbihub/internal/errors"
	"pbihub/models"
	"pbihub/ports"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ProgressRepository stores finalized quiz attempts.
type ProgressRepository struct {
	db *sqlx.DB
}

// NewProgressRepository creates a progress store over db
func NewProgressRepository(db *sqlx.DB) ports.ProgressStore {
	return &ProgressRepository{db: db}
}

// SaveResult inserts a result, filling in ID and TakenAt when unset.
// The learner must already exist.
func (r *ProgressRepository) SaveResult(ctx context.Context, result *models.QuizResult) error {
	if result.ID == uuid.Nil {
		result.ID = uuid.New()
	}
	if result.TakenAt.IsZero() {
		result.TakenAt = time.Now()
	}
	result.TakenAt = result.TakenAt.UTC()

	query, args, err := r.db.BindNamed(`
		INSERT INTO quiz_results (id, learner_id, quiz_key, score, total, percentage, passed, threshold, taken_at)
		VALUES (:id, :learner_id, :quiz_key, :score, :total, :percentage, :passed, :threshold, :taken_at)`, result)
	if err != nil {
		return errors.Wrap(err, "failed to bind quiz result")
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.DatabaseError("failed to save quiz result", err)
	}
	return nil
}

// ListResults returns a learner's results, newest first. limit <= 0 means all.
func (r *ProgressRepository) ListResults(ctx context.Context, learnerID uuid.UUID, limit int) ([]models.QuizResult, error) {
	query := `
		SELECT id, learner_id, quiz_key, score, total, percentage, passed, threshold, taken_at
		FROM quiz_results
		WHERE learner_id = ?
		ORDER BY taken_at DESC`
	args := []interface{}{learnerID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	results := []models.QuizResult{}
	if err := r.db.SelectContext(ctx, &results, r.db.Rebind(query), args...); err != nil {
		return nil, errors.DatabaseError("failed to list quiz results", err)
	}
	return results, nil
}

// BestResult returns the highest-scoring attempt at quizKey; ties go to the
// earliest attempt.
func (r *ProgressRepository) BestResult(ctx context.Context, learnerID uuid.UUID, quizKey string) (*models.QuizResult, error) {
	var result models.QuizResult
	err := r.db.GetContext(ctx, &result, r.db.Rebind(`
		SELECT id, learner_id, quiz_key, score, total, percentage, passed, threshold, taken_at
		FROM quiz_results
		WHERE learner_id = ? AND quiz_key = ?
		ORDER BY percentage DESC, taken_at ASC
		LIMIT 1`), learnerID, quizKey)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("quiz result")
		}
		return nil, errors.DatabaseError("failed to get best quiz result", err)
	}
	return &result, nil
}

// Summary aggregates every result of a learner.
func (r *ProgressRepository) Summary(ctx context.Context, learnerID uuid.UUID) (*models.ProgressSummary, error) {
	results, err := r.ListResults(ctx, learnerID, 0)
	if err != nil {
		return nil, err
	}

	summary := &models.ProgressSummary{Attempts: len(results)}
	for i, res := range results {
		if res.Passed {
			summary.Passed++
		}
		if res.Percentage > summary.BestPercentage {
			summary.BestPercentage = res.Percentage
		}
		if i == 0 {
			last := res.TakenAt
			summary.LastTakenAt = &last
		}
	}
	return summary, nil
}
