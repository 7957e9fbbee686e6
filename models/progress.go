package models

import (
	"time"

	"github.com/google/uuid"
)

// QuizResult is a finalized quiz attempt as stored in quiz_results
type QuizResult struct {
	ID         uuid.UUID `json:"id" db:"id"`
	LearnerID  uuid.UUID `json:"learner_id" db:"learner_id"`
	QuizKey    string    `json:"quiz_key" db:"quiz_key"`
	Score      int       `json:"score" db:"score"`
	Total      int       `json:"total" db:"total"`
	Percentage float64   `json:"percentage" db:"percentage"`
	Passed     bool      `json:"passed" db:"passed"`
	Threshold  float64   `json:"threshold" db:"threshold"`
	TakenAt    time.Time `json:"taken_at" db:"taken_at"`
}

// Note is a free-text note a learner keeps against a tab
type Note struct {
	ID        uuid.UUID `json:"id" db:"id"`
	LearnerID uuid.UUID `json:"learner_id" db:"learner_id"`
	Tab       string    `json:"tab" db:"tab"`
	Body      string    `json:"body" db:"body"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ProgressSummary aggregates a learner's quiz history
type ProgressSummary struct {
	Attempts       int        `json:"attempts"`
	Passed         int        `json:"passed"`
	BestPercentage float64    `json:"best_percentage"`
	LastTakenAt    *time.Time `json:"last_taken_at,omitempty"`
}
