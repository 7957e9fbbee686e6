package api

import (
	"log"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"pbihub/domain/quiz"
	"pbihub/internal/errors"
	"pbihub/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// QuestionView is a question as shown to a learner: no answer key.
type QuestionView struct {
	Index   int      `json:"index"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

// ScoreRequest is the body of POST /api/quiz/score. Seed and N are the values
// GET /api/quiz/questions presented with; N defaults to the configured quiz
// size.
type ScoreRequest struct {
	SessionID string        `json:"session_id,omitempty"`
	QuizKey   string        `json:"quiz_key,omitempty"`
	Seed      *int64        `json:"seed"`
	N         *int          `json:"n,omitempty"`
	Answers   []quiz.Answer `json:"answers"`
}

// ReviewItem explains one answered question after scoring.
type ReviewItem struct {
	Index        int         `json:"index"`
	Prompt       string      `json:"prompt"`
	Selected     quiz.Choice `json:"selected"`
	CorrectIndex int         `json:"correct_index"`
	Correct      bool        `json:"correct"`
	Explanation  string      `json:"explanation"`
}

// ScoreResponse is the finalized attempt.
type ScoreResponse struct {
	quiz.Result
	Passed    bool         `json:"passed"`
	Threshold float64      `json:"threshold"`
	Review    []ReviewItem `json:"review"`
	Recorded  bool         `json:"recorded"`
}

// handleQuestions presents n questions (QuizSize by default) in a seeded order.
func (h *Handler) handleQuestions(c *gin.Context) {
	n := h.deps.QuizSize
	if raw := c.Query("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, errors.InvalidInputf("n %q is not an integer", raw))
			return
		}
		n = v
	}
	rng, seed, err := h.rng(c)
	if err != nil {
		respondError(c, err)
		return
	}

	indices := h.deps.Bank.PresentIndices(rng, n)
	views := make([]QuestionView, 0, len(indices))
	for _, i := range indices {
		q, err := h.deps.Bank.Question(i)
		if err != nil {
			respondError(c, err)
			return
		}
		views = append(views, QuestionView{Index: i, Prompt: q.Prompt(), Options: q.Options()})
	}

	c.JSON(http.StatusOK, gin.H{
		"seed":      seed,
		"threshold": h.deps.PassThreshold,
		"questions": views,
	})
}

// handleScore scores answers against the quiz the seed presented. Every
// presented question counts toward the total. When a session is named and a
// store is configured the outcome is recorded against it.
func (h *Handler) handleScore(c *gin.Context) {
	var req ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}
	if req.Seed == nil {
		respondError(c, errors.InvalidInput("seed is required"))
		return
	}
	if req.QuizKey == "" {
		req.QuizKey = DefaultQuizKey
	}
	n := h.deps.QuizSize
	if req.N != nil {
		n = *req.N
	}

	presented := h.deps.Bank.PresentIndices(rand.New(rand.NewSource(*req.Seed)), n)
	resp, err := h.score(presented, req.Answers)
	if err != nil {
		respondError(c, err)
		return
	}

	if req.SessionID != "" {
		id, err := uuid.Parse(req.SessionID)
		if err != nil {
			respondError(c, errors.InvalidInputf("session_id %q is not a UUID", req.SessionID))
			return
		}
		if len(presented) < h.deps.Bank.PresentSize(h.deps.QuizSize) {
			respondError(c, errors.InvalidInputf("only full quizzes of %d questions are recorded", h.deps.Bank.PresentSize(h.deps.QuizSize)))
			return
		}
		if err := h.record(c, id, req.QuizKey, resp); err != nil {
			respondError(c, err)
			return
		}
		resp.Recorded = true
	}

	log.Printf("[QuizAPI] scored %d/%d (%.0f%%, passed=%t)", resp.Score, resp.Total, resp.Percentage*100, resp.Passed)
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) score(presented []int, answers []quiz.Answer) (ScoreResponse, error) {
	attempt, err := h.deps.Bank.AttemptOver(presented, answers)
	if err != nil {
		return ScoreResponse{}, err
	}
	outcome := attempt.Finalize(h.deps.PassThreshold)

	// entries follow the presented order
	entries := attempt.Entries()
	review := make([]ReviewItem, 0, len(entries))
	for n, e := range entries {
		review = append(review, ReviewItem{
			Index:        presented[n],
			Prompt:       e.Question.Prompt(),
			Selected:     e.Selected,
			CorrectIndex: e.Question.CorrectIndex(),
			Correct:      e.Question.IsCorrect(e.Selected),
			Explanation:  quiz.Explain(e.Question),
		})
	}

	return ScoreResponse{
		Result:    outcome.Result,
		Passed:    outcome.Passed,
		Threshold: outcome.Threshold,
		Review:    review,
	}, nil
}

func (h *Handler) record(c *gin.Context, id uuid.UUID, quizKey string, resp ScoreResponse) error {
	if h.deps.Sessions == nil || h.deps.Progress == nil {
		return errors.Unavailable("record store is not configured")
	}
	ctx := c.Request.Context()
	s, err := h.deps.Sessions.Get(ctx, id)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	outcome := quiz.Outcome{Result: resp.Result, Passed: resp.Passed, Threshold: resp.Threshold}
	if err := h.deps.Sessions.Save(ctx, s.RecordOutcome(quizKey, outcome, now)); err != nil {
		return err
	}
	return h.deps.Progress.SaveResult(ctx, &models.QuizResult{
		LearnerID:  id,
		QuizKey:    quizKey,
		Score:      resp.Score,
		Total:      resp.Total,
		Percentage: resp.Percentage,
		Passed:     resp.Passed,
		Threshold:  resp.Threshold,
		TakenAt:    now,
	})
}
