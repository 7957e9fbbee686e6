package ui

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"pbihub/domain/quiz"
	"pbihub/domain/session"
	"pbihub/internal/errors"
	"pbihub/models"
)

const quizKey = "final"

type presented struct {
	Index   int
	Number  int
	Prompt  string
	Options []string
}

type quizPage struct {
	Seed      int64
	Threshold float64
	Questions []presented
}

type reviewed struct {
	Number      int
	Prompt      string
	Options     []string
	Selected    quiz.Choice
	Correct     int
	IsCorrect   bool
	Explanation string
}

type quizResultPage struct {
	Outcome    quiz.Outcome
	Review     []reviewed
	Unlocked   bool
	Unanswered int
}

// handleQuiz presents a seeded selection of questions. The seed travels with
// the form so the same presentation can be reproduced.
func (a *App) handleQuiz(w http.ResponseWriter, r *http.Request) {
	s := a.visit(r, current(r), session.TabQuiz)
	seed := a.deps.Seed()
	if raw := r.URL.Query().Get("seed"); raw != "" {
		var err error
		if seed, err = strconv.ParseInt(raw, 10, 64); err != nil {
			a.renderError(w, s, errors.InvalidInputf("seed %q is not an integer", raw))
			return
		}
	}

	indices := a.deps.Bank.PresentIndices(a.rng(seed), a.deps.QuizSize)
	page := quizPage{Seed: seed, Threshold: a.deps.PassThreshold}
	for n, i := range indices {
		q, err := a.deps.Bank.Question(i)
		if err != nil {
			a.renderError(w, s, err)
			return
		}
		page.Questions = append(page.Questions, presented{Index: i, Number: n + 1, Prompt: q.Prompt(), Options: q.Options()})
	}
	a.renderTemplate(w, http.StatusOK, "quiz.html", a.newPage(s, "Quiz", page))
}

// answersFrom rebuilds the presented quiz from the posted seed and reads the
// selection for each presented position. Selections for any other position
// are ignored; a presented question without a selection stays unanswered.
func (a *App) answersFrom(r *http.Request) ([]int, []quiz.Answer, error) {
	if err := r.ParseForm(); err != nil {
		return nil, nil, errors.WithCode(errors.CodeInvalidInput, err)
	}
	raw := r.PostForm.Get("seed")
	if raw == "" {
		return nil, nil, errors.InvalidInput("quiz seed is required")
	}
	seed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, nil, errors.InvalidInputf("seed %q is not an integer", raw)
	}

	presented := a.deps.Bank.PresentIndices(a.rng(seed), a.deps.QuizSize)
	var answers []quiz.Answer
	for _, index := range presented {
		values := r.PostForm[fmt.Sprintf("q%d", index)]
		switch {
		case len(values) == 0 || values[0] == "":
			continue
		case len(values) > 1:
			return nil, nil, errors.InvalidInputf("question %d answered twice", index)
		}
		choice, err := strconv.Atoi(values[0])
		if err != nil {
			return nil, nil, errors.InvalidInputf("answer %q is not an option number", values[0])
		}
		answers = append(answers, quiz.Answer{Index: index, Selected: quiz.Choice(choice)})
	}
	return presented, answers, nil
}

// handleQuizSubmit scores the posted answers against the presented quiz and
// records the outcome.
func (a *App) handleQuizSubmit(w http.ResponseWriter, r *http.Request) {
	s := current(r)
	presented, answers, err := a.answersFrom(r)
	if err != nil {
		a.renderError(w, s, err)
		return
	}

	attempt, err := a.deps.Bank.AttemptOver(presented, answers)
	if err != nil {
		a.renderError(w, s, err)
		return
	}
	outcome := attempt.Finalize(a.deps.PassThreshold)

	page := quizResultPage{Outcome: outcome, Unlocked: outcome.Passed && !s.PassedQuiz}
	for n, e := range attempt.Entries() {
		if !e.Selected.Answered() {
			page.Unanswered++
		}
		page.Review = append(page.Review, reviewed{
			Number:      n + 1,
			Prompt:      e.Question.Prompt(),
			Options:     e.Question.Options(),
			Selected:    e.Selected,
			Correct:     e.Question.CorrectIndex(),
			IsCorrect:   e.Question.IsCorrect(e.Selected),
			Explanation: quiz.Explain(e.Question),
		})
	}

	now := time.Now().UTC()
	s = s.RecordOutcome(quizKey, outcome, now)
	if err := a.deps.Sessions.Save(r.Context(), s); err != nil {
		a.renderError(w, s, err)
		return
	}
	if a.deps.Progress != nil {
		err := a.deps.Progress.SaveResult(r.Context(), &models.QuizResult{
			LearnerID:  s.ID,
			QuizKey:    quizKey,
			Score:      outcome.Score,
			Total:      outcome.Total,
			Percentage: outcome.Percentage,
			Passed:     outcome.Passed,
			Threshold:  outcome.Threshold,
			TakenAt:    now,
		})
		if err != nil {
			log.Printf("[UI] failed to record quiz result for %s: %v", s.ID, err)
		}
	}
	log.Printf("[UI] %s scored %d/%d on %s", s.Username, outcome.Score, outcome.Total, quizKey)
	a.renderTemplate(w, http.StatusOK, "quiz_result.html", a.newPage(s, "Quiz results", page))
}
