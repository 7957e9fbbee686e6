package quiz

import (
	"strings"

	"pbihub/internal/errors"
)

const (
	MinOptions = 2
	MaxOptions = 5
)

// Question is one multiple-choice item of the quiz bank. Fields are unexported so
// a Question cannot change after NewQuestion has validated it.
type Question struct {
	prompt       string
	options      []string
	correctIndex int
	explanation  string
}

// NewQuestion validates and builds a Question. The options slice is copied.
func NewQuestion(prompt string, options []string, correctIndex int, explanation string) (Question, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return Question{}, errors.InvalidInput("question prompt is required")
	}
	if len(options) < MinOptions || len(options) > MaxOptions {
		return Question{}, errors.InvalidInputf("question %q must have %d to %d options, got %d", prompt, MinOptions, MaxOptions, len(options))
	}
	opts := make([]string, len(options))
	for i, option := range options {
		option = strings.TrimSpace(option)
		if option == "" {
			return Question{}, errors.InvalidInputf("question %q has an empty option at index %d", prompt, i)
		}
		opts[i] = option
	}
	if correctIndex < 0 || correctIndex >= len(opts) {
		return Question{}, errors.InvalidInputf("question %q has correct index %d outside 0..%d", prompt, correctIndex, len(opts)-1)
	}
	return Question{
		prompt:       prompt,
		options:      opts,
		correctIndex: correctIndex,
		explanation:  strings.TrimSpace(explanation),
	}, nil
}

// MustQuestion is NewQuestion for built-in content; it panics on invalid input.
func MustQuestion(prompt string, options []string, correctIndex int, explanation string) Question {
	q, err := NewQuestion(prompt, options, correctIndex, explanation)
	if err != nil {
		panic(err)
	}
	return q
}

func (q Question) Prompt() string { return q.prompt }

// Options returns a copy of the answer options in display order.
func (q Question) Options() []string {
	out := make([]string, len(q.options))
	copy(out, q.options)
	return out
}

func (q Question) CorrectIndex() int { return q.correctIndex }

// IsCorrect reports whether choice selects the correct option. Unanswered and
// out-of-range choices are simply wrong.
func (q Question) IsCorrect(choice Choice) bool {
	return choice.Answered() && int(choice) == q.correctIndex
}

// Explain returns the stored explanation, or "" when none was given.
func Explain(q Question) string {
	return q.explanation
}
