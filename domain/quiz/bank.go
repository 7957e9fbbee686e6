package quiz

import (
	"math/rand"

	"pbihub/internal/errors"
)

// Bank is the ordered, read-only collection of questions a quiz draws from.
// Duplicate prompts are allowed.
type Bank struct {
	questions []Question
}

// NewBank copies questions into a bank. An empty bank is valid; quizzes drawn
// from it simply have zero questions.
func NewBank(questions []Question) *Bank {
	qs := make([]Question, len(questions))
	copy(qs, questions)
	return &Bank{questions: qs}
}

func (b *Bank) Len() int { return len(b.questions) }

// Question returns the question at position i of the bank.
func (b *Bank) Question(i int) (Question, error) {
	if i < 0 || i >= len(b.questions) {
		return Question{}, errors.NotFound("question")
	}
	return b.questions[i], nil
}

// Questions returns a copy of the bank in order.
func (b *Bank) Questions() []Question {
	out := make([]Question, len(b.questions))
	copy(out, b.questions)
	return out
}

// PresentSize is the number of questions a quiz of n presents. When n is not
// in 1..Len the whole bank is presented.
func (b *Bank) PresentSize(n int) int {
	if n <= 0 || n > len(b.questions) {
		return len(b.questions)
	}
	return n
}

// PresentIndices draws PresentSize(n) distinct bank positions using rng.
func (b *Bank) PresentIndices(rng *rand.Rand, n int) []int {
	perm := rng.Perm(len(b.questions))
	return perm[:b.PresentSize(n)]
}

// Present draws n distinct questions using rng.
func (b *Bank) Present(rng *rand.Rand, n int) []Question {
	idx := b.PresentIndices(rng, n)
	out := make([]Question, len(idx))
	for i, j := range idx {
		out[i] = b.questions[j]
	}
	return out
}

// Answer names a bank question by position together with the chosen option.
type Answer struct {
	Index    int    `json:"index"`
	Selected Choice `json:"selected"`
}

// AttemptOver builds the attempt for exactly the presented positions, in
// order. Answers may only name presented positions, each at most once; a
// presented position without an answer stays unanswered.
func (b *Bank) AttemptOver(presented []int, answers []Answer) (*Attempt, error) {
	slot := make(map[int]int, len(presented))
	questions := make([]Question, 0, len(presented))
	for n, idx := range presented {
		if _, dup := slot[idx]; dup {
			return nil, errors.InvalidInputf("question %d presented twice", idx)
		}
		q, err := b.Question(idx)
		if err != nil {
			return nil, errors.InvalidInputf("question %d is not in the bank", idx)
		}
		slot[idx] = n
		questions = append(questions, q)
	}

	attempt := NewAttempt(questions)
	answered := make(map[int]bool, len(answers))
	for _, a := range answers {
		n, ok := slot[a.Index]
		if !ok {
			return nil, errors.InvalidInputf("question %d was not presented", a.Index)
		}
		if answered[a.Index] {
			return nil, errors.InvalidInputf("question %d answered twice", a.Index)
		}
		answered[a.Index] = true
		attempt.Record(n, a.Selected)
	}
	return attempt, nil
}
