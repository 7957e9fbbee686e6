package quiz

// Choice is the option index a learner picked. Negative values mean the
// question was left unanswered.
type Choice int

// Unanswered marks a question without a selection.
const Unanswered Choice = -1

func (c Choice) Answered() bool { return c >= 0 }

// Entry pairs a presented question with the learner's choice.
type Entry struct {
	Question Question
	Selected Choice
}

// Attempt is one learner's pass through a presented set of questions.
// It is owned by a single session and is not safe for concurrent mutation.
type Attempt struct {
	entries []Entry
}

// NewAttempt starts an attempt with every question unanswered.
func NewAttempt(questions []Question) *Attempt {
	entries := make([]Entry, len(questions))
	for i, q := range questions {
		entries[i] = Entry{Question: q, Selected: Unanswered}
	}
	return &Attempt{entries: entries}
}

// Record stores the choice for the question at position i. It returns false
// when i does not name a presented question.
func (a *Attempt) Record(i int, choice Choice) bool {
	if i < 0 || i >= len(a.entries) {
		return false
	}
	a.entries[i].Selected = choice
	return true
}

// Clear resets the question at position i to unanswered.
func (a *Attempt) Clear(i int) bool {
	return a.Record(i, Unanswered)
}

// Answered counts the questions with a selection.
func (a *Attempt) Answered() int {
	n := 0
	for _, e := range a.entries {
		if e.Selected.Answered() {
			n++
		}
	}
	return n
}

func (a *Attempt) Len() int { return len(a.entries) }

// Entries returns a copy of the attempt's entries.
func (a *Attempt) Entries() []Entry {
	out := make([]Entry, len(a.entries))
	copy(out, a.entries)
	return out
}

// Outcome is everything that survives a finalized attempt.
type Outcome struct {
	Result
	Passed    bool
	Threshold float64
}

// Finalize scores the attempt against threshold.
func (a *Attempt) Finalize(threshold float64) Outcome {
	res := Score(a.entries)
	return Outcome{
		Result:    res,
		Passed:    Pass(res, threshold),
		Threshold: threshold,
	}
}
