package quiz

// Result is the score of a set of answered entries.
type Result struct {
	Score      int     `json:"score"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// Score counts the entries whose selection matches the correct option.
// Percentage is Score/Total, or 0 when nothing was presented.
func Score(entries []Entry) Result {
	res := Result{Total: len(entries)}
	for _, e := range entries {
		if e.Question.IsCorrect(e.Selected) {
			res.Score++
		}
	}
	if res.Total > 0 {
		res.Percentage = float64(res.Score) / float64(res.Total)
	}
	return res
}

// Pass reports whether the result reaches threshold, a fraction in [0, 1].
// An empty quiz never passes a positive threshold.
func Pass(res Result, threshold float64) bool {
	if res.Total == 0 && threshold > 0 {
		return false
	}
	return res.Percentage >= threshold
}
