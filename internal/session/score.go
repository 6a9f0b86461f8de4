package session

// Score summarizes a session's ledger.
type Score struct {
	Earned  int
	Max     int
	Percent float64
}

// ComputeScore aggregates the ledger. Max possible points are summed
// over the bank entries whose ids appear in the ledger, deduplicated by
// id: attempted questions only, not the whole bank. When every question
// is attempted in order the two definitions coincide, but a
// partial-completion path would diverge, so the attempted-only
// definition is the one that holds.
func ComputeScore(state State) Score {
	earned := 0
	attempted := map[string]struct{}{}
	for _, row := range state.Ledger {
		earned += row.PointsEarned
		attempted[row.QuestionID] = struct{}{}
	}
	max := 0
	for _, record := range state.Bank {
		if _, ok := attempted[record.ID]; ok {
			max += record.Points
		}
	}
	score := Score{Earned: earned, Max: max}
	if max > 0 {
		score.Percent = 100 * float64(earned) / float64(max)
	}
	return score
}
