package session

import "github.com/google/uuid"

// Apply runs one session event against a state snapshot and returns the
// next snapshot. Events whose preconditions do not hold are no-ops: the
// state comes back unchanged rather than corrupted. The boundary is
// expected to gate events correctly; this is the backstop.
func Apply(state State, event Event) State {
	switch event.Type {
	case EventSelectUser:
		return applySelectUser(state, event.User)
	case EventStartQuiz:
		return applyStartQuiz(state)
	case EventSelectOption:
		return applySelectOption(state, event.Letter)
	case EventSubmitAnswer:
		return applySubmitAnswer(state)
	case EventSkipMalformed:
		return applySkipMalformed(state)
	case EventAdvanceQuestion:
		return applyAdvanceQuestion(state)
	case EventFinishIfLast:
		return applyFinishIfLast(state)
	case EventRestartSession:
		return applyRestartSession(state)
	}
	return state
}

func applySelectUser(state State, name string) State {
	if state.Phase != PhaseNotStarted || !state.AllowedUser(name) {
		return state
	}
	state.User = name
	return state
}

func applyStartQuiz(state State) State {
	if state.Phase != PhaseNotStarted || state.User == "" || len(state.Bank) == 0 {
		return state
	}
	state.ID = uuid.NewString()
	state.Phase = PhaseInProgress
	state.SubPhase = AwaitingAnswer
	state.Cursor = 0
	state.Pending = ""
	state.Feedback = ""
	state.Ledger = nil
	return state
}

func applySelectOption(state State, letter string) State {
	current, ok := state.Current()
	if !ok || state.SubPhase != AwaitingAnswer || !current.HasOption(letter) {
		return state
	}
	state.Pending = letter
	return state
}

func applySubmitAnswer(state State) State {
	current, ok := state.Current()
	if !ok || state.SubPhase != AwaitingAnswer || current.Malformed() {
		return state
	}
	if state.Pending == "" || !current.HasOption(state.Pending) {
		return state
	}
	earned := 0
	feedback := FeedbackIncorrect
	if state.Pending == current.Answer {
		earned = current.Points
		feedback = FeedbackCorrect
	}
	state.Ledger = appendRow(state.Ledger, ResultRow{
		QuestionID:    current.ID,
		StudentAnswer: state.Pending,
		CorrectAnswer: current.Answer,
		PointsEarned:  earned,
	})
	state.Feedback = feedback
	state.SubPhase = AwaitingAdvance
	return state
}

// applySkipMalformed records a zero-option question as skipped and
// advances immediately, bypassing AwaitingAdvance.
func applySkipMalformed(state State) State {
	current, ok := state.Current()
	if !ok || state.SubPhase != AwaitingAnswer || !current.Malformed() {
		return state
	}
	state.Ledger = appendRow(state.Ledger, ResultRow{
		QuestionID:    current.ID,
		StudentAnswer: SkippedAnswer,
		CorrectAnswer: current.Answer,
		PointsEarned:  0,
	})
	state.Cursor++
	state.Pending = ""
	state.Feedback = ""
	if state.Cursor >= len(state.Bank) {
		state.Phase = PhaseFinished
	}
	return state
}

func applyAdvanceQuestion(state State) State {
	if state.Phase != PhaseInProgress || state.SubPhase != AwaitingAdvance {
		return state
	}
	if state.Cursor >= len(state.Bank)-1 {
		return state
	}
	state.Cursor++
	state.Pending = ""
	state.Feedback = ""
	state.SubPhase = AwaitingAnswer
	return state
}

func applyFinishIfLast(state State) State {
	if state.Cursor >= len(state.Bank) {
		state.Phase = PhaseFinished
		return state
	}
	if state.Phase != PhaseInProgress || state.SubPhase != AwaitingAdvance {
		return state
	}
	if state.Cursor == len(state.Bank)-1 {
		state.Phase = PhaseFinished
	}
	return state
}

// applyRestartSession is allowed from any phase and clears everything
// but the bank and the identity list.
func applyRestartSession(state State) State {
	return State{
		ID:    state.ID,
		Bank:  state.Bank,
		Users: state.Users,
	}
}

// appendRow copies before appending so older snapshots never observe
// later ledger writes.
func appendRow(rows []ResultRow, row ResultRow) []ResultRow {
	out := make([]ResultRow, len(rows), len(rows)+1)
	copy(out, rows)
	return append(out, row)
}
