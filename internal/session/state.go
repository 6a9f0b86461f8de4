package session

import (
	"github.com/google/uuid"

	"mcquiz/internal/question"
)

// Phase is the top-level lifecycle of a quiz session.
type Phase int

const (
	// PhaseNotStarted means no quiz is running; a user may be selected.
	PhaseNotStarted Phase = iota
	// PhaseInProgress means the session is walking the question bank.
	PhaseInProgress
	// PhaseFinished is terminal until an explicit restart.
	PhaseFinished
)

// SubPhase tracks whether the current question has been graded yet.
type SubPhase int

const (
	// AwaitingAnswer means the current question accepts a selection.
	AwaitingAnswer SubPhase = iota
	// AwaitingAdvance means the current question is graded and locked.
	AwaitingAdvance
)

// Feedback values surfaced after grading.
const (
	FeedbackCorrect   = "Correct"
	FeedbackIncorrect = "Incorrect Answer"
)

// SkippedAnswer is the ledger sentinel for a question that had no
// options and could only be skipped.
const SkippedAnswer = "SKIPPED (No Options)"

// ResultRow is one graded or skipped question. Rows are append-only.
type ResultRow struct {
	QuestionID    string
	StudentAnswer string
	CorrectAnswer string
	PointsEarned  int
}

// State is the full session snapshot. It is a value: every event
// application returns a new State and never mutates shared data.
type State struct {
	ID       string
	Bank     []question.Question
	Users    []string
	User     string
	Phase    Phase
	SubPhase SubPhase
	Cursor   int
	Pending  string
	Feedback string
	Ledger   []ResultRow
}

// New builds an idle session over a parsed bank and an allowed-user
// list. The bank is held for the session's lifetime and never changes.
func New(bank []question.Question, users []string) State {
	return State{
		ID:    uuid.NewString(),
		Bank:  bank,
		Users: users,
	}
}

// Current returns the question under the cursor.
func (s State) Current() (question.Question, bool) {
	if s.Phase != PhaseInProgress || s.Cursor < 0 || s.Cursor >= len(s.Bank) {
		return question.Question{}, false
	}
	return s.Bank[s.Cursor], true
}

// AllowedUser reports whether name is on the configured identity list.
func (s State) AllowedUser(name string) bool {
	for _, user := range s.Users {
		if user == name {
			return true
		}
	}
	return false
}
