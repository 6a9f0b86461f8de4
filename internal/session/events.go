package session

// EventType identifies a session event.
type EventType int

const (
	// EventSelectUser stages an identity before the quiz starts.
	EventSelectUser EventType = iota
	// EventStartQuiz begins the walk over the question bank.
	EventStartQuiz
	// EventSelectOption stages a tentative answer; nothing is graded.
	EventSelectOption
	// EventSubmitAnswer grades the pending selection.
	EventSubmitAnswer
	// EventSkipMalformed records an option-less question as skipped.
	EventSkipMalformed
	// EventAdvanceQuestion moves to the next question.
	EventAdvanceQuestion
	// EventFinishIfLast closes the session after the final question.
	EventFinishIfLast
	// EventRestartSession resets everything back to NotStarted.
	EventRestartSession
)

// Event carries a session event payload.
type Event struct {
	Type   EventType
	User   string
	Letter string
}

// SelectUser builds a user-selection event.
func SelectUser(name string) Event {
	return Event{Type: EventSelectUser, User: name}
}

// StartQuiz builds a start event.
func StartQuiz() Event {
	return Event{Type: EventStartQuiz}
}

// SelectOption builds an option-staging event.
func SelectOption(letter string) Event {
	return Event{Type: EventSelectOption, Letter: letter}
}

// SubmitAnswer builds a grading event.
func SubmitAnswer() Event {
	return Event{Type: EventSubmitAnswer}
}

// SkipMalformed builds a skip event for option-less questions.
func SkipMalformed() Event {
	return Event{Type: EventSkipMalformed}
}

// AdvanceQuestion builds an advance event.
func AdvanceQuestion() Event {
	return Event{Type: EventAdvanceQuestion}
}

// FinishIfLast builds a finish event.
func FinishIfLast() Event {
	return Event{Type: EventFinishIfLast}
}

// RestartSession builds a full-reset event.
func RestartSession() Event {
	return Event{Type: EventRestartSession}
}
