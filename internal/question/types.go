package question

// Question is one parsed multiple-choice record from a bank document.
type Question struct {
	ID          string
	Points      int
	Type        string
	Topic       string
	Stem        string
	OptionKeys  []string
	Options     map[string]string
	Answer      string
	Explanation string
}

// HasOption reports whether letter is one of the question's option keys.
func (q Question) HasOption(letter string) bool {
	_, ok := q.Options[letter]
	return ok
}

// Option returns the text of the option stored under letter.
func (q Question) Option(letter string) string {
	return q.Options[letter]
}

// Malformed reports whether the question carries no options at all.
// Malformed questions stay in the bank and are playable only as a skip.
func (q Question) Malformed() bool {
	return len(q.OptionKeys) == 0
}

// Diagnostic describes a non-fatal data-quality problem found while
// parsing. Diagnostics are collected, never raised as errors.
type Diagnostic struct {
	QuestionID string
	Message    string
}

// String renders a diagnostic for logs and the validate command.
func (d Diagnostic) String() string {
	if d.QuestionID == "" {
		return d.Message
	}
	return "question " + d.QuestionID + ": " + d.Message
}
