package session

// OptionView is one selectable answer in display order.
type OptionView struct {
	Letter string
	Text   string
}

// QuestionView is the renderable snapshot of the current question. The
// correct answer and explanation are only populated once the question
// has been graded.
type QuestionView struct {
	Index       int
	Total       int
	ID          string
	Points      int
	Type        string
	Topic       string
	Stem        string
	Options     []OptionView
	Malformed   bool
	Selected    string
	Answered    bool
	Feedback    string
	Correct     string
	CorrectText string
	Explanation string
}

// metadataFallback mirrors how absent Type/Topic fields are displayed.
const metadataFallback = "N/A"

// explanationFallback is shown when a record carries no explanation.
const explanationFallback = "No explanation provided."

// CurrentView builds the question view for the cursor position.
func CurrentView(state State) (QuestionView, bool) {
	current, ok := state.Current()
	if !ok {
		return QuestionView{}, false
	}
	view := QuestionView{
		Index:     state.Cursor + 1,
		Total:     len(state.Bank),
		ID:        current.ID,
		Points:    current.Points,
		Type:      orFallback(current.Type, metadataFallback),
		Topic:     orFallback(current.Topic, metadataFallback),
		Stem:      current.Stem,
		Malformed: current.Malformed(),
		Selected:  state.Pending,
	}
	for _, letter := range current.OptionKeys {
		view.Options = append(view.Options, OptionView{Letter: letter, Text: current.Option(letter)})
	}
	if state.SubPhase == AwaitingAdvance {
		view.Answered = true
		view.Feedback = state.Feedback
		view.Correct = current.Answer
		view.CorrectText = orFallback(current.Option(current.Answer), metadataFallback)
		view.Explanation = orFallback(current.Explanation, explanationFallback)
	}
	return view, true
}

func orFallback(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
