package quiz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mcquiz/internal/session"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	switch m.state.Phase {
	case session.PhaseNotStarted:
		return m.viewNotStarted()
	case session.PhaseInProgress:
		return m.viewQuestion()
	case session.PhaseFinished:
		return m.viewFinished()
	}
	return ""
}

// viewNotStarted renders the user picker and the start screen.
func (m Model) viewNotStarted() string {
	var b strings.Builder
	b.WriteString(renderTitle("Quiz", m.noColor))
	b.WriteString("\n\n")
	if m.state.User == "" {
		b.WriteString("Select a user:\n\n")
		for i, user := range m.state.Users {
			marker := "  "
			line := user
			if i == m.userIdx {
				marker = "> "
				line = stylize(line, m.noColor, lipgloss.Color("33"))
			}
			b.WriteString(marker + line + "\n")
		}
		b.WriteString("\n" + renderHelp("up/down: move | enter: select | q: quit", m.noColor))
		return b.String()
	}
	b.WriteString("User: " + m.state.User + "\n")
	b.WriteString("Questions: " + fmtInt(len(m.state.Bank)) + "\n\n")
	b.WriteString(renderHelp("enter: start quiz | q: quit", m.noColor))
	return b.String()
}

// viewQuestion renders the current question, staged selection, and any
// grading feedback.
func (m Model) viewQuestion() string {
	view, ok := session.CurrentView(m.state)
	if !ok {
		return ""
	}
	var b strings.Builder
	b.WriteString(renderQuestionHeader(view, m.noColor))
	b.WriteString("\n\n")
	b.WriteString(view.Stem)
	b.WriteString("\n\n")

	if view.Malformed {
		b.WriteString(stylize("This question has no options and cannot be answered.", m.noColor, lipgloss.Color("196")))
		b.WriteString("\n\n")
		b.WriteString(renderHelp("s: skip | q: quit", m.noColor))
		return b.String()
	}

	for _, option := range view.Options {
		b.WriteString(renderOption(option, view, m.noColor))
		b.WriteString("\n")
	}

	if view.Answered {
		b.WriteString("\n")
		b.WriteString(renderFeedback(view, m.noColor))
		b.WriteString("\n\n")
		b.WriteString(renderHelp("enter: continue | q: quit", m.noColor))
		return b.String()
	}

	b.WriteString("\n" + renderHelp("up/down or letter: choose | enter: submit | q: quit", m.noColor))
	return b.String()
}

// viewFinished renders the results table, score, and export status.
func (m Model) viewFinished() string {
	score := session.ComputeScore(m.state)
	var b strings.Builder
	b.WriteString(renderTitle("Results for "+m.state.User, m.noColor))
	b.WriteString("\n\n")
	b.WriteString(m.table.View())
	b.WriteString("\n\n")
	b.WriteString(renderScore(score, m.noColor))
	b.WriteString("\n")
	if m.saveErr != nil {
		b.WriteString(stylize("Save failed: "+m.saveErr.Error(), m.noColor, lipgloss.Color("196")) + "\n")
	} else if m.savedPath != "" {
		b.WriteString(stylize("Saved to "+m.savedPath, m.noColor, lipgloss.Color("42")) + "\n")
	}
	b.WriteString("\n" + renderHelp("s: save CSV | r: restart | enter/q: quit", m.noColor))
	return b.String()
}

// renderQuestionHeader renders the position and metadata line.
func renderQuestionHeader(view session.QuestionView, noColor bool) string {
	line := "Question " + fmtInt(view.Index) + "/" + fmtInt(view.Total) +
		" | ID: " + view.ID +
		" | Points: " + fmtInt(view.Points) +
		" | Type: " + view.Type +
		" | Topic: " + view.Topic
	return stylize(line, noColor, lipgloss.Color("242"))
}

// renderOption renders one option row with selection and grading marks.
func renderOption(option session.OptionView, view session.QuestionView, noColor bool) string {
	marker := "  "
	line := option.Letter + ") " + option.Text
	if option.Letter == view.Selected {
		marker = "> "
	}
	if view.Answered {
		switch option.Letter {
		case view.Correct:
			line = stylize(line, noColor, lipgloss.Color("42"))
		case view.Selected:
			line = stylize(line, noColor, lipgloss.Color("196"))
		}
	} else if option.Letter == view.Selected {
		line = stylize(line, noColor, lipgloss.Color("33"))
	}
	return marker + line
}

// renderFeedback renders the grading verdict and explanation block.
func renderFeedback(view session.QuestionView, noColor bool) string {
	color := lipgloss.Color("196")
	if view.Feedback == session.FeedbackCorrect {
		color = lipgloss.Color("42")
	}
	var b strings.Builder
	b.WriteString(stylize(view.Feedback, noColor, color))
	if view.Feedback != session.FeedbackCorrect {
		b.WriteString("\n" + "Correct answer: " + view.Correct + ") " + view.CorrectText)
	}
	b.WriteString("\n" + stylize("Explanation: "+view.Explanation, noColor, lipgloss.Color("244")))
	return b.String()
}

// renderScore renders the final score line.
func renderScore(score session.Score, noColor bool) string {
	line := "Score: " + fmtInt(score.Earned) + "/" + fmtInt(score.Max) +
		" (" + formatPercent(score.Percent) + ")"
	return stylize(line, noColor, lipgloss.Color("33"))
}

// renderTitle renders a screen heading.
func renderTitle(text string, noColor bool) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")).Render(text)
}

// renderHelp renders the key hint line.
func renderHelp(text string, noColor bool) string {
	return stylize(text, noColor, lipgloss.Color("240"))
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
