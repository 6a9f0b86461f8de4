// Package quiz renders one interactive quiz session in the terminal.
// The model owns nothing but presentation state: every quiz-relevant
// key press becomes a session event, and the reducer decides what it
// means.
package quiz

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"mcquiz/internal/export"
	"mcquiz/internal/session"
)

// Model drives a quiz session behind a Bubble Tea program.
type Model struct {
	state     session.State
	table     table.Model
	outputDir string
	userIdx   int
	optionIdx int
	savedPath string
	saveErr   error
	noColor   bool
	width     int
	quitting  bool
}

// Options configures the quiz UI model.
type Options struct {
	NoColor   bool
	OutputDir string
	Output    io.Writer
}

// NewModel constructs a quiz UI model over a prepared session.
func NewModel(state session.State, opts Options) Model {
	t := table.New(
		table.WithColumns(resultColumns()),
		table.WithRows([]table.Row{}),
		table.WithFocused(false),
	)
	t.SetStyles(tableStyles(opts.NoColor))
	return Model{
		state:     state,
		table:     t,
		outputDir: opts.OutputDir,
		optionIdx: -1,
		noColor:   opts.NoColor,
	}
}

// State returns the session snapshot held by the model.
func (m Model) State() session.State {
	return m.state
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update consumes key presses and window size changes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.table.SetWidth(typed.Width)
		m.table.SetHeight(max(typed.Height-8, 1))
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(typed)
	}
	return m, nil
}

func (m Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit
	}
	switch m.state.Phase {
	case session.PhaseNotStarted:
		return m.handleNotStartedKey(key), nil
	case session.PhaseInProgress:
		return m.handleQuestionKey(key), nil
	case session.PhaseFinished:
		return m.handleFinishedKey(key)
	}
	return m, nil
}

// handleNotStartedKey covers the user picker and the start screen.
func (m Model) handleNotStartedKey(key tea.KeyMsg) Model {
	if m.state.User == "" {
		switch key.String() {
		case "up", "k":
			if m.userIdx > 0 {
				m.userIdx--
			}
		case "down", "j":
			if m.userIdx < len(m.state.Users)-1 {
				m.userIdx++
			}
		case "enter":
			if m.userIdx >= 0 && m.userIdx < len(m.state.Users) {
				m.state = session.Apply(m.state, session.SelectUser(m.state.Users[m.userIdx]))
			}
		}
		return m
	}
	if key.String() == "enter" {
		m.state = session.Apply(m.state, session.StartQuiz())
		m.optionIdx = -1
	}
	return m
}

// handleQuestionKey covers answering, skipping, and advancing.
func (m Model) handleQuestionKey(key tea.KeyMsg) Model {
	current, ok := m.state.Current()
	if !ok {
		return m
	}
	if m.state.SubPhase == session.AwaitingAdvance {
		if key.String() == "enter" || key.String() == " " {
			if m.state.Cursor >= len(m.state.Bank)-1 {
				m.state = session.Apply(m.state, session.FinishIfLast())
				m = m.syncResults()
			} else {
				m.state = session.Apply(m.state, session.AdvanceQuestion())
				m.optionIdx = -1
			}
		}
		return m
	}
	if current.Malformed() {
		if key.String() == "s" || key.String() == "enter" {
			m.state = session.Apply(m.state, session.SkipMalformed())
			m.optionIdx = -1
			if m.state.Phase == session.PhaseFinished {
				m = m.syncResults()
			}
		}
		return m
	}
	switch key.String() {
	case "up", "k":
		m = m.moveSelection(current.OptionKeys, -1)
	case "down", "j":
		m = m.moveSelection(current.OptionKeys, 1)
	case "enter":
		m.state = session.Apply(m.state, session.SubmitAnswer())
	default:
		m = m.selectByLetter(current.OptionKeys, key.String())
	}
	return m
}

// handleFinishedKey covers the results screen.
func (m Model) handleFinishedKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "s":
		path, err := export.WriteFile(m.outputDir, m.state.User, m.state.Ledger)
		m.savedPath, m.saveErr = path, err
	case "r":
		m.state = session.Apply(m.state, session.RestartSession())
		m.userIdx = 0
		m.optionIdx = -1
		m.savedPath = ""
		m.saveErr = nil
	case "enter":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// moveSelection shifts the highlighted option and stages it.
func (m Model) moveSelection(keys []string, delta int) Model {
	if len(keys) == 0 {
		return m
	}
	next := m.optionIdx + delta
	if m.optionIdx < 0 {
		next = 0
	}
	if next < 0 {
		next = 0
	}
	if next > len(keys)-1 {
		next = len(keys) - 1
	}
	m.optionIdx = next
	m.state = session.Apply(m.state, session.SelectOption(keys[next]))
	return m
}

// selectByLetter stages an option typed directly by its letter.
func (m Model) selectByLetter(keys []string, pressed string) Model {
	if len(pressed) != 1 {
		return m
	}
	letter := string(pressed[0] &^ 0x20)
	for i, key := range keys {
		if key == letter {
			m.optionIdx = i
			m.state = session.Apply(m.state, session.SelectOption(letter))
			return m
		}
	}
	return m
}

// syncResults populates the ledger table after the session finishes.
func (m Model) syncResults() Model {
	m.table.SetRows(resultRows(m.state))
	return m
}

// Run executes the quiz UI to completion and returns the final session
// state.
func Run(state session.State, opts Options) (session.State, error) {
	model := NewModel(state, opts)
	teaOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Output != nil {
		teaOpts = append(teaOpts, tea.WithOutput(opts.Output))
	}
	program := tea.NewProgram(model, teaOpts...)
	final, err := program.Run()
	if err != nil {
		return state, fmt.Errorf("run quiz ui: %w", err)
	}
	if finalModel, ok := final.(Model); ok {
		return finalModel.State(), nil
	}
	return state, nil
}
