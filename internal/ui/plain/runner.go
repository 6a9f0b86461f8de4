// Package plain runs a quiz session over plain line-oriented IO. It is
// the fallback for non-interactive terminals and the surface the
// acceptance tests drive.
package plain

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"mcquiz/internal/export"
	"mcquiz/internal/session"
)

// ErrInputClosed reports that stdin ended before the session finished.
var ErrInputClosed = errors.New("input ended before the quiz finished")

// Options configures a plain runner.
type Options struct {
	Input     io.Reader
	Output    io.Writer
	OutputDir string
}

// Runner executes one quiz session against line-oriented IO.
type Runner struct {
	scanner   *bufio.Scanner
	out       io.Writer
	outputDir string
}

// NewRunner builds a runner over the given IO streams.
func NewRunner(opts Options) *Runner {
	out := opts.Output
	if out == nil {
		out = io.Discard
	}
	return &Runner{
		scanner:   bufio.NewScanner(opts.Input),
		out:       out,
		outputDir: opts.OutputDir,
	}
}

// Run drives the session to completion and returns the final state.
func (r *Runner) Run(state session.State) (session.State, error) {
	if state.User == "" {
		next, err := r.selectUser(state)
		if err != nil {
			return state, err
		}
		state = next
	}
	state = session.Apply(state, session.StartQuiz())
	if state.Phase != session.PhaseInProgress {
		return state, errors.New("quiz could not start")
	}

	for state.Phase == session.PhaseInProgress {
		next, err := r.playQuestion(state)
		if err != nil {
			return state, err
		}
		state = next
	}

	r.printResults(state)
	return r.offerSave(state)
}

// selectUser prints the roster and reads a choice by number or name.
func (r *Runner) selectUser(state session.State) (session.State, error) {
	fmt.Fprintln(r.out, "Select a user:")
	for i, user := range state.Users {
		fmt.Fprintf(r.out, "  %d) %s\n", i+1, user)
	}
	for {
		fmt.Fprint(r.out, "User: ")
		line, err := r.readLine()
		if err != nil {
			return state, err
		}
		choice := resolveUser(state.Users, line)
		if choice == "" {
			fmt.Fprintln(r.out, "Unknown user.")
			continue
		}
		next := session.Apply(state, session.SelectUser(choice))
		if next.User == "" {
			fmt.Fprintln(r.out, "Unknown user.")
			continue
		}
		return next, nil
	}
}

// resolveUser maps a 1-based index or exact name onto the roster.
func resolveUser(users []string, input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}
	if n, err := strconv.Atoi(input); err == nil {
		if n >= 1 && n <= len(users) {
			return users[n-1]
		}
		return ""
	}
	for _, user := range users {
		if user == input {
			return user
		}
	}
	return ""
}

// playQuestion presents one question, grades it, and advances.
func (r *Runner) playQuestion(state session.State) (session.State, error) {
	view, ok := session.CurrentView(state)
	if !ok {
		return state, errors.New("no current question")
	}
	fmt.Fprintf(r.out, "\nQuestion %d/%d | ID: %s | Points: %d | Type: %s | Topic: %s\n",
		view.Index, view.Total, view.ID, view.Points, view.Type, view.Topic)
	fmt.Fprintln(r.out, view.Stem)

	if view.Malformed {
		fmt.Fprintln(r.out, "This question has no options. Skipping.")
		return session.Apply(state, session.SkipMalformed()), nil
	}

	for _, option := range view.Options {
		fmt.Fprintf(r.out, "  %s) %s\n", option.Letter, option.Text)
	}

	for {
		fmt.Fprint(r.out, "Answer: ")
		line, err := r.readLine()
		if err != nil {
			return state, err
		}
		letter := strings.ToUpper(strings.TrimSpace(line))
		staged := session.Apply(state, session.SelectOption(letter))
		if letter == "" || staged.Pending != letter {
			fmt.Fprintln(r.out, "Invalid choice.")
			continue
		}
		state = session.Apply(staged, session.SubmitAnswer())
		break
	}

	view, _ = session.CurrentView(state)
	fmt.Fprintln(r.out, view.Feedback)
	if view.Feedback != session.FeedbackCorrect {
		fmt.Fprintf(r.out, "Correct answer: %s) %s\n", view.Correct, view.CorrectText)
	}
	fmt.Fprintf(r.out, "Explanation: %s\n", view.Explanation)

	if state.Cursor >= len(state.Bank)-1 {
		return session.Apply(state, session.FinishIfLast()), nil
	}
	return session.Apply(state, session.AdvanceQuestion()), nil
}

// printResults renders the ledger and score.
func (r *Runner) printResults(state session.State) {
	fmt.Fprintf(r.out, "\nResults for %s\n", state.User)
	w := tabwriter.NewWriter(r.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Question\tYour Answer\tCorrect Answer\tPoints")
	for _, row := range state.Ledger {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", row.QuestionID, row.StudentAnswer, row.CorrectAnswer, row.PointsEarned)
	}
	w.Flush()
	score := session.ComputeScore(state)
	fmt.Fprintf(r.out, "Score: %d/%d (%.2f%%)\n", score.Earned, score.Max, score.Percent)
}

// offerSave asks whether to export the ledger as CSV.
func (r *Runner) offerSave(state session.State) (session.State, error) {
	fmt.Fprint(r.out, "Save results to CSV? [y/N]: ")
	line, err := r.readLine()
	if err != nil {
		// Finishing without an answer is fine; the session is complete.
		return state, nil
	}
	if answer := strings.ToLower(strings.TrimSpace(line)); answer == "y" || answer == "yes" {
		path, err := export.WriteFile(r.outputDir, state.User, state.Ledger)
		if err != nil {
			return state, fmt.Errorf("save results: %w", err)
		}
		fmt.Fprintf(r.out, "Saved to %s\n", path)
	}
	return state, nil
}

func (r *Runner) readLine() (string, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", ErrInputClosed
	}
	return r.scanner.Text(), nil
}
