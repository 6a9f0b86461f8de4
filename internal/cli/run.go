package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"mcquiz/internal/config"
	"mcquiz/internal/logging"
	"mcquiz/internal/question"
	"mcquiz/internal/session"
	"mcquiz/internal/ui/plain"
	"mcquiz/internal/ui/quiz"
)

// stdin feeds the plain runner; tests substitute a scripted reader.
var stdin io.Reader = os.Stdin

// SetInput replaces the reader behind plain-mode prompts and returns a
// restore func. Acceptance tests use it to script whole sessions.
func SetInput(r io.Reader) func() {
	previous := stdin
	stdin = r
	return func() { stdin = previous }
}

func runRun(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		configPath := fs.String("config", "", "Path to config file (default: search for "+config.ConfigFileName+")")
		user := fs.String("user", "", "Preselect a user from the configured roster")
		uiMode := fs.String("ui", "auto", "UI mode: auto, live, or plain")
		outDir := fs.String("out", "", "Override the results output directory")
		noColor := fs.Bool("no-color", false, "Disable colored output")
		verbose := fs.Bool("verbose", false, "Enable debug logging (forces plain UI)")
		if err := fs.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			return ExitUsage
		}
		if fs.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		logger := logging.New(stderr, *verbose)

		resolvedConfig, err := resolveConfigPath(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to locate config: %v\n", err)
			return ExitError
		}
		cfg, err := config.Load(resolvedConfig)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		baseDir := config.BaseDirFromConfigPath(resolvedConfig)

		bank, diags, err := question.Load(resolvePath(baseDir, cfg.Bank))
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load question bank: %v\n", err)
			return ExitError
		}
		for _, diag := range diags {
			logger.Warn().Str("question_id", diag.QuestionID).Msg(diag.Message)
		}
		logger.Debug().Int("questions", len(bank)).Int("diagnostics", len(diags)).Msg("bank loaded")

		state := session.New(bank, cfg.Users)
		if *user != "" {
			state = session.Apply(state, session.SelectUser(*user))
			if state.User != *user {
				fmt.Fprintf(stderr, "Unknown user %q (configured: %s)\n", *user, strings.Join(cfg.Users, ", "))
				return ExitUsage
			}
		}

		outputDir := resolvePath(baseDir, cfg.OutputDir)
		if *outDir != "" {
			outputDir = *outDir
		}

		decision, err := resolveUIMode(*uiMode, *verbose, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return ExitUsage
		}
		if decision.warning != "" {
			logger.Warn().Msg(decision.warning)
		}

		final, err := runSession(state, decision.useLive, quizRunOptions{
			outputDir: outputDir,
			noColor:   *noColor,
			stdout:    stdout,
		})
		if err != nil {
			fmt.Fprintf(stderr, "Quiz failed: %v\n", err)
			return ExitError
		}
		if final.Phase == session.PhaseFinished {
			score := session.ComputeScore(final)
			logger.Info().
				Str("session_id", final.ID).
				Str("user", final.User).
				Int("earned", score.Earned).
				Int("max", score.Max).
				Msg("session finished")
		}
		return ExitOK
	}
}

type quizRunOptions struct {
	outputDir string
	noColor   bool
	stdout    io.Writer
}

// runSession dispatches to the full-screen UI or the plain runner.
func runSession(state session.State, useLive bool, opts quizRunOptions) (session.State, error) {
	if useLive {
		return quiz.Run(state, quiz.Options{
			NoColor:   opts.noColor,
			OutputDir: opts.outputDir,
			Output:    opts.stdout,
		})
	}
	runner := plain.NewRunner(plain.Options{
		Input:     stdin,
		Output:    opts.stdout,
		OutputDir: opts.outputDir,
	})
	return runner.Run(state)
}

// resolvePath joins a config-relative path onto the config directory.
func resolvePath(baseDir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
