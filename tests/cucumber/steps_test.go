package cucumber

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mcquiz/internal/cli"

	"github.com/cucumber/godog"
)

type featureState struct {
	workDir      string
	configPath   string
	previousWD   string
	restoreInput func()
	stdout       bytes.Buffer
	stderr       bytes.Buffer
	exitCode     int
	initialized  bool
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	state := &featureState{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		state.cleanup()
		return ctx, nil
	})

	ctx.Step(`^a workspace with a valid quiz configuration$`, state.aWorkspaceWithValidConfig)
	ctx.Step(`^the config is invalid$`, state.theConfigIsInvalid)
	ctx.Step(`^the question bank has a question with a dangling answer$`, state.theBankHasDanglingAnswer)
	ctx.Step(`^the quiz input is:$`, state.theQuizInputIs)
	ctx.Step(`^I run "([^"]+)"$`, state.iRunCommand)
	ctx.Step(`^the exit code is zero$`, state.theExitCodeIsZero)
	ctx.Step(`^the exit code is non-zero$`, state.theExitCodeIsNonZero)
	ctx.Step(`^the output contains "([^"]+)"$`, state.theOutputContains)
	ctx.Step(`^the error output contains "([^"]+)"$`, state.theErrorOutputContains)
	ctx.Step(`^the output lists these commands:$`, state.theOutputListsCommands)
	ctx.Step(`^the results file "([^"]+)" exists$`, state.theResultsFileExists)
}

func (s *featureState) reset() {
	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = 0
	s.initialized = false
}

func (s *featureState) cleanup() {
	if s.restoreInput != nil {
		s.restoreInput()
		s.restoreInput = nil
	}
	if s.previousWD != "" {
		_ = os.Chdir(s.previousWD)
		s.previousWD = ""
	}
	if s.workDir != "" {
		_ = os.RemoveAll(s.workDir)
		s.workDir = ""
	}
}

func (s *featureState) aWorkspaceWithValidConfig() error {
	if s.initialized {
		return nil
	}
	dir, err := os.MkdirTemp("", "mcquiz-feature-*")
	if err != nil {
		return fmt.Errorf("create temp workspace: %w", err)
	}
	s.workDir = dir
	s.configPath = filepath.Join(dir, ".mcquiz.yml")

	if err := s.writeConfig(validConfigYAML()); err != nil {
		return err
	}
	if err := s.writeBank(validBank()); err != nil {
		return err
	}
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working dir: %w", err)
	}
	s.previousWD = wd
	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("chdir: %w", err)
	}
	s.initialized = true
	return nil
}

func (s *featureState) theConfigIsInvalid() error {
	return s.writeConfig(invalidConfigYAML())
}

func (s *featureState) theBankHasDanglingAnswer() error {
	return s.writeBank(validBank() + `
Problem: 3
Points: 1
Question: Which letter is missing?
A) only
Answer: Z
`)
}

func (s *featureState) theQuizInputIs(script *godog.DocString) error {
	s.restoreInput = cli.SetInput(strings.NewReader(script.Content + "\n"))
	return nil
}

func (s *featureState) iRunCommand(command string) error {
	args := strings.Fields(command)
	if len(args) == 0 {
		return fmt.Errorf("command is empty")
	}
	if args[0] == "mcquiz" {
		args = args[1:]
	}
	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = cli.Run(args, &s.stdout, &s.stderr)
	return nil
}

func (s *featureState) theExitCodeIsZero() error {
	if s.exitCode != 0 {
		return fmt.Errorf("expected exit code 0, got %d\nstderr: %s", s.exitCode, s.stderr.String())
	}
	return nil
}

func (s *featureState) theExitCodeIsNonZero() error {
	if s.exitCode == 0 {
		return fmt.Errorf("expected non-zero exit code")
	}
	return nil
}

func (s *featureState) theOutputContains(text string) error {
	if !strings.Contains(s.stdout.String(), text) {
		return fmt.Errorf("expected %q in output:\n%s", text, s.stdout.String())
	}
	return nil
}

func (s *featureState) theErrorOutputContains(text string) error {
	if !strings.Contains(s.stderr.String(), text) {
		return fmt.Errorf("expected %q in error output:\n%s", text, s.stderr.String())
	}
	return nil
}

func (s *featureState) theOutputListsCommands(table *godog.Table) error {
	output := s.stdout.String()
	for _, row := range table.Rows {
		for _, cell := range row.Cells {
			command := strings.TrimSpace(cell.Value)
			if command == "" {
				continue
			}
			if !strings.Contains(output, command) {
				return fmt.Errorf("expected command %q in output", command)
			}
		}
	}
	return nil
}

func (s *featureState) theResultsFileExists(name string) error {
	path := filepath.Join(s.workDir, "results", name)
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("expected results file %s: %w", path, err)
	}
	return nil
}

func (s *featureState) writeConfig(contents string) error {
	if s.configPath == "" {
		return fmt.Errorf("config path is not set")
	}
	if err := os.WriteFile(s.configPath, []byte(contents), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (s *featureState) writeBank(contents string) error {
	if s.workDir == "" {
		return fmt.Errorf("workspace is not set")
	}
	path := filepath.Join(s.workDir, "questions.md")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		return fmt.Errorf("write bank: %w", err)
	}
	return nil
}

func validConfigYAML() string {
	return `version: 1
bank: questions.md
users: [Irena, Ljube, Zlatko]
output_dir: results
`
}

func invalidConfigYAML() string {
	return `version: 2
bank: questions.md
users: [Irena, Ljube, Zlatko]
output_dir: results
`
}

func validBank() string {
	return `Problem: 1
Points: 10
Question: Pick the first letter.
A) first
B) second
Answer: A

Problem: 2
Points: 5
Question: Pick the third letter.
A) one
B) two
C) three
Answer: C
`
}
