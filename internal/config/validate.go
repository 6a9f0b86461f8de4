package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mcquiz/internal/spec"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

// Validate checks a config for correctness and referenced files.
// The user list is the closed set of identities allowed to take a quiz.
func Validate(cfg *spec.Config, baseDir string) error {
	var issues []Issue
	add := func(field, message string) {
		issues = append(issues, Issue{Field: field, Message: message})
	}

	if cfg.Version == 0 {
		add("version", "is required")
	} else if cfg.Version != 1 {
		add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}

	if baseDir == "" {
		baseDir = "."
	}

	if cfg.Bank == "" {
		add("bank", "is required")
	} else {
		bankPath := cfg.Bank
		if !filepath.IsAbs(bankPath) {
			bankPath = filepath.Join(baseDir, bankPath)
		}
		info, err := os.Stat(bankPath)
		if err != nil {
			add("bank", fmt.Sprintf("question bank not found at %q", cfg.Bank))
		} else if info.IsDir() {
			add("bank", fmt.Sprintf("path %q is a directory", cfg.Bank))
		}
	}

	if len(cfg.Users) == 0 {
		add("users", "at least one user is required")
	}
	seen := map[string]struct{}{}
	for i, user := range cfg.Users {
		if user == "" {
			add(fmt.Sprintf("users[%d]", i), "is required")
			continue
		}
		if _, exists := seen[user]; exists {
			add("users", fmt.Sprintf("duplicate user %q", user))
			continue
		}
		seen[user] = struct{}{}
	}

	if cfg.OutputDir == "" {
		add("output_dir", "is required")
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}
