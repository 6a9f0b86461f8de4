package config

import (
	"strings"

	"mcquiz/internal/spec"
)

// Normalize fills defaults and trims whitespace before validation.
func Normalize(cfg *spec.Config) {
	cfg.Bank = strings.TrimSpace(cfg.Bank)
	if cfg.Bank == "" {
		cfg.Bank = DefaultBank
	}
	cfg.OutputDir = strings.TrimSpace(cfg.OutputDir)
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}
	for i := range cfg.Users {
		cfg.Users[i] = strings.TrimSpace(cfg.Users[i])
	}
}
