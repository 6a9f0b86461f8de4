package spec

import "testing"

// TestParseConfigValid verifies valid config parsing succeeds.
func TestParseConfigValid(t *testing.T) {
	data := []byte(`version: 1
bank: "questions/Chapter_2_MC.md"
users:
  - Irena
  - Ljube
  - Zlatko
output_dir: "results"
`)
	cfg, err := ParseConfig(data)
	if err != nil {
		t.Fatalf("expected parse to succeed, got %v", err)
	}
	if cfg.Bank != "questions/Chapter_2_MC.md" {
		t.Fatalf("unexpected bank path: %q", cfg.Bank)
	}
	if len(cfg.Users) != 3 || cfg.Users[0] != "Irena" {
		t.Fatalf("unexpected users: %v", cfg.Users)
	}
}

// TestParseConfigUnknownField verifies unknown fields are rejected.
func TestParseConfigUnknownField(t *testing.T) {
	data := []byte(`version: 1
bank: "questions.md"
unknown: true
`)
	if _, err := ParseConfig(data); err == nil {
		t.Fatalf("expected parse error for unknown field")
	}
}

// TestParseConfigRejectsMultipleDocs verifies multiple YAML docs are rejected.
func TestParseConfigRejectsMultipleDocs(t *testing.T) {
	data := []byte("version: 1\n---\nversion: 1\n")
	if _, err := ParseConfig(data); err == nil {
		t.Fatalf("expected parse error for multiple documents")
	}
}
