package question

import (
	"errors"
	"fmt"
	"os"
	"sync"
)

// ErrNoQuestions indicates that a bank document yielded no usable
// questions. A session must refuse to start in that state.
var ErrNoQuestions = errors.New("no questions available")

// Load reads and parses a bank document from disk. An unreadable path
// or an empty bank is a load failure; per-record problems are returned
// as diagnostics alongside the questions.
func Load(path string) ([]Question, []Diagnostic, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read question bank: %w", err)
	}
	questions, diags := Parse(string(data))
	if len(questions) == 0 {
		return nil, diags, fmt.Errorf("%s: %w", path, ErrNoQuestions)
	}
	return questions, diags, nil
}

// Loader caches parsed banks by source path. Parse is a pure function
// of the document text, so repeat loads reuse the cached result.
type Loader struct {
	mu    sync.Mutex
	cache map[string]loadedBank
}

type loadedBank struct {
	questions []Question
	diags     []Diagnostic
}

// NewLoader returns an empty bank loader.
func NewLoader() *Loader {
	return &Loader{cache: map[string]loadedBank{}}
}

// Load returns the cached bank for path, reading it on first use.
// Load failures are not cached.
func (l *Loader) Load(path string) ([]Question, []Diagnostic, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if entry, ok := l.cache[path]; ok {
		return entry.questions, entry.diags, nil
	}
	questions, diags, err := Load(path)
	if err != nil {
		return nil, diags, err
	}
	if l.cache == nil {
		l.cache = map[string]loadedBank{}
	}
	l.cache[path] = loadedBank{questions: questions, diags: diags}
	return questions, diags, nil
}
