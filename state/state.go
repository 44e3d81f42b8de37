// Package state remembers per-document viewer settings between sessions.
package state

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/grovetools/jsonlview/errors"
	"github.com/grovetools/jsonlview/pkg/paths"
)

// FileName is the name of the state file inside the state directory.
const FileName = "documents.yml"

// MaxEntries bounds how many documents are remembered. The least recently
// opened are dropped first.
const MaxEntries = 100

// Entry is what is remembered about one document.
type Entry struct {
	Mode     string    `yaml:"mode,omitempty"`
	Search   string    `yaml:"search,omitempty"`
	LastSeen time.Time `yaml:"last_seen"`
}

// State maps absolute document paths to their entries.
type State map[string]Entry

// DefaultPath returns the state file location, or "" when no state directory
// can be resolved.
func DefaultPath() string {
	dir := paths.StateDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, FileName)
}

// Load reads the state file at path. A missing file is an empty state.
func Load(path string) (State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(State), nil
		}
		return nil, errors.ReadFailed(path, err)
	}

	var s State
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "failed to parse state file").
			WithDetail("path", path)
	}
	if s == nil {
		s = make(State)
	}
	return s, nil
}

// Save writes s to path, creating the parent directory.
func Save(path string, s State) error {
	s.prune(MaxEntries)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WriteFailed(path, err)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to marshal state")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WriteFailed(path, err)
	}
	return nil
}

// Get returns the entry for doc.
func (s State) Get(doc string) (Entry, bool) {
	e, ok := s[key(doc)]
	return e, ok
}

// Put records e for doc and stamps it with the current time.
func (s State) Put(doc string, e Entry) {
	e.LastSeen = time.Now().UTC()
	s[key(doc)] = e
}

// Delete forgets doc.
func (s State) Delete(doc string) {
	delete(s, key(doc))
}

func (s State) prune(limit int) {
	if len(s) <= limit {
		return
	}
	docs := make([]string, 0, len(s))
	for doc := range s {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		return s[docs[i]].LastSeen.After(s[docs[j]].LastSeen)
	})
	for _, doc := range docs[limit:] {
		delete(s, doc)
	}
}

func key(doc string) string {
	if abs, err := filepath.Abs(doc); err == nil {
		return abs
	}
	return doc
}
