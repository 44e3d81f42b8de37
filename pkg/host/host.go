// Package host connects a viewer.Controller to a document on disk: it loads
// and writes the file, reaches the system clipboard, launches an editor and
// reports external changes.
package host

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	"github.com/moby/patternmatcher"

	"github.com/grovetools/jsonlview/config"
	"github.com/grovetools/jsonlview/errors"
	"github.com/grovetools/jsonlview/logging"
)

var log = logging.NewLogger("host")

// Options configures a FileHost.
type Options struct {
	// Patterns are the file names accepted as JSONL documents.
	Patterns []string
	// Editor overrides $VISUAL and $EDITOR for OpenAsPlainText.
	Editor string
	// Debounce is the quiet period Watch waits for before reloading.
	Debounce time.Duration
}

// OptionsFromConfig maps the viewer section of cfg to host options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Patterns: cfg.Viewer.FilePatterns,
		Editor:   cfg.Viewer.Editor,
		Debounce: time.Duration(cfg.Viewer.WatchDebounceMS) * time.Millisecond,
	}
}

// FileHost is a viewer.Host backed by a single file.
type FileHost struct {
	path     string
	opts     Options
	patterns *patternmatcher.PatternMatcher

	// Replaceable for tests.
	writeClipboard func(string) error
	runCommand     func(*exec.Cmd) error

	mu          sync.Mutex
	lastWritten string
	wrote       bool
}

// New creates a host for path. An empty path is allowed; every document
// operation then fails with NO_DOCUMENT.
func New(path string, opts Options) (*FileHost, error) {
	if len(opts.Patterns) == 0 {
		opts.Patterns = config.DefaultFilePatterns
	}
	pm, err := patternmatcher.New(opts.Patterns)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid file pattern")
	}
	if path != "" {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}
	return &FileHost{
		path:           path,
		opts:           opts,
		patterns:       pm,
		writeClipboard: clipboard.WriteAll,
		runCommand:     runAttached,
	}, nil
}

// Path returns the absolute path of the document.
func (h *FileHost) Path() string {
	return h.path
}

// CheckDocument verifies that a document is open and that it is a JSONL file.
func (h *FileHost) CheckDocument() error {
	if h.path == "" {
		return errors.NoDocument()
	}
	ok, err := h.patterns.MatchesOrParentMatches(filepath.Base(h.path))
	if err != nil || !ok {
		return errors.WrongFileType(h.path)
	}
	return nil
}

// Load reads the document.
func (h *FileHost) Load() (string, error) {
	if err := h.CheckDocument(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(h.path)
	if err != nil {
		return "", errors.ReadFailed(h.path, err)
	}
	log.WithField("path", h.path).WithField("bytes", len(data)).Debug("Loaded document")
	return string(data), nil
}

// ReplaceDocument overwrites the document with text, keeping its mode. The
// text is written to a temporary file beside the document and renamed over
// it, so a failed write leaves the old content in place.
func (h *FileHost) ReplaceDocument(text string) error {
	if err := h.CheckDocument(); err != nil {
		return err
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(h.path); err == nil {
		mode = info.Mode().Perm()
	}

	h.mu.Lock()
	h.lastWritten = text
	h.wrote = true
	h.mu.Unlock()

	if err := writeFileAtomic(h.path, []byte(text), mode); err != nil {
		return errors.WriteFailed(h.path, err)
	}
	log.WithField("path", h.path).WithField("bytes", len(text)).Info("Wrote document")
	return nil
}

// writeFileAtomic replaces the file path points to. A symlinked document
// keeps its link and the target is replaced.
func writeFileAtomic(path string, data []byte, mode os.FileMode) (err error) {
	if target, evalErr := filepath.EvalSymlinks(path); evalErr == nil {
		path = target
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Chmod(mode); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// CopyToClipboard places text on the system clipboard.
func (h *FileHost) CopyToClipboard(text string) error {
	if err := h.writeClipboard(text); err != nil {
		return errors.ClipboardFailed(err)
	}
	return nil
}

// OpenAsPlainText opens the document in a text editor and waits for it to exit.
func (h *FileHost) OpenAsPlainText() error {
	cmd, err := h.EditorCommand()
	if err != nil {
		return err
	}
	if err := h.runCommand(cmd); err != nil {
		return errors.EditorFailed(cmd.Path, err)
	}
	return nil
}

// EditorCommand builds the editor invocation for the document without
// starting it. The editor comes from Options.Editor, $VISUAL, $EDITOR or vi,
// in that order.
func (h *FileHost) EditorCommand() (*exec.Cmd, error) {
	if h.path == "" {
		return nil, errors.NoDocument()
	}
	editor := h.opts.Editor
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if editor != "" {
			break
		}
		editor = strings.TrimSpace(os.Getenv(env))
	}
	args := strings.Fields(editor)
	if len(args) == 0 {
		args = []string{"vi"}
	}
	args = append(args, h.path)
	return exec.Command(args[0], args[1:]...), nil
}

// isOwnWrite reports whether text is what this host last wrote.
func (h *FileHost) isOwnWrite(text string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.wrote && text == h.lastWritten
}

func runAttached(cmd *exec.Cmd) error {
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
