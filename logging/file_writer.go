package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/grovetools/jsonlview/pkg/paths"
)

// fileWriter is an io.WriteCloser that opens its log file on first write.
// Without a fixed path it writes to <logs dir>/<component>-<date>.log and
// moves to a new file when the date changes.
type fileWriter struct {
	mu        sync.Mutex
	component string
	fixedPath string
	now       func() time.Time

	currentPath string
	writer      io.WriteCloser
}

// newFileWriter creates a writer for the given component. An empty path
// selects the dated default under paths.LogsDir.
func newFileWriter(component, path string) *fileWriter {
	return &fileWriter{
		component: component,
		fixedPath: path,
		now:       time.Now,
	}
}

// Write implements the io.Writer interface.
func (w *fileWriter) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	writer, err := w.getWriter()
	if err != nil {
		// Entries are dropped while the file cannot be opened.
		return len(p), nil
	}

	return writer.Write(p)
}

// Close implements the io.Closer interface.
func (w *fileWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.writer != nil {
		err := w.writer.Close()
		w.writer = nil
		return err
	}
	return nil
}

// Path returns the file the next write goes to, or "" when no log directory
// can be determined.
func (w *fileWriter) Path() string {
	if w.fixedPath != "" {
		return w.fixedPath
	}
	dir := paths.LogsDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, fmt.Sprintf("%s-%s.log", w.component, w.now().Format("2006-01-02")))
}

func (w *fileWriter) getWriter() (io.WriteCloser, error) {
	path := w.Path()
	if path == "" {
		return nil, fmt.Errorf("no log directory")
	}

	if w.writer != nil && path != w.currentPath {
		w.writer.Close()
		w.writer = nil
	}

	if w.writer == nil {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		w.writer = file
		w.currentPath = path
	}

	return w.writer, nil
}
