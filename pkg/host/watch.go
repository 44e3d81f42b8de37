package host

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/grovetools/jsonlview/errors"
)

const defaultDebounce = 150 * time.Millisecond

// Watch reports external changes to the document. onChange receives the new
// content once the file has been quiet for the debounce period. Content equal
// to the host's own last write is not reported. Watch blocks until ctx is
// cancelled.
//
// The parent directory is watched rather than the file so that editors which
// save by renaming a temporary file are still seen.
func (h *FileHost) Watch(ctx context.Context, onChange func(text string)) error {
	if err := h.CheckDocument(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to create file watcher")
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(h.path)); err != nil {
		return errors.ReadFailed(h.path, err)
	}

	debounce := h.opts.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	logger := log.WithField("path", h.path)
	logger.Debug("Watching document")

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != h.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debugf("fsnotify event: op=%v", event.Op)
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.WithError(err).Warn("Watcher error")

		case <-timer.C:
			data, err := os.ReadFile(h.path)
			if err != nil {
				// Renamed away; a later Create event brings it back.
				logger.WithError(err).Debug("Document not readable")
				continue
			}
			text := string(data)
			if h.isOwnWrite(text) {
				logger.Debug("Ignoring own write")
				continue
			}
			logger.Info("Document changed on disk")
			onChange(text)

		case <-ctx.Done():
			return nil
		}
	}
}
