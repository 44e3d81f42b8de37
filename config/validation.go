package config

import (
	"fmt"

	"github.com/moby/patternmatcher"

	"github.com/grovetools/jsonlview/errors"
)

// Validate checks semantic constraints the schema cannot express.
func (c *Config) Validate() error {
	if c.Viewer.BatchSize < 0 {
		return errors.New(errors.ErrCodeConfigValidation, "viewer.batch_size must be positive").
			WithDetail("batch_size", c.Viewer.BatchSize)
	}
	if c.Viewer.PreviewLimit < 0 {
		return errors.New(errors.ErrCodeConfigValidation, "viewer.preview_limit must be positive").
			WithDetail("preview_limit", c.Viewer.PreviewLimit)
	}
	if c.Viewer.WatchDebounceMS < 0 {
		return errors.New(errors.ErrCodeConfigValidation, "viewer.watch_debounce_ms cannot be negative").
			WithDetail("watch_debounce_ms", c.Viewer.WatchDebounceMS)
	}

	switch c.Viewer.DefaultView {
	case "", "structured", "raw":
	default:
		return errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("unknown default_view '%s' (want structured or raw)", c.Viewer.DefaultView)).
			WithDetail("default_view", c.Viewer.DefaultView)
	}

	if len(c.Viewer.FilePatterns) > 0 {
		if _, err := patternmatcher.New(c.Viewer.FilePatterns); err != nil {
			return errors.Wrap(err, errors.ErrCodeConfigValidation, "invalid viewer.file_patterns").
				WithDetail("file_patterns", c.Viewer.FilePatterns)
		}
	}

	return nil
}
