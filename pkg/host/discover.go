package host

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/moby/patternmatcher"

	"github.com/grovetools/jsonlview/config"
	"github.com/grovetools/jsonlview/errors"
)

// Discover lists the documents under dir whose names match patterns, sorted
// by path. Hidden directories are skipped and maxDepth limits how far below
// dir the walk goes (0 means dir itself only).
func Discover(dir string, patterns []string, maxDepth int) ([]string, error) {
	if len(patterns) == 0 {
		patterns = config.DefaultFilePatterns
	}
	pm, err := patternmatcher.New(patterns)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid file pattern")
	}

	root := filepath.Clean(dir)
	var found []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if d.IsDir() {
			if path == root {
				return nil
			}
			if strings.HasPrefix(d.Name(), ".") || depth(root, path) > maxDepth {
				return filepath.SkipDir
			}
			return nil
		}
		if ok, _ := pm.MatchesOrParentMatches(d.Name()); ok {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.ReadFailed(dir, err)
	}
	sort.Strings(found)
	log.WithField("dir", root).WithField("documents", len(found)).Debug("Discovered documents")
	return found, nil
}

func depth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}
