package driver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"globalint/internal/config"
)

// ErrNoSources is returned when a directory holds no analysable .cs file.
var ErrNoSources = errors.New("no C# source files found")

// Discover lists the .cs files of target. A file target is returned as is;
// a directory is walked recursively, honouring the config exclude globs
// relative to it. Hidden directories are skipped.
func Discover(target string, cfg *config.Config) ([]string, error) {
	st, err := os.Stat(target)
	if err != nil {
		return nil, err
	}
	if !st.IsDir() {
		return []string{target}, nil
	}
	if cfg == nil {
		cfg = config.Default()
	}

	var paths []string
	err = filepath.WalkDir(target, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, relErr := filepath.Rel(target, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if rel != "." && (strings.HasPrefix(d.Name(), ".") || cfg.Excluded(rel+"/")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".cs") || cfg.Excluded(rel) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", target, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%s: %w", target, ErrNoSources)
	}
	sort.Strings(paths)
	return paths, nil
}
