package walker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zware/FawltyDeps/internal/extract"
)

// Walk traverses the given roots and classifies every regular file it
// finds as Python code, a dependency declaration, or neither. Roots
// may be directories or single files; a file given directly is always
// collected, bypassing the ignore predicate. Duplicate paths reached
// via overlapping roots are collected once.
func Walk(roots []string, opts ...Option) (*Result, error) {
	startTime := time.Now()

	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	result := &Result{}
	tracker := NewSkippedTracker(16)
	seen := make(map[string]struct{})

	for _, root := range roots {
		absRoot, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("walker: failed to get absolute path for %q: %w", root, err)
		}

		info, err := os.Stat(absRoot)
		if err != nil {
			return nil, fmt.Errorf("walker: stat %q: %w", root, err)
		}

		if !info.IsDir() {
			options.Logger.Debug("Walker: Root %q is a file, collecting directly", root)
			classify(absRoot, result, seen)
			continue
		}

		if err := walkDir(absRoot, options, result, tracker, seen); err != nil {
			return nil, err
		}
	}

	result.Skipped = tracker.Items()
	options.Logger.Debug("Walker: Collected %d code files, %d dep files in %s",
		len(result.CodeFiles), len(result.DepFiles), time.Since(startTime))
	return result, nil
}

func walkDir(absRoot string, options WalkOptions, result *Result, tracker *SkippedTracker, seen map[string]struct{}) error {
	options.Logger.Debug("Walker: Walking %q", absRoot)

	return filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-options.Context.Done():
			return options.Context.Err()
		default:
		}

		isDir := d != nil && d.IsDir()

		if err != nil {
			reason := ReasonSkippedWalkError
			if os.IsPermission(err) {
				reason = ReasonSkippedPermError
			}
			options.Logger.Error("Walker: Error at %q: %v", path, err)
			tracker.Track(path, reason, isDir)
			if isDir && reason == ReasonSkippedPermError {
				return filepath.SkipDir
			}
			return nil
		}

		if path == absRoot {
			return nil
		}

		absPath := filepath.ToSlash(path)
		if options.Ignore != nil && options.Ignore(absPath, isDir) {
			options.Logger.Debug("Walker: Excluded %q by ignore rules", path)
			tracker.Track(path, ReasonExcludedRule, isDir)
			if isDir {
				return filepath.SkipDir
			}
			return nil
		}

		if isDir {
			return nil
		}

		classify(path, result, seen)
		return nil
	})
}

// classify routes a file into the code and dep lists by name. A
// setup.py is both Python code and a dependency declaration. Files
// that are neither are simply not collected.
func classify(path string, result *Result, seen map[string]struct{}) {
	if _, dup := seen[path]; dup {
		return
	}
	seen[path] = struct{}{}

	base := filepath.Base(path)
	if strings.HasSuffix(base, ".py") {
		result.CodeFiles = append(result.CodeFiles, path)
	}
	if extract.IsDepFile(base) {
		result.DepFiles = append(result.DepFiles, path)
	}
}
