// Package gitignore implements gitignore-compatible ignore-rule matching.
//
// The package turns one ignore file (or any reader of ignore-pattern lines)
// into an ordered RuleSet whose Ignores method decides, for any path,
// whether that path is ignored. The supported grammar is the gitignore
// pattern language: '*' and '?' bounded by path separators, '**' crossing
// them, character classes, trailing-slash directory-only rules, slash-driven
// anchoring, and last-match-wins '!' negation.
//
// Rule sets are immutable once compiled and safe for concurrent use. The
// only I/O happens in CompileFile; matching is pure string work.
package gitignore

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// CompileFile reads and compiles the ignore file at path.
//
// baseDir is the directory the patterns are interpreted relative to; when
// empty, the parent directory of path is used. A missing or unreadable
// ignore file is reported to the caller, never treated as an empty rule set.
func CompileFile(path, baseDir string) (*RuleSet, error) {
	if baseDir == "" {
		baseDir = filepath.Dir(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gitignore: open %q: %w", path, err)
	}
	defer f.Close()

	rs, err := CompileReader(f, baseDir, path)
	if err != nil {
		return nil, fmt.Errorf("gitignore: compile %q: %w", path, err)
	}

	return rs, nil
}

// CompileReader compiles ignore-pattern lines from r, rooted at baseDir.
// name is used only for rule Source metadata and error reporting.
func CompileReader(r io.Reader, baseDir, name string) (*RuleSet, error) {
	base := NormalizePath(baseDir)

	var rules []Rule
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")

		rule, err := RuleFromPattern(line, base, Source{File: name, Line: lineNo})
		if err != nil {
			return nil, err
		}
		if rule != nil {
			rules = append(rules, *rule)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("gitignore: scan %q: %w", name, err)
	}

	return NewRuleSet(rules), nil
}
