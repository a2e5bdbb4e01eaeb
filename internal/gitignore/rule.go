package gitignore

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// ErrRelativeBasePath indicates a rule was compiled against a base path
// that is not absolute. This is a programming error, caught at
// construction time rather than during matching.
var ErrRelativeBasePath = errors.New("base path must be absolute")

// Source locates the origin of a rule for error and debug reporting.
// It has no effect on matching.
type Source struct {
	File string
	Line int
}

// Rule is one compiled ignore directive. A Rule is immutable once
// constructed; its matching behavior is a pure function of the original
// pattern and base path.
type Rule struct {
	// Pattern is the original pattern text, kept for diagnostics.
	Pattern string
	// BasePath is the absolute, slash-separated directory the pattern is
	// interpreted relative to. Lexically normalized, symlink-unaware.
	BasePath string
	// Source records where the rule came from.
	Source Source
	// Negation re-includes paths ignored by an earlier rule.
	Negation bool
	// DirOnly restricts the rule to paths that denote (or could denote)
	// a directory; set by a trailing slash in the source pattern.
	DirOnly bool
	// Anchored restricts matching to start at BasePath instead of any
	// depth; set by a slash anywhere except the final character.
	Anchored bool

	regex *regexp.Regexp
}

// Multi-asterisk runs not delimited by slashes degrade to a single
// asterisk. Two independent substitutions, one per side.
var (
	multiStarLeft  = regexp.MustCompile(`([^/])\*{2,}`)
	multiStarRight = regexp.MustCompile(`\*{2,}([^/])`)
)

// RuleFromPattern compiles one ignore-file line into a Rule.
//
// Blank lines, comments and the no-op pattern "/" yield (nil, nil). The
// pattern language is permissive: no line that survives those checks is
// rejected, however odd. The only error is a non-absolute basePath.
func RuleFromPattern(pattern, basePath string, source Source) (*Rule, error) {
	if !filepath.IsAbs(filepath.FromSlash(basePath)) {
		return nil, fmt.Errorf("gitignore: %w (got %q)", ErrRelativeBasePath, basePath)
	}

	orig := pattern

	if strings.TrimSpace(pattern) == "" || pattern[0] == '#' {
		return nil, nil
	}

	// The bang is consumed before any further parsing; a literal leading
	// bang must be backslash-escaped (unescaped further down).
	negation := false
	if pattern[0] == '!' {
		negation = true
		pattern = pattern[1:]
	}

	pattern = multiStarLeft.ReplaceAllString(pattern, "$1*")
	pattern = multiStarRight.ReplaceAllString(pattern, "*$1")

	// A bare "/" matches nothing.
	if strings.TrimRight(pattern, " \t\n\v\f\r") == "/" {
		return nil, nil
	}

	dirOnly := strings.HasSuffix(pattern, "/")

	// A slash anywhere but the trailing position ties the rule to its
	// base path.
	anchored := false
	if pattern != "" {
		anchored = strings.Contains(pattern[:len(pattern)-1], "/")
	}

	if strings.HasPrefix(pattern, "/") {
		pattern = pattern[1:]
	}

	// A double-star prefix must match at any depth, overriding anchoring.
	if len(pattern) >= 2 && pattern[0] == '*' && pattern[1] == '*' {
		pattern = pattern[2:]
		anchored = false
	}
	if strings.HasPrefix(pattern, "/") {
		pattern = pattern[1:]
	}
	if strings.HasSuffix(pattern, "/") {
		pattern = pattern[:len(pattern)-1]
	}

	// Unescape a leading \# or \! so literal reserved characters are
	// representable.
	if len(pattern) >= 2 && pattern[0] == '\\' && (pattern[1] == '#' || pattern[1] == '!') {
		pattern = pattern[1:]
	}

	pattern = stripTrailingSpaces(pattern)

	rule := &Rule{
		Pattern:  orig,
		BasePath: NormalizePath(basePath),
		Source:   source,
		Negation: negation,
		DirOnly:  dirOnly,
		Anchored: anchored,
	}

	// The translator emits valid syntax for every input, but a compile
	// failure must degrade to a never-matching rule, not an error.
	if re, err := regexp.Compile(translate(pattern, dirOnly, negation, anchored)); err == nil {
		rule.regex = re
	}

	return rule, nil
}

// stripTrailingSpaces removes unescaped trailing spaces one at a time,
// scanning from the end. An escaped space keeps the space, drops the
// backslash, and disables any further stripping for the rest of the scan.
// The first two positions are never subject to stripping.
func stripTrailingSpaces(pattern string) string {
	strip := true
	for i := len(pattern) - 1; i > 1 && pattern[i] == ' '; i-- {
		if pattern[i-1] == '\\' {
			pattern = pattern[:i-1] + pattern[i:]
			i--
			strip = false
		} else if strip {
			pattern = pattern[:i]
		}
	}
	return pattern
}

// Matches reports whether the given path is matched by this rule. The
// path is lexically normalized and taken relative to the rule's BasePath;
// paths outside BasePath never match. A trailing slash on the input marks
// the path as a directory, which negated directory-only rules require.
func (r *Rule) Matches(path string) bool {
	if r.regex == nil {
		return false
	}

	rel, ok := relativeTo(NormalizePath(path), r.BasePath)
	if !ok {
		return false
	}

	// Normalization drops the trailing slash; restore the directory hint
	// where negation semantics depend on it.
	if r.Negation && strings.HasSuffix(path, "/") {
		rel += "/"
	}
	rel = strings.TrimPrefix(rel, "./")

	return r.regex.MatchString(rel)
}

func (r *Rule) String() string {
	return r.Pattern
}
