package gitignore

import (
	"errors"
	"testing"
)

const testBase = "/home/project"

func mustRule(t *testing.T, pattern string) *Rule {
	t.Helper()
	r, err := RuleFromPattern(pattern, testBase, Source{File: ".gitignore", Line: 1})
	if err != nil {
		t.Fatalf("RuleFromPattern(%q): %v", pattern, err)
	}
	if r == nil {
		t.Fatalf("RuleFromPattern(%q): unexpected nil rule", pattern)
	}
	return r
}

func TestRuleFromPatternVoidLines(t *testing.T) {
	t.Parallel()

	for _, pattern := range []string{"", "   ", "\t", "# comment", "#", "/", "/   "} {
		r, err := RuleFromPattern(pattern, testBase, Source{})
		if err != nil {
			t.Fatalf("RuleFromPattern(%q): %v", pattern, err)
		}
		if r != nil {
			t.Errorf("RuleFromPattern(%q) = %v, want nil", pattern, r)
		}
	}
}

func TestRuleFromPatternRelativeBasePath(t *testing.T) {
	t.Parallel()

	for _, base := range []string{"", "relative/dir", "./here"} {
		_, err := RuleFromPattern("*.log", base, Source{})
		if !errors.Is(err, ErrRelativeBasePath) {
			t.Errorf("base %q: err = %v, want ErrRelativeBasePath", base, err)
		}
	}
}

func TestRuleFromPatternFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pattern  string
		negation bool
		dirOnly  bool
		anchored bool
	}{
		{"*.pyc", false, false, false},
		{"!keep.log", true, false, false},
		{"build/", false, true, false},
		{"/root.txt", false, false, true},
		{"doc/frotz", false, false, true},
		{"doc/frotz/", false, true, true},
		{"**/foo", false, false, false},
		{"**/foo/bar", false, false, false},
		{"a/**/b", false, false, true},
		{"!important/", true, true, false},
	}
	for _, tt := range tests {
		r := mustRule(t, tt.pattern)
		if r.Negation != tt.negation || r.DirOnly != tt.dirOnly || r.Anchored != tt.anchored {
			t.Errorf("flags(%q) = negation:%v dirOnly:%v anchored:%v, want %v %v %v",
				tt.pattern, r.Negation, r.DirOnly, r.Anchored,
				tt.negation, tt.dirOnly, tt.anchored)
		}
		if r.Pattern != tt.pattern {
			t.Errorf("Pattern round-trip: got %q, want %q", r.Pattern, tt.pattern)
		}
	}
}

func TestRuleMatches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		// Unanchored patterns match at any depth.
		{"*.pyc", "a/b/c.pyc", true},
		{"*.pyc", "c.pyc", true},
		{"*.pyc", "c.pyc.txt", false},
		{"frotz", "doc/frotz", true},

		// Single star never crosses a separator.
		{"a*c", "abc", true},
		{"a*c", "a/c", false},
		{"?at", "cat", true},
		{"?at", "c/t", false},

		// Double star crosses segments when slash-delimited.
		{"a/**/b", "a/b", true},
		{"a/**/b", "a/x/b", true},
		{"a/**/b", "a/x/y/b", true},
		{"a/**/b", "x/a/b", false},
		{"foo/**", "foo/bar/baz", true},
		{"**/foo", "deep/down/foo", true},
		{"**/foo", "foo", true},

		// Multi-star runs outside **-context degrade to single star.
		{"a***b", "ab", true},
		{"a***b", "axyzb", true},
		{"a***b", "a/b", false},

		// Anchoring.
		{"/root.txt", "root.txt", true},
		{"/root.txt", "sub/root.txt", false},
		{"doc/frotz", "doc/frotz", true},
		{"doc/frotz", "sub/doc/frotz", false},

		// Directory-only rules match everything below the directory.
		{"build/", "build/x.txt", true},
		{"build/", "src/build/x.txt", true},
		{"build/", "buildx/x.txt", false},
		{"/build/", "src/build/x.txt", false},

		// Character classes, with '!' negation.
		{"*.py[cod]", "x.pyc", true},
		{"*.py[cod]", "x.pyo", true},
		{"*.py[cod]", "x.pyd", true},
		{"*.py[cod]", "x.pyx", false},
		{"a[!bc]d", "axd", true},
		{"a[!bc]d", "abd", false},
		{"a[!bc]d", "acd", false},
		{"a[0-9]b", "a5b", true},
		{"a[0-9]b", "axb", false},

		// Unterminated class is a literal bracket.
		{"a[b", "a[b", true},
		{"a[b", "ab", false},

		// Escaped reserved leading characters.
		{`\#literal`, "#literal", true},
		{`\!bang`, "!bang", true},

		// Trailing spaces: unescaped stripped, escaped preserved.
		{"name   ", "name", true},
		{`name\ `, "name ", true},
		{`name\ `, "name", false},
	}
	for _, tt := range tests {
		r := mustRule(t, tt.pattern)
		got := r.Matches(testBase + "/" + tt.path)
		if got != tt.want {
			t.Errorf("rule %q Matches(%q) = %v, want %v", tt.pattern, tt.path, got, tt.want)
		}
	}
}

func TestRuleMatchesOutsideBasePath(t *testing.T) {
	t.Parallel()

	r := mustRule(t, "*.log")
	if r.Matches("/elsewhere/app.log") {
		t.Error("path outside base path must never match")
	}
	if !r.Matches(testBase + "/app.log") {
		t.Error("path under base path should match")
	}
}

func TestRuleMatchesNormalizesLexically(t *testing.T) {
	t.Parallel()

	r := mustRule(t, "*.log")
	for _, p := range []string{
		testBase + "//sub//app.log",
		testBase + "/sub/./app.log",
		testBase + "/sub/extra/../app.log",
	} {
		if !r.Matches(p) {
			t.Errorf("Matches(%q) = false, want true after normalization", p)
		}
	}
}

func TestDirectoryOnlyNegationNeedsDirectoryHint(t *testing.T) {
	t.Parallel()

	// Re-including a directory-only ignore requires the query to denote a
	// directory with a trailing slash.
	r := mustRule(t, "!build/")
	if r.Matches(testBase + "/build") {
		t.Error("negated dir-only rule must not match a plain path")
	}
	if !r.Matches(testBase + "/build/") {
		t.Error("negated dir-only rule must match an explicit directory path")
	}
}

func TestRuleImmutableMetadata(t *testing.T) {
	t.Parallel()

	src := Source{File: "some/.gitignore", Line: 42}
	r, err := RuleFromPattern("*.tmp", testBase, src)
	if err != nil {
		t.Fatalf("RuleFromPattern: %v", err)
	}
	if r.Source != src {
		t.Errorf("Source = %+v, want %+v", r.Source, src)
	}
	if r.String() != "*.tmp" {
		t.Errorf("String() = %q, want %q", r.String(), "*.tmp")
	}
	if r.BasePath != testBase {
		t.Errorf("BasePath = %q, want %q", r.BasePath, testBase)
	}
}

func TestDegenerateEmptyResidualPatterns(t *testing.T) {
	t.Parallel()

	// These reduce to an empty working pattern; compiling must not panic
	// and the resulting rules must not match ordinary paths.
	for _, pattern := range []string{"!", "//", "**", "! "} {
		r, err := RuleFromPattern(pattern, testBase, Source{})
		if err != nil {
			t.Fatalf("RuleFromPattern(%q): %v", pattern, err)
		}
		if r == nil {
			continue
		}
		if r.Matches(testBase + "/ordinary.txt") {
			t.Errorf("degenerate rule %q matched an ordinary path", pattern)
		}
	}
}
