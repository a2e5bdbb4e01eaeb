package walker

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/zware/FawltyDeps/internal/gitignore"
)

// writeTree creates the given files (with trivial content) under a
// fresh temp dir and returns its path.
func writeTree(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir for %s: %v", f, err)
		}
		if err := os.WriteFile(path, []byte("x\n"), 0o644); err != nil {
			t.Fatalf("write %s: %v", f, err)
		}
	}
	return root
}

// relPaths converts absolute collected paths back to slash-separated
// paths relative to root, sorted.
func relPaths(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			t.Fatalf("rel %s: %v", p, err)
		}
		out = append(out, filepath.ToSlash(rel))
	}
	sort.Strings(out)
	return out
}

func TestWalkClassifiesFiles(t *testing.T) {
	root := writeTree(t,
		"main.py",
		"src/util.py",
		"requirements.txt",
		"sub/setup.py",
		"sub/pyproject.toml",
		"README.md",
		"data.csv",
	)

	result, err := Walk([]string{root})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	wantCode := []string{"main.py", "src/util.py", "sub/setup.py"}
	if got := relPaths(t, root, result.CodeFiles); !equal(got, wantCode) {
		t.Errorf("CodeFiles = %v, want %v", got, wantCode)
	}
	// setup.py counts as both code and a dependency declaration.
	wantDeps := []string{"requirements.txt", "sub/pyproject.toml", "sub/setup.py"}
	if got := relPaths(t, root, result.DepFiles); !equal(got, wantDeps) {
		t.Errorf("DepFiles = %v, want %v", got, wantDeps)
	}
}

func TestWalkIgnorePredicatePrunes(t *testing.T) {
	root := writeTree(t,
		"keep.py",
		"build/generated.py",
		"build/requirements.txt",
		"src/skip.py",
	)

	rules, err := gitignore.CompileReader(
		strings.NewReader("build/\nskip.py\n"), root, "rules")
	if err != nil {
		t.Fatalf("compiling rules: %v", err)
	}

	result, err := Walk([]string{root}, WithIgnore(func(absPath string, isDir bool) bool {
		if isDir {
			absPath += "/"
		}
		return rules.Ignores(absPath)
	}))
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	if got := relPaths(t, root, result.CodeFiles); !equal(got, []string{"keep.py"}) {
		t.Errorf("CodeFiles = %v, want [keep.py]", got)
	}
	if len(result.DepFiles) != 0 {
		t.Errorf("DepFiles = %v, want none", result.DepFiles)
	}

	var excluded int
	for _, item := range result.Skipped {
		if item.Reason == ReasonExcludedRule {
			excluded++
		}
	}
	// build/ is pruned as one directory, skip.py as one file.
	if excluded != 2 {
		t.Errorf("excluded items = %d, want 2 (%v)", excluded, result.Skipped)
	}
}

func TestWalkDirectFileBypassesIgnore(t *testing.T) {
	root := writeTree(t, "ignored.py")
	target := filepath.Join(root, "ignored.py")

	result, err := Walk([]string{target}, WithIgnore(func(string, bool) bool {
		return true
	}))
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	if len(result.CodeFiles) != 1 {
		t.Errorf("CodeFiles = %v, want the directly given file", result.CodeFiles)
	}
}

func TestWalkOverlappingRootsDedup(t *testing.T) {
	root := writeTree(t, "a.py")

	result, err := Walk([]string{root, root})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	if len(result.CodeFiles) != 1 {
		t.Errorf("CodeFiles = %v, want one entry", result.CodeFiles)
	}
}

func TestWalkMissingRoot(t *testing.T) {
	if _, err := Walk([]string{filepath.Join(t.TempDir(), "absent")}); err == nil {
		t.Fatal("Walk() = nil error for missing root")
	}
}

func TestWalkCancelledContext(t *testing.T) {
	root := writeTree(t, "a.py")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Walk([]string{root}, WithContext(ctx)); err == nil {
		t.Fatal("Walk() = nil error after cancellation")
	}
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
