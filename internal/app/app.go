// Package app wires settings, traversal, extraction and reporting
// into a full run.
package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/zware/FawltyDeps/internal/config"
	"github.com/zware/FawltyDeps/internal/extract"
	"github.com/zware/FawltyDeps/internal/gitignore"
	"github.com/zware/FawltyDeps/internal/logger"
	"github.com/zware/FawltyDeps/internal/report"
	"github.com/zware/FawltyDeps/internal/walker"
)

// App encapsulates the main application functionality
type App struct {
	cfg    *config.Settings
	log    *logger.Logger
	Output io.Writer
}

// New creates a new App instance
func New(cfg *config.Settings) *App {
	// Configure color globally
	color.NoColor = !cfg.UseColors

	log := logger.New(os.Stderr, cfg.Verbosity, cfg.UseColors)

	return &App{
		cfg:    cfg,
		log:    log,
		Output: os.Stdout,
	}
}

// Run executes a full analysis and returns the process exit code:
// 0 when the requested actions completed, 1 on operational failure.
func (a *App) Run() int {
	startTime := time.Now()

	if a.cfg.ShowVersion {
		fmt.Fprintf(a.Output, "fawltydeps version %s\n", a.cfg.Version)
		return 0
	}

	for _, w := range a.cfg.Warnings {
		a.log.Warn("%s", w)
	}

	rules, err := a.loadExcludeRules()
	if err != nil {
		a.log.Error("%v", err)
		return 1
	}

	var predicate walker.IgnorePredicate
	if rules != nil {
		predicate = func(absPath string, isDir bool) bool {
			if isDir {
				absPath += "/"
			}
			return rules.Ignores(absPath)
		}
	}

	codeFiles, depFiles, err := a.collectFiles(predicate)
	if err != nil {
		a.log.Error("%v", err)
		return 1
	}
	a.log.Debug("Collected %d code files, %d dependency files",
		len(codeFiles), len(depFiles))

	imports := a.extractImports(codeFiles)
	declared := a.extractDeclared(depFiles)

	rep := a.buildReport(imports, declared)

	renderer := report.New().
		WithOutput(a.Output).
		WithColors(a.cfg.UseColors).
		WithJSON(a.cfg.Output == config.OutputJSON)
	if err := renderer.Render(rep); err != nil {
		a.log.Error("%v", err)
		return 1
	}

	if rep.HasProblems() {
		a.log.Warn("Dependency problems found, see report above.")
	}
	a.log.Debug("Analysis complete in %v.", time.Since(startTime).Round(time.Millisecond))
	return 0
}

// loadExcludeRules compiles the exclusion file. An explicitly
// configured file must exist; the implicit ./.gitignore default is
// used only when present.
func (a *App) loadExcludeRules() (*gitignore.RuleSet, error) {
	path := a.cfg.ExcludeFrom
	if path == "" {
		if _, err := os.Stat(".gitignore"); err != nil {
			return nil, nil
		}
		path = ".gitignore"
	}

	rules, err := gitignore.CompileFile(path, "")
	if err != nil {
		return nil, fmt.Errorf("app: loading exclude rules: %w", err)
	}
	a.log.Debug("Loaded %d exclude rules from %s", rules.Len(), path)
	return rules, nil
}

// collectFiles walks the code and deps roots. When both settings name
// the same roots, a single walk serves both.
func (a *App) collectFiles(predicate walker.IgnorePredicate) (code, deps []string, err error) {
	opts := []walker.Option{
		walker.WithLogger(a.log),
		walker.WithIgnore(predicate),
	}

	if sameRoots(a.cfg.Code, a.cfg.Deps) {
		result, err := walker.Walk(a.cfg.Code, opts...)
		if err != nil {
			return nil, nil, err
		}
		return result.CodeFiles, result.DepFiles, nil
	}

	codeResult, err := walker.Walk(a.cfg.Code, opts...)
	if err != nil {
		return nil, nil, err
	}
	depsResult, err := walker.Walk(a.cfg.Deps, opts...)
	if err != nil {
		return nil, nil, err
	}
	return codeResult.CodeFiles, depsResult.DepFiles, nil
}

// extractImports parses every code file and maps each third-party
// import name to the files importing it.
func (a *App) extractImports(codeFiles []string) map[string][]string {
	imports := make(map[string][]string)
	for _, path := range codeFiles {
		data, err := os.ReadFile(path)
		if err != nil {
			a.log.Warn("Skipping %s: %v", path, err)
			continue
		}
		for _, name := range extract.ParseImports(string(data)) {
			if extract.IsStdlib(name) {
				continue
			}
			imports[name] = append(imports[name], displayPath(path))
		}
	}
	return imports
}

// extractDeclared parses every dependency file and maps each declared
// dependency name to the files declaring it.
func (a *App) extractDeclared(depFiles []string) map[string][]string {
	ext := extract.New(a.log)
	declared := make(map[string][]string)
	for _, path := range depFiles {
		found, err := ext.FromFile(path)
		if err != nil {
			a.log.Warn("Skipping %s: %v", path, err)
			continue
		}
		for _, dep := range found {
			declared[dep.Name] = append(declared[dep.Name], displayPath(path))
		}
	}
	return declared
}

// buildReport compares imports against declared dependencies and fills
// in only the sections the requested actions ask for.
func (a *App) buildReport(imports, declared map[string][]string) *report.Report {
	rep := &report.Report{}

	if a.cfg.HasAction(config.ActionListImports) {
		rep.Imports = sortedKeys(imports)
	}
	if a.cfg.HasAction(config.ActionListDeps) {
		rep.Deps = toIssues(declared, []report.Issue{})
	}

	// Comparison happens on canonical names so that import and
	// distribution spellings of the same package line up.
	canonDeclared := make(map[string]struct{}, len(declared))
	for name := range declared {
		canonDeclared[canonicalize(name)] = struct{}{}
	}
	canonImported := make(map[string]struct{}, len(imports))
	for name := range imports {
		canonImported[canonicalize(name)] = struct{}{}
	}

	if a.cfg.HasAction(config.ActionReportUndeclared) {
		skip := toSet(a.cfg.IgnoreUndeclared)
		undeclared := make(map[string][]string)
		for name, locations := range imports {
			if _, ok := canonDeclared[canonicalize(name)]; ok {
				continue
			}
			if _, ok := skip[name]; ok {
				continue
			}
			undeclared[name] = locations
		}
		rep.Undeclared = toIssues(undeclared, []report.Issue{})
	}

	if a.cfg.HasAction(config.ActionReportUnused) {
		skip := toSet(a.cfg.IgnoreUnused)
		unused := make(map[string][]string)
		for name, locations := range declared {
			if _, ok := canonImported[canonicalize(name)]; ok {
				continue
			}
			if _, ok := skip[name]; ok {
				continue
			}
			unused[name] = locations
		}
		rep.Unused = toIssues(unused, []report.Issue{})
	}

	return rep
}

// canonicalize folds case and separator differences between import
// names and distribution names (PEP 503 style).
func canonicalize(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), "_", "-")
}

// displayPath shortens an absolute path to one relative to the current
// directory when possible.
func displayPath(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}

func sameRoots(a, b []string) bool {
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

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// toIssues converts a name-to-locations map to a sorted issue list.
// The empty fallback distinguishes "checked, nothing found" from "not
// requested" in the rendered report.
func toIssues(m map[string][]string, empty []report.Issue) []report.Issue {
	if len(m) == 0 {
		return empty
	}
	issues := make([]report.Issue, 0, len(m))
	for name, locations := range m {
		issues = append(issues, report.Issue{Name: name, Locations: dedupe(locations)})
	}
	sort.Slice(issues, func(i, j int) bool { return issues[i].Name < issues[j].Name })
	return issues
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	sort.Strings(out)
	return out
}
