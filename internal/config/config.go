// Package config builds the effective settings for a run.
//
// Sources cascade, strongest first: command-line flags, FAWLTYDEPS_*
// environment variables, the [tool.fawltydeps] table of a TOML config
// file, built-in defaults.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mattn/go-isatty"
)

// Actions a run can perform.
const (
	ActionListImports      = "list_imports"
	ActionListDeps         = "list_deps"
	ActionReportUndeclared = "report_undeclared"
	ActionReportUnused     = "report_unused"
)

// Output formats.
const (
	OutputHuman = "human"
	OutputJSON  = "json"
)

// EnvPrefix is the prefix of all recognized environment variables.
const EnvPrefix = "FAWLTYDEPS_"

// ErrInvalidSetting indicates a setting value outside the accepted set.
var ErrInvalidSetting = errors.New("invalid setting")

// Settings holds the effective configuration of one run.
type Settings struct {
	Actions          []string
	Code             []string
	Deps             []string
	Output           string
	ExcludeFrom      string
	IgnoreUndeclared []string
	IgnoreUnused     []string
	Verbosity        int

	NoColor   bool
	UseColors bool

	ShowVersion bool
	Version     string
	ConfigFile  string

	// Warnings collected while cascading (e.g. a missing config file);
	// the caller logs them once a logger exists.
	Warnings []string
}

// Defaults returns the built-in settings.
func Defaults() *Settings {
	return &Settings{
		Actions: []string{ActionReportUndeclared, ActionReportUnused},
		Code:    []string{"."},
		Deps:    []string{"."},
		Output:  OutputHuman,
		Version: "0.1.0",
	}
}

// fileSettings mirrors the [tool.fawltydeps] table. Pointer fields
// distinguish "absent" from zero values.
type fileSettings struct {
	Actions          *[]string `toml:"actions"`
	Code             *[]string `toml:"code"`
	Deps             *[]string `toml:"deps"`
	Output           *string   `toml:"output_format"`
	ExcludeFrom      *string   `toml:"exclude_from"`
	IgnoreUndeclared *[]string `toml:"ignore_undeclared"`
	IgnoreUnused     *[]string `toml:"ignore_unused"`
	Verbosity        *int      `toml:"verbosity"`
}

type configDoc struct {
	Tool struct {
		Fawltydeps fileSettings `toml:"fawltydeps"`
	} `toml:"tool"`
}

// Load builds Settings from the given command-line arguments, the
// process environment and the config file, cascading per package doc.
func Load(args []string) (*Settings, error) {
	s := Defaults()

	fs := flag.NewFlagSet("fawltydeps", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var (
		actions     = fs.String("actions", "", "Comma-separated actions (list_imports, list_deps, report_undeclared, report_unused)")
		code        = fs.String("code", "", "Comma-separated files/directories containing the code to find imports in")
		deps        = fs.String("deps", "", "Comma-separated files/directories containing dependency declarations")
		output      = fs.String("output-format", "", "Output format (human, json)")
		excludeFrom = fs.String("exclude-from", "", "Gitignore-style file of paths to exclude (default: ./.gitignore when present)")
		ignoreUndec = fs.String("ignore-undeclared", "", "Comma-separated imports to never report as undeclared")
		ignoreUnus  = fs.String("ignore-unused", "", "Comma-separated dependencies to never report as unused")
		configFile  = fs.String("config", "", "TOML config file with a [tool.fawltydeps] table (default: ./pyproject.toml when present)")
		verbose     counter
		quiet       counter
	)
	fs.Var(&verbose, "verbose", "Increase verbosity (repeatable)")
	fs.Var(&verbose, "v", "Shorthand for -verbose")
	fs.Var(&quiet, "quiet", "Decrease verbosity (repeatable)")
	fs.Var(&quiet, "q", "Shorthand for -quiet")
	fs.BoolVar(&s.NoColor, "no-color", false, "Disable color output")
	fs.BoolVar(&s.ShowVersion, "version", false, "Show version information")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	// Weakest layer first: config file, then environment, then flags.
	s.ConfigFile = *configFile
	if err := s.applyFile(*configFile); err != nil {
		return nil, err
	}
	if err := s.applyEnv(); err != nil {
		return nil, err
	}

	if *actions != "" {
		s.Actions = splitList(*actions)
	}
	if *code != "" {
		s.Code = splitList(*code)
	}
	if *deps != "" {
		s.Deps = splitList(*deps)
	}
	if *output != "" {
		s.Output = *output
	}
	if *excludeFrom != "" {
		s.ExcludeFrom = *excludeFrom
	}
	if *ignoreUndec != "" {
		s.IgnoreUndeclared = splitList(*ignoreUndec)
	}
	if *ignoreUnus != "" {
		s.IgnoreUnused = splitList(*ignoreUnus)
	}

	// Either flag given overrides any underlying verbosity.
	if verbose > 0 || quiet > 0 {
		s.Verbosity = int(verbose) - int(quiet)
	}

	// Positional arguments fill code and deps roots not set by flags.
	if rest := fs.Args(); len(rest) > 0 {
		if *code == "" {
			s.Code = rest
		}
		if *deps == "" {
			s.Deps = rest
		}
	}

	if err := s.validate(); err != nil {
		return nil, err
	}

	s.UseColors = !s.NoColor && s.Output == OutputHuman && isatty.IsTerminal(os.Stderr.Fd())

	return s, nil
}

// applyFile overlays settings from the [tool.fawltydeps] table of path.
// An empty path falls back to ./pyproject.toml when that exists. A
// missing file only warns, invalid TOML and unknown table keys are
// errors.
func (s *Settings) applyFile(path string) error {
	if path == "" {
		if _, err := os.Stat("pyproject.toml"); err != nil {
			return nil
		}
		path = "pyproject.toml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.Warnings = append(s.Warnings,
				fmt.Sprintf("failed to load configuration file: %s", path))
			return nil
		}
		return fmt.Errorf("config: read %q: %w", path, err)
	}

	var doc configDoc
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return fmt.Errorf("config: parse %q: %w", path, err)
	}

	// Only keys inside our own table are ours to police.
	var unknown []string
	for _, key := range md.Undecoded() {
		if strings.HasPrefix(key.String(), "tool.fawltydeps.") {
			unknown = append(unknown, key.String())
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("config: %w: unsupported keys in %q: %s",
			ErrInvalidSetting, path, strings.Join(unknown, ", "))
	}

	f := doc.Tool.Fawltydeps
	if f.Actions != nil {
		s.Actions = *f.Actions
	}
	if f.Code != nil {
		s.Code = *f.Code
	}
	if f.Deps != nil {
		s.Deps = *f.Deps
	}
	if f.Output != nil {
		s.Output = *f.Output
	}
	if f.ExcludeFrom != nil {
		s.ExcludeFrom = *f.ExcludeFrom
	}
	if f.IgnoreUndeclared != nil {
		s.IgnoreUndeclared = *f.IgnoreUndeclared
	}
	if f.IgnoreUnused != nil {
		s.IgnoreUnused = *f.IgnoreUnused
	}
	if f.Verbosity != nil {
		s.Verbosity = *f.Verbosity
	}
	return nil
}

// applyEnv overlays FAWLTYDEPS_* environment variables.
func (s *Settings) applyEnv() error {
	if v, ok := os.LookupEnv(EnvPrefix + "ACTIONS"); ok {
		s.Actions = splitList(v)
	}
	if v, ok := os.LookupEnv(EnvPrefix + "CODE"); ok {
		s.Code = splitList(v)
	}
	if v, ok := os.LookupEnv(EnvPrefix + "DEPS"); ok {
		s.Deps = splitList(v)
	}
	if v, ok := os.LookupEnv(EnvPrefix + "OUTPUT_FORMAT"); ok {
		s.Output = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "EXCLUDE_FROM"); ok {
		s.ExcludeFrom = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "IGNORE_UNDECLARED"); ok {
		s.IgnoreUndeclared = splitList(v)
	}
	if v, ok := os.LookupEnv(EnvPrefix + "IGNORE_UNUSED"); ok {
		s.IgnoreUnused = splitList(v)
	}
	if v, ok := os.LookupEnv(EnvPrefix + "VERBOSITY"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %w: %sVERBOSITY=%q is not an integer",
				ErrInvalidSetting, EnvPrefix, v)
		}
		s.Verbosity = n
	}
	return nil
}

func (s *Settings) validate() error {
	if len(s.Actions) == 0 {
		return fmt.Errorf("config: %w: no actions requested", ErrInvalidSetting)
	}
	for _, a := range s.Actions {
		switch a {
		case ActionListImports, ActionListDeps, ActionReportUndeclared, ActionReportUnused:
		default:
			return fmt.Errorf("config: %w: unknown action %q", ErrInvalidSetting, a)
		}
	}
	switch s.Output {
	case OutputHuman, OutputJSON:
	default:
		return fmt.Errorf("config: %w: unknown output format %q", ErrInvalidSetting, s.Output)
	}
	return nil
}

// HasAction reports whether the given action was requested.
func (s *Settings) HasAction(action string) bool {
	for _, a := range s.Actions {
		if a == action {
			return true
		}
	}
	return false
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// counter is a repeatable boolean flag that counts its occurrences.
type counter int

func (c *counter) String() string { return strconv.Itoa(int(*c)) }

func (c *counter) Set(string) error {
	*c++
	return nil
}

func (c *counter) IsBoolFlag() bool { return true }
