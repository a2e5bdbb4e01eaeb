// Package extract collects declared dependencies from Python project
// metadata files and imported module names from Python source.
//
// Supported dependency declarations: requirements.txt / requirements.in,
// setup.py (best effort) and pyproject.toml (Poetry and PEP 621 layouts).
package extract

import (
	"fmt"
	"os"
	"path/filepath"
)

// Dependency is one declared dependency and the file that declared it.
type Dependency struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

// Logger is the minimal logging interface the extractors need.
type Logger interface {
	Debug(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// nopLogger discards everything; used when no logger is configured.
type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Extractor parses dependency declaration files.
type Extractor struct {
	log Logger
}

// New creates an Extractor. A nil logger disables logging.
func New(log Logger) *Extractor {
	if log == nil {
		log = nopLogger{}
	}
	return &Extractor{log: log}
}

// IsDepFile reports whether basename names a supported dependency
// declaration file.
func IsDepFile(basename string) bool {
	switch basename {
	case "requirements.txt", "requirements.in", "setup.py", "pyproject.toml":
		return true
	}
	return false
}

// FromFile extracts declared dependencies from the given file, dispatching
// on its basename. Unsupported names are an error; so is an unreadable
// file.
func (e *Extractor) FromFile(path string) ([]Dependency, error) {
	name := filepath.Base(path)
	if !IsDepFile(name) {
		return nil, fmt.Errorf("extract: unsupported dependency file %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("extract: read %q: %w", path, err)
	}
	text := string(data)

	e.log.Debug("extract: parsing %s", path)
	switch name {
	case "requirements.txt", "requirements.in":
		return e.ParseRequirements(text, path), nil
	case "setup.py":
		return e.ParseSetupPy(text, path), nil
	default:
		return e.ParsePyproject(text, path)
	}
}
