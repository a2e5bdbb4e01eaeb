package extract

import (
	"regexp"
	"strings"
)

var (
	installRequiresRE = regexp.MustCompile(`install_requires\s*=\s*\[`)
	extrasRequireRE   = regexp.MustCompile(`extras_require\s*=\s*\{`)
	quotedStringRE    = regexp.MustCompile(`"([^"\\]*)"|'([^'\\]*)'`)
)

// ParseSetupPy extracts declared dependencies from setup.py text, best
// effort: quoted strings inside the install_requires list and inside the
// value lists of the extras_require dict. Constructs it cannot follow
// (computed lists, variables) are logged and skipped, never fatal.
func (e *Extractor) ParseSetupPy(text, location string) []Dependency {
	if !strings.Contains(text, "setup(") && !strings.Contains(text, "setup (") {
		e.log.Warn("extract: no setup() call found in %s", location)
		return nil
	}

	var deps []Dependency

	if loc := installRequiresRE.FindStringIndex(text); loc != nil {
		body, ok := balancedSlice(text[loc[1]-1:], '[', ']')
		if !ok {
			e.log.Warn("extract: could not parse install_requires in %s", location)
		} else {
			deps = append(deps, e.requirementStrings(body, location)...)
		}
	}

	if loc := extrasRequireRE.FindStringIndex(text); loc != nil {
		body, ok := balancedSlice(text[loc[1]-1:], '{', '}')
		if !ok {
			e.log.Warn("extract: could not parse extras_require in %s", location)
		} else {
			// Keys of the dict are extra names; only the bracketed value
			// lists hold requirements.
			rest := body
			for {
				open := strings.IndexByte(rest, '[')
				if open < 0 {
					break
				}
				list, ok := balancedSlice(rest[open:], '[', ']')
				if !ok {
					break
				}
				deps = append(deps, e.requirementStrings(list, location)...)
				rest = rest[open+len(list):]
			}
		}
	}

	if len(deps) == 0 {
		e.log.Debug("extract: no dependencies found in %s", location)
	}
	return deps
}

// requirementStrings parses every quoted string in body as a requirement.
func (e *Extractor) requirementStrings(body, location string) []Dependency {
	var deps []Dependency
	for _, m := range quotedStringRE.FindAllStringSubmatch(body, -1) {
		raw := m[1]
		if raw == "" {
			raw = m[2]
		}
		name := requirementName(raw)
		if name == "" {
			continue
		}
		deps = append(deps, Dependency{Name: name, Location: location})
	}
	return deps
}

// balancedSlice returns the text from the opening delimiter at s[0] up to
// and including its matching closing delimiter.
func balancedSlice(s string, opening, closing byte) (string, bool) {
	if len(s) == 0 || s[0] != opening {
		return "", false
	}
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case opening:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return s[:i+1], true
			}
		}
	}
	return "", false
}
