package extract

import "strings"

// ParseRequirements extracts package names from requirements-file text
// (requirements.txt / requirements.in, pip's requirements file format).
// location is recorded on every returned dependency.
func (e *Extractor) ParseRequirements(text, location string) []Dependency {
	var deps []Dependency
	for _, line := range joinContinuations(text) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// Option lines: -r includes, -e editables, --index-url and
		// friends carry no package name of their own.
		if strings.HasPrefix(line, "-") {
			continue
		}

		name := requirementName(line)
		if name == "" {
			e.log.Warn("extract: no package name in requirement %q (%s)", line, location)
			continue
		}
		deps = append(deps, Dependency{Name: name, Location: location})
	}
	return deps
}

// joinContinuations splits text into logical lines, gluing together
// physical lines ending in a backslash.
func joinContinuations(text string) []string {
	physical := strings.Split(text, "\n")
	out := make([]string, 0, len(physical))
	current := ""
	for _, line := range physical {
		line = strings.TrimRight(line, "\r")
		if strings.HasSuffix(line, `\`) {
			current += strings.TrimSuffix(line, `\`)
			continue
		}
		out = append(out, current+line)
		current = ""
	}
	if current != "" {
		out = append(out, current)
	}
	return out
}

// requirementName extracts the distribution name from one PEP 508-style
// requirement line, dropping extras, version specifiers, environment
// markers, direct references and inline comments. Names are lower-cased,
// matching pkg_resources' Requirement.key.
func requirementName(line string) string {
	if i := strings.Index(line, " #"); i >= 0 {
		line = line[:i]
	}

	end := len(line)
	for i := 0; i < len(line); i++ {
		c := line[i]
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
			c == '-' || c == '_' || c == '.' {
			continue
		}
		end = i
		break
	}
	return strings.ToLower(line[:end])
}
