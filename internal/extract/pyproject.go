package extract

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// ParsePyproject extracts declared dependencies from pyproject.toml text.
// Poetry metadata ([tool.poetry]) takes precedence; otherwise PEP 621
// core metadata ([project]) is used. Invalid TOML is an error; a file
// with neither layout only logs.
func (e *Extractor) ParsePyproject(text, location string) ([]Dependency, error) {
	var doc map[string]interface{}
	if err := toml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, fmt.Errorf("extract: parse %q: %w", location, err)
	}

	if poetry, ok := tableIn(doc, "tool", "poetry"); ok {
		return e.poetryDependencies(poetry, location), nil
	}
	if project, ok := tableIn(doc, "project"); ok {
		return e.pep621Dependencies(project, location), nil
	}

	e.log.Error("extract: %s has neither [tool.poetry] nor [project]", location)
	return nil, nil
}

// poetryDependencies reads Poetry's main, grouped and extra dependencies.
// The "python" requirement is an interpreter constraint, not a package.
func (e *Extractor) poetryDependencies(poetry map[string]interface{}, location string) []Dependency {
	var deps []Dependency

	if main, ok := tableIn(poetry, "dependencies"); ok {
		for name := range main {
			if name != "python" {
				deps = append(deps, Dependency{Name: requirementName(name), Location: location})
			}
		}
	} else {
		e.log.Debug("extract: no Poetry dependencies in %s", location)
	}

	if groups, ok := tableIn(poetry, "group"); ok {
		for _, g := range groups {
			group, ok := g.(map[string]interface{})
			if !ok {
				continue
			}
			if grouped, ok := tableIn(group, "dependencies"); ok {
				for name := range grouped {
					if name != "python" {
						deps = append(deps, Dependency{Name: requirementName(name), Location: location})
					}
				}
			}
		}
	}

	if extras, ok := tableIn(poetry, "extras"); ok {
		for _, v := range extras {
			deps = append(deps, e.requirementList(v, location)...)
		}
	}

	return deps
}

// pep621Dependencies reads [project] dependencies and
// optional-dependencies, both lists of PEP 508 requirement strings.
func (e *Extractor) pep621Dependencies(project map[string]interface{}, location string) []Dependency {
	var deps []Dependency

	if v, ok := project["dependencies"]; ok {
		deps = append(deps, e.requirementList(v, location)...)
	}
	if optional, ok := tableIn(project, "optional-dependencies"); ok {
		for _, v := range optional {
			deps = append(deps, e.requirementList(v, location)...)
		}
	}

	return deps
}

// requirementList parses a TOML array of requirement strings.
func (e *Extractor) requirementList(v interface{}, location string) []Dependency {
	list, ok := v.([]interface{})
	if !ok {
		e.log.Warn("extract: expected a list of requirements in %s, got %T", location, v)
		return nil
	}
	var deps []Dependency
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			continue
		}
		if name := requirementName(s); name != "" {
			deps = append(deps, Dependency{Name: name, Location: location})
		}
	}
	return deps
}

// tableIn walks nested TOML tables by key.
func tableIn(doc map[string]interface{}, keys ...string) (map[string]interface{}, bool) {
	current := doc
	for _, key := range keys {
		v, ok := current[key]
		if !ok {
			return nil, false
		}
		current, ok = v.(map[string]interface{})
		if !ok {
			return nil, false
		}
	}
	return current, true
}
