// Package report handles output formatting and display of run results.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fatih/color"
)

// Issue names a dependency problem and the files it was seen in.
type Issue struct {
	Name      string   `json:"name"`
	Locations []string `json:"locations,omitempty"`
}

// Report is the full result of a run. Slices left nil are not rendered.
type Report struct {
	Imports    []string `json:"imports,omitempty"`
	Deps       []Issue  `json:"deps,omitempty"`
	Undeclared []Issue  `json:"undeclared,omitempty"`
	Unused     []Issue  `json:"unused,omitempty"`
}

// Renderer writes a Report to the configured output destination.
type Renderer struct {
	output     io.Writer
	useColors  bool
	jsonOutput bool
}

// New creates a new Renderer with default settings
func New() *Renderer {
	return &Renderer{
		output:    os.Stdout,
		useColors: true,
	}
}

// WithOutput sets the output destination
func (r *Renderer) WithOutput(w io.Writer) *Renderer {
	r.output = w
	return r
}

// WithColors enables or disables colored output
func (r *Renderer) WithColors(enabled bool) *Renderer {
	r.useColors = enabled
	return r
}

// WithJSON enables JSON output mode
func (r *Renderer) WithJSON(enabled bool) *Renderer {
	r.jsonOutput = enabled
	return r
}

// Render writes the report in the configured format.
func (r *Renderer) Render(rep *Report) error {
	if r.jsonOutput {
		data, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return fmt.Errorf("report: marshaling JSON: %w", err)
		}
		if _, err := fmt.Fprintf(r.output, "%s\n", data); err != nil {
			return fmt.Errorf("report: writing output: %w", err)
		}
		return nil
	}
	return r.renderHuman(rep)
}

func (r *Renderer) renderHuman(rep *Report) error {
	if rep.Imports != nil {
		r.section("Imports found:")
		for _, name := range sorted(rep.Imports) {
			fmt.Fprintf(r.output, "  %s\n", name)
		}
	}
	if rep.Deps != nil {
		r.section("Dependencies declared:")
		for _, issue := range sortedIssues(rep.Deps) {
			r.issueLine(issue)
		}
	}
	if rep.Undeclared != nil {
		if len(rep.Undeclared) == 0 {
			r.ok("No undeclared dependencies.")
		} else {
			r.problem("Undeclared dependencies (imported, but not declared):")
			for _, issue := range sortedIssues(rep.Undeclared) {
				r.issueLine(issue)
			}
		}
	}
	if rep.Unused != nil {
		if len(rep.Unused) == 0 {
			r.ok("No unused dependencies.")
		} else {
			r.problem("Unused dependencies (declared, but not imported):")
			for _, issue := range sortedIssues(rep.Unused) {
				r.issueLine(issue)
			}
		}
	}
	return nil
}

func (r *Renderer) section(text string) {
	if r.useColors {
		text = color.CyanString(text)
	}
	fmt.Fprintf(r.output, "%s\n", text)
}

func (r *Renderer) ok(text string) {
	if r.useColors {
		text = color.GreenString(text)
	}
	fmt.Fprintf(r.output, "%s\n", text)
}

func (r *Renderer) problem(text string) {
	if r.useColors {
		text = color.RedString(text)
	}
	fmt.Fprintf(r.output, "%s\n", text)
}

func (r *Renderer) issueLine(issue Issue) {
	fmt.Fprintf(r.output, "  %s", issue.Name)
	if len(issue.Locations) > 0 {
		fmt.Fprintf(r.output, " (%s)", joinLocations(issue.Locations))
	}
	fmt.Fprintln(r.output)
}

// HasProblems reports whether the report contains any issue that
// should fail the run.
func (rep *Report) HasProblems() bool {
	return len(rep.Undeclared) > 0 || len(rep.Unused) > 0
}

func sorted(names []string) []string {
	out := append([]string(nil), names...)
	sort.Strings(out)
	return out
}

func sortedIssues(issues []Issue) []Issue {
	out := append([]Issue(nil), issues...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func joinLocations(locations []string) string {
	s := ""
	for i, loc := range sorted(locations) {
		if i > 0 {
			s += ", "
		}
		s += loc
	}
	return s
}
