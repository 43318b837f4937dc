package lint

import (
	"fmt"
	"sort"
)

// Severity grades a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is one problem located in a document.
type Finding struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Path     string   `json:"path,omitempty"`
	Line     int      `json:"line"`
	Column   int      `json:"column"`
	Message  string   `json:"message"`
}

func (f Finding) String() string {
	path := f.Path
	if path == "" {
		path = "<input>"
	}
	return fmt.Sprintf("%s:%d:%d: %s: %s [%s]", path, f.Line, f.Column, f.Severity, f.Message, f.Rule)
}

// Report is the result of validating one document.
type Report struct {
	Path     string    `json:"path"`
	Sources  int       `json:"sources"`
	Hooks    int       `json:"hooks"`
	Findings []Finding `json:"findings"`
}

// Errors counts error findings.
func (r *Report) Errors() int {
	return r.count(SeverityError)
}

// Warnings counts warning findings.
func (r *Report) Warnings() int {
	return r.count(SeverityWarning)
}

func (r *Report) count(s Severity) int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == s {
			n++
		}
	}
	return n
}

// HasErrors reports whether the document fails validation. In strict mode
// warnings fail it too.
func (r *Report) HasErrors(strict bool) bool {
	if r.Errors() > 0 {
		return true
	}
	return strict && r.Warnings() > 0
}

// ByRule returns the findings produced by one rule.
func (r *Report) ByRule(rule string) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Rule == rule {
			out = append(out, f)
		}
	}
	return out
}

func (r *Report) sort() {
	sort.SliceStable(r.Findings, func(i, j int) bool {
		a, b := r.Findings[i], r.Findings[j]
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		return a.Rule < b.Rule
	})
}
