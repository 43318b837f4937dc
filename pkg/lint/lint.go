package lint

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"

	"github.com/grovetools/hookcheck/errors"
	"github.com/grovetools/hookcheck/logging"
	"github.com/grovetools/hookcheck/pkg/precommit"
	"github.com/grovetools/hookcheck/schema"
	"github.com/sirupsen/logrus"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// Options configures a Linter.
type Options struct {
	// Disabled lists rule ids that are skipped. The parse rule cannot be disabled.
	Disabled []string
	// Severity overrides the severity of a rule's findings.
	Severity map[string]Severity
	Logger   *logrus.Entry
}

// Linter validates pre-commit documents. It is safe for concurrent use.
type Linter struct {
	validator *schema.Validator
	disabled  map[string]bool
	severity  map[string]Severity
	logger    *logrus.Entry
}

// New creates a Linter. Unknown rule ids in opts are rejected.
func New(opts Options) (*Linter, error) {
	var unknown []string
	disabled := make(map[string]bool, len(opts.Disabled))
	for _, id := range opts.Disabled {
		if !IsRule(id) {
			unknown = append(unknown, id)
			continue
		}
		disabled[id] = true
	}
	severity := make(map[string]Severity, len(opts.Severity))
	for id, s := range opts.Severity {
		if !IsRule(id) {
			unknown = append(unknown, id)
			continue
		}
		if s != SeverityError && s != SeverityWarning {
			return nil, errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("invalid severity %q for rule %q", s, id))
		}
		severity[id] = s
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("unknown rule id(s): %v", unknown)).
			WithDetail("rules", unknown)
	}

	validator, err := schema.NewValidator()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSchemaInvalid, "failed to load document schema")
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.NewLogger("lint")
	}

	return &Linter{
		validator: validator,
		disabled:  disabled,
		severity:  severity,
		logger:    logger,
	}, nil
}

// LintFile reads and validates the document at path. Only I/O failures
// are returned as errors; everything wrong with the document is a finding.
func (l *Linter) LintFile(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(err, errors.ErrCodeDocumentNotFound, "pre-commit configuration not found").
				WithDetail("path", path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeDocumentParse, "failed to read pre-commit configuration").
			WithDetail("path", path)
	}
	return l.LintBytes(path, data), nil
}

// LintBytes validates raw document bytes. path is used for reporting only.
func (l *Linter) LintBytes(path string, data []byte) *Report {
	doc, err := precommit.Parse(data)
	if err != nil {
		line := 1
		if m := yamlLineRegex.FindStringSubmatch(err.Error()); m != nil {
			if n, convErr := strconv.Atoi(m[1]); convErr == nil {
				line = n
			}
		}
		msg := err.Error()
		if e, ok := errors.As(err); ok && e.Cause != nil {
			msg = e.Cause.Error()
		}
		l.logger.WithField("path", path).WithError(err).Debug("Document failed to parse")
		return &Report{
			Path: path,
			Findings: []Finding{{
				Rule:     RuleParse,
				Severity: SeverityError,
				Path:     path,
				Line:     line,
				Column:   1,
				Message:  msg,
			}},
		}
	}
	doc.Path = path
	return l.Lint(doc)
}

// Lint runs every enabled rule against a parsed document.
func (l *Linter) Lint(doc *precommit.Document) *Report {
	report := &Report{
		Path:     doc.Path,
		Sources:  len(doc.Repos),
		Hooks:    doc.HookCount(),
		Findings: []Finding{},
	}

	c := &checkContext{linter: l, doc: doc, report: report}
	for _, rule := range rules {
		if rule.check == nil || l.disabled[rule.ID] {
			continue
		}
		before := len(report.Findings)
		rule.check(c)
		if n := len(report.Findings) - before; n > 0 {
			l.logger.WithFields(logrus.Fields{
				"path":     doc.Path,
				"rule":     rule.ID,
				"findings": n,
			}).Debug("Rule reported findings")
		}
	}

	report.sort()
	l.logger.WithFields(logrus.Fields{
		"path":     doc.Path,
		"sources":  report.Sources,
		"hooks":    report.Hooks,
		"errors":   report.Errors(),
		"warnings": report.Warnings(),
	}).Debug("Document validated")
	return report
}

type checkContext struct {
	linter *Linter
	doc    *precommit.Document
	report *Report
}

func (c *checkContext) emit(rule string, pos precommit.Position, format string, args ...interface{}) {
	c.emitAs(rule, defaultSeverity(rule), pos, format, args...)
}

func (c *checkContext) emitAs(rule string, severity Severity, pos precommit.Position, format string, args ...interface{}) {
	if override, ok := c.linter.severity[rule]; ok {
		severity = override
	}
	c.report.Findings = append(c.report.Findings, Finding{
		Rule:     rule,
		Severity: severity,
		Path:     c.doc.Path,
		Line:     pos.Line,
		Column:   pos.Column,
		Message:  fmt.Sprintf(format, args...),
	})
}

func defaultSeverity(id string) Severity {
	for _, r := range rules {
		if r.ID == id {
			return r.Severity
		}
	}
	return SeverityError
}
