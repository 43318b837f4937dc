// Package report renders validation results, tuples and rule listings for the terminal.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/grovetools/hookcheck/pkg/lint"
	"github.com/grovetools/hookcheck/pkg/match"
	"github.com/grovetools/hookcheck/pkg/precommit"
	"golang.org/x/term"
)

const (
	defaultWidth = 100
	minWidth     = 40
)

// Printer writes styled text to a writer.
type Printer struct {
	w     io.Writer
	theme *Theme
	width int
}

// NewPrinter creates a Printer for w. Colour follows ColorProfile(w). Long
// values are cut to the terminal's width only when w is a terminal.
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(ColorProfile(w))
	return &Printer{
		w:     w,
		theme: NewTheme(r, ThemeName()),
		width: terminalWidth(w),
	}
}

// Theme returns the printer's styles.
func (p *Printer) Theme() *Theme {
	return p.theme
}

// terminalWidth returns 0, meaning unlimited, when w is not a terminal.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width < minWidth {
		return defaultWidth
	}
	return width
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Reports prints the findings of each report followed by a summary line.
func (p *Printer) Reports(reports []*lint.Report, strict bool) {
	t := p.theme
	var errs, warns, failed int
	for _, r := range reports {
		errs += r.Errors()
		warns += r.Warnings()
		if r.HasErrors(strict) {
			failed++
		}

		header := fmt.Sprintf("%d sources, %d hooks", r.Sources, r.Hooks)
		fmt.Fprintf(p.w, "%s  %s\n", t.Bold.Render(displayPath(r.Path)), t.Muted.Render(header))
		for _, f := range r.Findings {
			p.finding(f)
		}
	}

	summary := fmt.Sprintf("%s checked: %s, %s",
		plural(len(reports), "document"), plural(errs, "error"), plural(warns, "warning"))
	if failed > 0 {
		fmt.Fprintf(p.w, "\n%s %s\n", t.Error.Render("✗"), summary)
	} else {
		fmt.Fprintf(p.w, "\n%s %s\n", t.Success.Render("✓"), summary)
	}
}

func (p *Printer) finding(f lint.Finding) {
	t := p.theme
	sev := t.Warning.Render(fmt.Sprintf("%-7s", f.Severity))
	if f.Severity == lint.SeverityError {
		sev = t.Error.Render(fmt.Sprintf("%-7s", f.Severity))
	}
	loc := fmt.Sprintf("%d:%d", f.Line, f.Column)
	prefix := fmt.Sprintf("  %-7s ", loc)
	// prefix + severity + two spaces
	indent := len(prefix) + 9
	msg := truncate(f.Message, p.width-indent-len(f.Rule)-3)
	fmt.Fprintf(p.w, "%s%s  %s  %s\n", t.Muted.Render(prefix), sev, msg, t.Muted.Render(f.Rule))
}

// Tuples prints one row per hook entry.
func (p *Printer) Tuples(tuples []precommit.Tuple) {
	t := p.theme
	if len(tuples) == 0 {
		fmt.Fprintln(p.w, t.Muted.Render("No hooks configured."))
		return
	}

	srcWidth, revWidth, idWidth := len("SOURCE"), len("REV"), len("HOOK")
	for _, tp := range tuples {
		srcWidth = max(srcWidth, len(sourceLabel(tp.Source)))
		revWidth = max(revWidth, len(tp.Rev))
		idWidth = max(idWidth, len(tp.HookID))
	}

	fmt.Fprintf(p.w, "%s\n", t.Section.Render(fmt.Sprintf("%-*s  %-*s  %-*s  %s",
		srcWidth, "SOURCE", revWidth, "REV", idWidth, "HOOK", "ARGS / EXCLUDE")))
	rest := p.width - srcWidth - revWidth - idWidth - 6
	for _, tp := range tuples {
		extra := formatArgs(tp.Args)
		if tp.Exclude != "" {
			if extra != "" {
				extra += "  "
			}
			extra += "exclude=" + tp.Exclude
		}
		fmt.Fprintf(p.w, "%-*s  %s  %s  %s\n",
			srcWidth, sourceLabel(tp.Source),
			t.Muted.Render(fmt.Sprintf("%-*s", revWidth, tp.Rev)),
			t.Accent.Render(fmt.Sprintf("%-*s", idWidth, tp.HookID)),
			truncate(extra, rest))
	}
}

// Selections prints the files each hook selects.
func (p *Printer) Selections(selections []match.Selection) {
	t := p.theme
	for _, s := range selections {
		fmt.Fprintf(p.w, "%s %s\n", t.Accent.Render(s.HookID), t.Muted.Render("("+sourceLabel(s.Source)+")"))
		if len(s.Files) == 0 {
			fmt.Fprintf(p.w, "  %s\n", t.Muted.Render("no files"))
		}
		for _, f := range s.Files {
			fmt.Fprintf(p.w, "  %s\n", f)
		}
		if len(s.NotEvaluated) > 0 {
			fmt.Fprintf(p.w, "  %s\n", t.Italic.Render("not evaluated: "+strings.Join(s.NotEvaluated, ", ")))
		}
	}
}

// Rules prints the rule catalogue.
func (p *Printer) Rules(rules []lint.Rule) {
	t := p.theme
	idWidth := 0
	for _, r := range rules {
		idWidth = max(idWidth, len(r.ID))
	}
	for _, r := range rules {
		sev := t.Warning.Render(fmt.Sprintf("%-7s", r.Severity))
		if r.Severity == lint.SeverityError {
			sev = t.Error.Render(fmt.Sprintf("%-7s", r.Severity))
		}
		fmt.Fprintf(p.w, "%s  %s  %s\n", t.Accent.Render(fmt.Sprintf("%-*s", idWidth, r.ID)), sev, r.Description)
	}
}

func sourceLabel(repo string) string {
	if repo == precommit.RepoLocal || repo == precommit.RepoMeta {
		return repo
	}
	return strings.TrimPrefix(strings.TrimPrefix(repo, "https://"), "http://")
}

func displayPath(path string) string {
	if path == "" {
		return "<stdin>"
	}
	return path
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// formatArgs renders args as a list of quoted strings so that argument
// boundaries stay visible.
func formatArgs(args []string) string {
	if len(args) == 0 {
		return ""
	}
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = strconv.Quote(a)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// truncate cuts s to width runes. Widths under 10, including the unlimited
// width of non-terminal output, leave s as is.
func truncate(s string, width int) string {
	r := []rune(s)
	if width < 10 || len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
