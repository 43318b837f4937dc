// Package match evaluates which files each configured hook would run against.
package match

import (
	"path/filepath"

	"github.com/dlclark/regexp2"
	"github.com/grovetools/hookcheck/errors"
	"github.com/grovetools/hookcheck/pkg/precommit"
)

// Selection lists the paths a single hook entry selects.
type Selection struct {
	Source string   `json:"source"`
	HookID string   `json:"hook_id"`
	Files  []string `json:"files"`
	// NotEvaluated names declared filters that are not applied here,
	// e.g. types, which depend on file contents.
	NotEvaluated []string `json:"not_evaluated,omitempty"`
}

// filter is an include/exclude pair. A nil include matches everything and
// a nil exclude matches nothing.
type filter struct {
	include *regexp2.Regexp
	exclude *regexp2.Regexp
}

func newFilter(files, exclude string) (filter, error) {
	var f filter
	var err error
	if files != "" {
		if f.include, err = precommit.CompilePattern("files", files); err != nil {
			return f, err
		}
	}
	if exclude != "" && exclude != "^$" {
		if f.exclude, err = precommit.CompilePattern("exclude", exclude); err != nil {
			return f, err
		}
	}
	return f, nil
}

func (f filter) selects(path string) (bool, error) {
	if f.include != nil {
		ok, err := precommit.Search(f.include, path)
		if err != nil || !ok {
			return false, err
		}
	}
	if f.exclude != nil {
		excluded, err := precommit.Search(f.exclude, path)
		if err != nil {
			return false, err
		}
		return !excluded, nil
	}
	return true, nil
}

type hookFilter struct {
	source       string
	id           string
	filter       filter
	notEvaluated []string
}

// Matcher holds the compiled patterns of a document.
type Matcher struct {
	global filter
	hooks  []hookFilter
}

// Compile compiles every files/exclude pattern in doc.
func Compile(doc *precommit.Document) (*Matcher, error) {
	global, err := newFilter(doc.Files, doc.Exclude)
	if err != nil {
		return nil, err
	}

	m := &Matcher{global: global}
	for _, src := range doc.Repos {
		for _, hook := range src.Hooks {
			f, err := newFilter(hook.Files, hook.Exclude)
			if err != nil {
				if e, ok := errors.As(err); ok {
					e.WithDetail("hook", hook.DisplayID())
				}
				return nil, err
			}
			m.hooks = append(m.hooks, hookFilter{
				source:       src.Repo,
				id:           hook.DisplayID(),
				filter:       f,
				notEvaluated: typeFilters(hook),
			})
		}
	}
	return m, nil
}

func typeFilters(h precommit.HookEntry) []string {
	var out []string
	for _, field := range []string{"types", "types_or", "exclude_types"} {
		if h.Has(field) {
			out = append(out, field)
		}
	}
	return out
}

// Select reports, for every hook in document order, which of paths it would
// receive. Paths are compared in slash form, relative to the repository root.
func (m *Matcher) Select(paths []string) ([]Selection, error) {
	candidates := make([]string, 0, len(paths))
	for _, p := range paths {
		p = filepath.ToSlash(filepath.Clean(p))
		ok, err := m.global.selects(p)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodePatternInvalid, "document-level pattern failed").
				WithDetail("path", p)
		}
		if ok {
			candidates = append(candidates, p)
		}
	}

	selections := make([]Selection, 0, len(m.hooks))
	for _, h := range m.hooks {
		sel := Selection{
			Source:       h.source,
			HookID:       h.id,
			Files:        []string{},
			NotEvaluated: h.notEvaluated,
		}
		for _, p := range candidates {
			ok, err := h.filter.selects(p)
			if err != nil {
				return nil, errors.Wrap(err, errors.ErrCodePatternInvalid, "hook pattern failed").
					WithDetail("hook", h.id).
					WithDetail("path", p)
			}
			if ok {
				sel.Files = append(sel.Files, p)
			}
		}
		selections = append(selections, sel)
	}
	return selections, nil
}
