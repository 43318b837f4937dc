package precommit

import (
	"reflect"
	"sort"
	"strings"
)

// Tuples flattens the document into one row per hook entry, in document order.
func (d *Document) Tuples() []Tuple {
	var tuples []Tuple
	for _, src := range d.Repos {
		for _, hook := range src.Hooks {
			args := hook.Args
			if args == nil {
				args = []string{}
			}
			tuples = append(tuples, Tuple{
				Source:  src.Repo,
				Rev:     src.Rev,
				HookID:  hook.ID,
				Args:    args,
				Exclude: hook.Exclude,
			})
		}
	}
	return tuples
}

// HookCount returns the total number of hook entries across all sources.
func (d *Document) HookCount() int {
	n := 0
	for _, src := range d.Repos {
		n += len(src.Hooks)
	}
	return n
}

// Source finds a hook source by full locator or short name.
func (d *Document) Source(repo string) (*HookSource, bool) {
	for i := range d.Repos {
		if d.Repos[i].Repo == repo || d.Repos[i].Name() == repo {
			return &d.Repos[i], true
		}
	}
	return nil, false
}

// HookIDs returns the sorted, de-duplicated set of hook ids and aliases.
func (d *Document) HookIDs() []string {
	seen := make(map[string]bool)
	for _, src := range d.Repos {
		for _, hook := range src.Hooks {
			if hook.ID != "" {
				seen[hook.ID] = true
			}
			if hook.Alias != "" {
				seen[hook.Alias] = true
			}
		}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func shortName(repo string) string {
	name := strings.TrimSuffix(strings.TrimRight(repo, "/"), ".git")
	if i := strings.LastIndexAny(name, "/:"); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// SameAs reports whether two hook entries declare identical settings,
// ignoring where they appear in the document.
func (h HookEntry) SameAs(other HookEntry) bool {
	a, b := h, other
	a.Position, b.Position = Position{}, Position{}
	a.fields, b.fields = nil, nil
	return reflect.DeepEqual(a, b)
}
