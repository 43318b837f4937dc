package lint

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/grovetools/hookcheck/pkg/precommit"
	"gopkg.in/yaml.v3"
)

// Rule ids.
const (
	RuleParse               = "parse"
	RuleSchema              = "schema"
	RuleMissingRev          = "missing-rev"
	RuleMissingHookID       = "missing-hook-id"
	RuleConflictingOption   = "conflicting-option"
	RuleInvalidRegex        = "invalid-regex"
	RuleUnknownKey          = "unknown-key"
	RuleUnknownCIOption     = "unknown-ci-option"
	RuleCISkipUnknownHook   = "ci-skip-unknown-hook"
	RuleMutableRev          = "mutable-rev"
	RuleDuplicateSource     = "duplicate-source"
	RuleDuplicateHook       = "duplicate-hook"
	RuleEmptyHooks          = "empty-hooks"
	RuleLocalHookIncomplete = "local-hook-incomplete"
	RuleUnexpectedRev       = "unexpected-rev"
	RuleMetaHookUnknown     = "meta-hook-unknown"
)

// Rule describes one check.
type Rule struct {
	ID          string   `json:"id"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`

	check func(c *checkContext)
}

var mutableRevs = map[string]bool{
	"main": true, "master": true, "HEAD": true,
	"trunk": true, "develop": true, "latest": true,
}

// rules is assigned in init: the check functions report through
// defaultSeverity, which reads this table.
var rules []Rule

func init() {
	rules = []Rule{
		{ID: RuleParse, Severity: SeverityError, Description: "The document is well-formed YAML with a mapping at its root."},
		{ID: RuleSchema, Severity: SeverityError, Description: "Fields have the expected list/string/boolean shape.", check: checkSchema},
		{ID: RuleMissingRev, Severity: SeverityError, Description: "Every remote hook source pins a non-empty revision.", check: checkMissingRev},
		{ID: RuleMissingHookID, Severity: SeverityError, Description: "Every hook entry has a non-empty id.", check: checkMissingHookID},
		{ID: RuleConflictingOption, Severity: SeverityError, Description: "No option is declared twice in the same mapping.", check: checkConflictingOptions},
		{ID: RuleInvalidRegex, Severity: SeverityError, Description: "files and exclude patterns compile.", check: checkPatterns},
		{ID: RuleUnknownKey, Severity: SeverityWarning, Description: "Keys are known to the hook runner.", check: checkUnknownKeys},
		{ID: RuleUnknownCIOption, Severity: SeverityWarning, Description: "ci options are known to pre-commit.ci.", check: checkUnknownCIOptions},
		{ID: RuleCISkipUnknownHook, Severity: SeverityError, Description: "ci.skip only names declared hooks.", check: checkCISkip},
		{ID: RuleMutableRev, Severity: SeverityWarning, Description: "Revision pins do not name a moving branch.", check: checkMutableRev},
		{ID: RuleDuplicateSource, Severity: SeverityWarning, Description: "A remote source is declared once.", check: checkDuplicateSources},
		{ID: RuleDuplicateHook, Severity: SeverityWarning, Description: "A source does not repeat an identical hook entry.", check: checkDuplicateHooks},
		{ID: RuleEmptyHooks, Severity: SeverityWarning, Description: "Every source declares at least one hook.", check: checkEmptyHooks},
		{ID: RuleLocalHookIncomplete, Severity: SeverityError, Description: "Local hooks declare name, entry and language.", check: checkLocalHooks},
		{ID: RuleUnexpectedRev, Severity: SeverityWarning, Description: "local and meta sources carry no revision.", check: checkUnexpectedRev},
		{ID: RuleMetaHookUnknown, Severity: SeverityError, Description: "meta hooks are ones the runner provides.", check: checkMetaHooks},
	}
}

// Rules returns every rule in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// IsRule reports whether id names a rule.
func IsRule(id string) bool {
	for _, r := range rules {
		if r.ID == id {
			return true
		}
	}
	return false
}

func checkSchema(c *checkContext) {
	if c.linter.validator == nil {
		return
	}
	violations, err := c.linter.validator.Violations(precommit.ToValue(c.doc.Root()))
	if err != nil {
		c.emit(RuleSchema, precommit.Position{Line: 1, Column: 1}, "document could not be checked against the schema: %v", err)
		return
	}
	for _, v := range violations {
		node := precommit.Lookup(c.doc.Root(), v.Pointer)
		where := v.Pointer
		if where == "" {
			where = "document"
		}
		c.emit(RuleSchema, precommit.Position{Line: node.Line, Column: node.Column}, "%s: %s", where, v.Message)
	}
}

func checkMissingRev(c *checkContext) {
	for i, src := range c.doc.Repos {
		if src.IsSentinel() || src.Repo == "" {
			continue
		}
		if strings.TrimSpace(src.Rev) == "" {
			c.emit(RuleMissingRev, src.Pos("rev"), "repos[%d] (%s) has no revision pin", i, src.Name())
		}
	}
}

func checkMissingHookID(c *checkContext) {
	for i, src := range c.doc.Repos {
		for j, hook := range src.Hooks {
			if strings.TrimSpace(hook.ID) == "" {
				c.emit(RuleMissingHookID, hook.Pos("id"), "repos[%d].hooks[%d] has no id", i, j)
			}
		}
	}
}

func checkConflictingOptions(c *checkContext) {
	walkMappings(precommit.Body(c.doc.Root()), "", func(path string, pairs []precommit.Pair) {
		first := make(map[string]precommit.Pair)
		for _, p := range pairs {
			key := p.Key.Value
			prev, seen := first[key]
			if !seen {
				first[key] = p
				continue
			}
			name := joinPath(path, key)
			pos := precommit.Position{Line: p.Key.Line, Column: p.Key.Column}
			if reflect.DeepEqual(precommit.ToValue(prev.Value), precommit.ToValue(p.Value)) {
				c.emitAs(RuleConflictingOption, SeverityWarning, pos,
					"%s is repeated with the same value (first declared on line %d)", name, prev.Key.Line)
			} else {
				c.emit(RuleConflictingOption, pos,
					"%s is declared again with a different value (first declared on line %d)", name, prev.Key.Line)
			}
		}
	})
}

func walkMappings(n *yaml.Node, path string, fn func(path string, pairs []precommit.Pair)) {
	if n == nil {
		return
	}
	switch n.Kind {
	case yaml.MappingNode:
		pairs := precommit.Pairs(n)
		fn(path, pairs)
		for _, p := range pairs {
			walkMappings(p.Value, joinPath(path, p.Key.Value), fn)
		}
	case yaml.SequenceNode:
		for i, item := range n.Content {
			walkMappings(item, fmt.Sprintf("%s[%d]", path, i), fn)
		}
	}
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func checkPatterns(c *checkContext) {
	check := func(field, pattern string, pos precommit.Position) {
		if pattern == "" {
			return
		}
		if _, err := precommit.CompilePattern(field, pattern); err != nil {
			c.emit(RuleInvalidRegex, pos, "%s pattern %q does not compile: %v", field, pattern, errorsCause(err))
		}
	}

	check("files", c.doc.Files, c.doc.Pos("files"))
	check("exclude", c.doc.Exclude, c.doc.Pos("exclude"))
	for _, src := range c.doc.Repos {
		for _, hook := range src.Hooks {
			check("files", hook.Files, hook.Pos("files"))
			check("exclude", hook.Exclude, hook.Pos("exclude"))
		}
	}
}

func errorsCause(err error) error {
	if u, ok := err.(interface{ Unwrap() error }); ok && u.Unwrap() != nil {
		return u.Unwrap()
	}
	return err
}

func checkUnknownKeys(c *checkContext) {
	body := precommit.Body(c.doc.Root())
	reportUnknown(c, precommit.Pairs(body), precommit.KnownTopLevelKeys, "top-level key")

	repos := precommit.Lookup(c.doc.Root(), "/repos")
	if repos == nil || repos.Kind != yaml.SequenceNode {
		return
	}
	for _, srcNode := range repos.Content {
		reportUnknown(c, precommit.Pairs(srcNode), precommit.KnownSourceKeys, "source key")
		for _, p := range precommit.Pairs(srcNode) {
			if p.Key.Value != "hooks" || p.Value.Kind != yaml.SequenceNode {
				continue
			}
			for _, hookNode := range p.Value.Content {
				reportUnknown(c, precommit.Pairs(hookNode), precommit.KnownHookKeys, "hook key")
			}
		}
	}
}

func reportUnknown(c *checkContext, pairs []precommit.Pair, known []string, what string) {
	for _, p := range pairs {
		if !contains(known, p.Key.Value) {
			c.emit(RuleUnknownKey, precommit.Position{Line: p.Key.Line, Column: p.Key.Column},
				"unexpected %s %q", what, p.Key.Value)
		}
	}
}

func checkUnknownCIOptions(c *checkContext) {
	for _, opt := range c.doc.CI.Options {
		if !contains(precommit.KnownCIOptions, opt.Name) {
			c.emit(RuleUnknownCIOption, opt.Position, "ci option %q is not recognised by pre-commit.ci", opt.Name)
		}
	}
}

func checkCISkip(c *checkContext) {
	skip := c.doc.CI.Settings.Skip
	if len(skip) == 0 {
		return
	}
	ids := c.doc.HookIDs()
	pos := c.doc.Pos("ci")
	for _, opt := range c.doc.CI.Options {
		if opt.Name == "skip" {
			pos = opt.Position
		}
	}
	for _, id := range skip {
		if !contains(ids, id) {
			c.emit(RuleCISkipUnknownHook, pos, "ci.skip names hook %q, which no source declares", id)
		}
	}
}

func checkMutableRev(c *checkContext) {
	for _, src := range c.doc.Repos {
		if src.IsSentinel() {
			continue
		}
		if mutableRevs[src.Rev] {
			c.emit(RuleMutableRev, src.Pos("rev"), "%s is pinned to %q, which moves; pin a tag or commit", src.Name(), src.Rev)
		}
	}
}

func checkDuplicateSources(c *checkContext) {
	seen := make(map[string]precommit.Position)
	for _, src := range c.doc.Repos {
		if src.IsSentinel() || src.Repo == "" {
			continue
		}
		key := strings.TrimSuffix(strings.TrimRight(src.Repo, "/"), ".git")
		if first, ok := seen[key]; ok {
			c.emit(RuleDuplicateSource, src.Pos("repo"), "%s is already declared on line %d", src.Repo, first.Line)
			continue
		}
		seen[key] = src.Pos("repo")
	}
}

func checkDuplicateHooks(c *checkContext) {
	for _, src := range c.doc.Repos {
		for j, hook := range src.Hooks {
			for k := 0; k < j; k++ {
				if hook.ID != "" && hook.SameAs(src.Hooks[k]) {
					c.emit(RuleDuplicateHook, hook.Position, "hook %q repeats the entry on line %d", hook.ID, src.Hooks[k].Position.Line)
					break
				}
			}
		}
	}
}

func checkEmptyHooks(c *checkContext) {
	for _, src := range c.doc.Repos {
		if src.Has("hooks") && len(src.Hooks) == 0 {
			c.emit(RuleEmptyHooks, src.Pos("hooks"), "%s declares no hooks", src.Name())
		}
	}
}

func checkLocalHooks(c *checkContext) {
	for _, src := range c.doc.Repos {
		if src.Repo != precommit.RepoLocal {
			continue
		}
		for _, hook := range src.Hooks {
			var missing []string
			if hook.Name == "" {
				missing = append(missing, "name")
			}
			if hook.Entry == "" {
				missing = append(missing, "entry")
			}
			if hook.Language == "" {
				missing = append(missing, "language")
			}
			if len(missing) > 0 {
				c.emit(RuleLocalHookIncomplete, hook.Position, "local hook %q is missing %s", hook.ID, strings.Join(missing, ", "))
			}
		}
	}
}

func checkUnexpectedRev(c *checkContext) {
	for _, src := range c.doc.Repos {
		if src.IsSentinel() && src.Has("rev") {
			c.emit(RuleUnexpectedRev, src.Pos("rev"), "%s sources are not versioned; rev is ignored", src.Repo)
		}
	}
}

func checkMetaHooks(c *checkContext) {
	for _, src := range c.doc.Repos {
		if src.Repo != precommit.RepoMeta {
			continue
		}
		for _, hook := range src.Hooks {
			if hook.ID != "" && !contains(precommit.MetaHookIDs, hook.ID) {
				c.emit(RuleMetaHookUnknown, hook.Pos("id"), "meta hook %q does not exist (expected one of %s)",
					hook.ID, strings.Join(precommit.MetaHookIDs, ", "))
			}
		}
	}
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
