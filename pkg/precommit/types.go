package precommit

import (
	"gopkg.in/yaml.v3"
)

// Sentinel repository locators that do not name a remote hook source.
const (
	RepoLocal = "local"
	RepoMeta  = "meta"
)

// DocumentNames are the file names the pre-commit runner reads, in order of preference.
var DocumentNames = []string{
	".pre-commit-config.yaml",
	".pre-commit-config.yml",
}

// Position is a 1-based line/column location inside a document.
type Position struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

func positionOf(n *yaml.Node) Position {
	if n == nil {
		return Position{}
	}
	return Position{Line: n.Line, Column: n.Column}
}

// Document is a parsed pre-commit configuration.
type Document struct {
	Path string `json:"path,omitempty" yaml:"-"`

	CI    CI           `json:"ci" yaml:"ci,omitempty"`
	Repos []HookSource `json:"repos" yaml:"repos"`

	DefaultInstallHookTypes []string          `json:"default_install_hook_types,omitempty" yaml:"default_install_hook_types,omitempty"`
	DefaultLanguageVersion  map[string]string `json:"default_language_version,omitempty" yaml:"default_language_version,omitempty"`
	DefaultStages           []string          `json:"default_stages,omitempty" yaml:"default_stages,omitempty"`
	Files                   string            `json:"files,omitempty" yaml:"files,omitempty"`
	Exclude                 string            `json:"exclude,omitempty" yaml:"exclude,omitempty"`
	FailFast                bool              `json:"fail_fast,omitempty" yaml:"fail_fast,omitempty"`
	MinimumPreCommitVersion string            `json:"minimum_pre_commit_version,omitempty" yaml:"minimum_pre_commit_version,omitempty"`

	root   *yaml.Node
	fields map[string]Position
}

// CI holds the settings block consumed by the pre-commit.ci bot.
type CI struct {
	// Options preserves every declared option in document order,
	// including repeated keys.
	Options []CIOption `json:"options,omitempty" yaml:"-"`
	// Settings is the typed view of Options, last declaration wins.
	Settings CISettings `json:"settings" yaml:"settings"`
}

// CIOption is a single "name: value" line of the ci block.
type CIOption struct {
	Name     string      `json:"name"`
	Value    interface{} `json:"value"`
	Position Position    `json:"position"`
}

// CISettings are the options pre-commit.ci understands.
type CISettings struct {
	AutofixCommitMsg    string                 `mapstructure:"autofix_commit_msg" json:"autofix_commit_msg,omitempty" yaml:"autofix_commit_msg,omitempty"`
	AutofixPRs          *bool                  `mapstructure:"autofix_prs" json:"autofix_prs,omitempty" yaml:"autofix_prs,omitempty"`
	AutoupdateBranch    string                 `mapstructure:"autoupdate_branch" json:"autoupdate_branch,omitempty" yaml:"autoupdate_branch,omitempty"`
	AutoupdateCommitMsg string                 `mapstructure:"autoupdate_commit_msg" json:"autoupdate_commit_msg,omitempty" yaml:"autoupdate_commit_msg,omitempty"`
	AutoupdateSchedule  string                 `mapstructure:"autoupdate_schedule" json:"autoupdate_schedule,omitempty" yaml:"autoupdate_schedule,omitempty"`
	Skip                []string               `mapstructure:"skip" json:"skip,omitempty" yaml:"skip,omitempty"`
	Submodules          *bool                  `mapstructure:"submodules" json:"submodules,omitempty" yaml:"submodules,omitempty"`
	Extra               map[string]interface{} `mapstructure:",remain" json:"extra,omitempty" yaml:"extra,omitempty"`
}

// KnownCIOptions lists the ci keys pre-commit.ci documents.
var KnownCIOptions = []string{
	"autofix_commit_msg",
	"autofix_prs",
	"autoupdate_branch",
	"autoupdate_commit_msg",
	"autoupdate_schedule",
	"skip",
	"submodules",
}

// HookSource is one entry of the repos list.
type HookSource struct {
	Repo     string      `json:"repo" yaml:"repo"`
	Rev      string      `json:"rev,omitempty" yaml:"rev,omitempty"`
	Hooks    []HookEntry `json:"hooks" yaml:"hooks"`
	Position Position    `json:"position" yaml:"-"`

	fields map[string]Position
}

// HookEntry configures one hook of a source.
type HookEntry struct {
	ID                     string   `json:"id" yaml:"id"`
	Alias                  string   `json:"alias,omitempty" yaml:"alias,omitempty"`
	Name                   string   `json:"name,omitempty" yaml:"name,omitempty"`
	Entry                  string   `json:"entry,omitempty" yaml:"entry,omitempty"`
	Language               string   `json:"language,omitempty" yaml:"language,omitempty"`
	LanguageVersion        string   `json:"language_version,omitempty" yaml:"language_version,omitempty"`
	Files                  string   `json:"files,omitempty" yaml:"files,omitempty"`
	Exclude                string   `json:"exclude,omitempty" yaml:"exclude,omitempty"`
	Types                  []string `json:"types,omitempty" yaml:"types,omitempty"`
	TypesOr                []string `json:"types_or,omitempty" yaml:"types_or,omitempty"`
	ExcludeTypes           []string `json:"exclude_types,omitempty" yaml:"exclude_types,omitempty"`
	Args                   []string `json:"args,omitempty" yaml:"args,omitempty"`
	AdditionalDependencies []string `json:"additional_dependencies,omitempty" yaml:"additional_dependencies,omitempty"`
	Stages                 []string `json:"stages,omitempty" yaml:"stages,omitempty"`
	AlwaysRun              *bool    `json:"always_run,omitempty" yaml:"always_run,omitempty"`
	PassFilenames          *bool    `json:"pass_filenames,omitempty" yaml:"pass_filenames,omitempty"`
	Verbose                bool     `json:"verbose,omitempty" yaml:"verbose,omitempty"`
	Position               Position `json:"position" yaml:"-"`

	fields map[string]Position
}

// KnownHookKeys are the keys a hook entry may carry.
var KnownHookKeys = []string{
	"id", "alias", "name", "entry", "language", "language_version",
	"files", "exclude", "types", "types_or", "exclude_types",
	"args", "additional_dependencies", "stages", "always_run",
	"pass_filenames", "require_serial", "verbose", "log_file",
	"description", "minimum_pre_commit_version",
}

// KnownSourceKeys are the keys a hook source may carry.
var KnownSourceKeys = []string{"repo", "rev", "hooks"}

// KnownTopLevelKeys are the keys the document root may carry.
var KnownTopLevelKeys = []string{
	"ci", "repos", "default_install_hook_types", "default_language_version",
	"default_stages", "files", "exclude", "fail_fast", "minimum_pre_commit_version",
}

// MetaHookIDs are the hooks available from the meta source.
var MetaHookIDs = []string{"check-hooks-apply", "check-useless-excludes", "identity"}

// Tuple is the flattened view the hook runner consumes: one row per hook entry.
type Tuple struct {
	Source  string   `json:"source" yaml:"source"`
	Rev     string   `json:"rev" yaml:"rev"`
	HookID  string   `json:"hook_id" yaml:"hook_id"`
	Args    []string `json:"args" yaml:"args"`
	Exclude string   `json:"exclude,omitempty" yaml:"exclude,omitempty"`
}

// IsSentinel reports whether the source is local or meta.
func (s HookSource) IsSentinel() bool {
	return s.Repo == RepoLocal || s.Repo == RepoMeta
}

// Name returns a short display name for the source locator,
// e.g. "pre-commit-hooks" for https://github.com/pre-commit/pre-commit-hooks.
func (s HookSource) Name() string {
	return shortName(s.Repo)
}

// Pos returns the position of a field's value, or of the source itself
// when the field is absent.
func (s HookSource) Pos(field string) Position {
	if p, ok := s.fields[field]; ok {
		return p
	}
	return s.Position
}

// Has reports whether the field was declared.
func (s HookSource) Has(field string) bool {
	_, ok := s.fields[field]
	return ok
}

// Pos returns the position of a field's value, or of the entry itself
// when the field is absent.
func (h HookEntry) Pos(field string) Position {
	if p, ok := h.fields[field]; ok {
		return p
	}
	return h.Position
}

// Has reports whether the field was declared.
func (h HookEntry) Has(field string) bool {
	_, ok := h.fields[field]
	return ok
}

// DisplayID returns the alias when one is set, otherwise the id.
func (h HookEntry) DisplayID() string {
	if h.Alias != "" {
		return h.Alias
	}
	return h.ID
}

// Root returns the YAML node tree the document was decoded from.
func (d *Document) Root() *yaml.Node {
	return d.root
}

// Pos returns the position of a top-level key's value.
func (d *Document) Pos(field string) Position {
	if p, ok := d.fields[field]; ok {
		return p
	}
	return Position{Line: 1, Column: 1}
}

// Has reports whether the top-level key was declared.
func (d *Document) Has(field string) bool {
	_, ok := d.fields[field]
	return ok
}
