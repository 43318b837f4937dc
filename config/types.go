package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

//go:generate sh -c "cd .. && go run ./tools/schema-generator/"

// DefaultDocument is the pre-commit document name looked up when none is given.
const DefaultDocument = ".pre-commit-config.yaml"

// Config holds hookcheck's own settings (hookcheck.yml), not the
// pre-commit document being checked.
type Config struct {
	// Document overrides the pre-commit document file name.
	Document string `yaml:"document,omitempty" toml:"document,omitempty" mapstructure:"document" jsonschema:"description=Pre-commit document file name (default .pre-commit-config.yaml)"`
	// Strict treats warnings as failures.
	Strict *bool `yaml:"strict,omitempty" toml:"strict,omitempty" mapstructure:"strict" jsonschema:"description=Fail validation on warnings as well as errors"`

	Rules    RulesConfig    `yaml:"rules,omitempty" toml:"rules,omitempty" mapstructure:"rules" jsonschema:"description=Rule selection and severity overrides"`
	Discover DiscoverConfig `yaml:"discover,omitempty" toml:"discover,omitempty" mapstructure:"discover" jsonschema:"description=Recursive document discovery"`
	Watch    WatchConfig    `yaml:"watch,omitempty" toml:"watch,omitempty" mapstructure:"watch" jsonschema:"description=Continuous validation"`

	// Extensions captures any other top-level section, e.g. 'logging'.
	Extensions map[string]interface{} `yaml:",inline" toml:"-" mapstructure:",remain" jsonschema:"-"`
}

// RulesConfig selects rules and overrides their severity.
type RulesConfig struct {
	Disable  []string          `yaml:"disable,omitempty" toml:"disable,omitempty" mapstructure:"disable" jsonschema:"description=Rule ids that are not run"`
	Severity map[string]string `yaml:"severity,omitempty" toml:"severity,omitempty" mapstructure:"severity" jsonschema:"description=Map of rule id to error or warning"`
}

// DiscoverConfig configures recursive document discovery.
type DiscoverConfig struct {
	Ignore []string `yaml:"ignore,omitempty" toml:"ignore,omitempty" mapstructure:"ignore" jsonschema:"description=Dockerignore-style patterns skipped while walking"`
}

// WatchConfig configures the watch command.
type WatchConfig struct {
	DebounceMs int `yaml:"debounce_ms,omitempty" toml:"debounce_ms,omitempty" mapstructure:"debounce_ms" jsonschema:"description=Milliseconds to wait between re-validations"`
}

// SetDefaults applies default values to configuration
func (c *Config) SetDefaults() {
	if c.Document == "" {
		c.Document = DefaultDocument
	}
	if c.Strict == nil {
		strict := false
		c.Strict = &strict
	}
	if c.Watch.DebounceMs == 0 {
		c.Watch.DebounceMs = 200
	}
}

// IsStrict reports whether warnings fail validation.
func (c *Config) IsStrict() bool {
	return c.Strict != nil && *c.Strict
}

// UnmarshalExtension decodes a specific extension's configuration from the
// loaded settings into the provided target struct. The target must be a pointer.
//
// Example:
//
//	var logCfg logging.Config
//	err := cfg.UnmarshalExtension("logging", &logCfg)
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		// It's not an error if the key doesn't exist.
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "yaml",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}

// ConfigSource identifies the origin of a configuration layer.
type ConfigSource string

const (
	SourceDefault   ConfigSource = "default"
	SourceGlobal    ConfigSource = "global"
	SourceProject   ConfigSource = "project"
	SourcePyproject ConfigSource = "pyproject"
	SourceExplicit  ConfigSource = "explicit"
)

// Layer is one configuration source and its raw contents.
type Layer struct {
	Source ConfigSource
	Path   string
	Config *Config
}

// LayeredConfig holds every layer that was found, in merge order, and the
// final merged configuration.
type LayeredConfig struct {
	Layers []Layer
	Final  *Config
}
