package config

import (
	"fmt"
	"regexp"

	"github.com/grovetools/hookcheck/errors"
)

var ruleIDRegex = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	for _, id := range c.Rules.Disable {
		if !ruleIDRegex.MatchString(id) {
			return errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("invalid rule id in rules.disable: %q", id)).
				WithDetail("rule", id)
		}
	}

	for id, severity := range c.Rules.Severity {
		if !ruleIDRegex.MatchString(id) {
			return errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("invalid rule id in rules.severity: %q", id)).
				WithDetail("rule", id)
		}
		if severity != "error" && severity != "warning" {
			return errors.New(errors.ErrCodeConfigValidation,
				fmt.Sprintf("severity for rule %q must be 'error' or 'warning', got %q", id, severity)).
				WithDetail("rule", id).
				WithDetail("severity", severity)
		}
	}

	for _, pattern := range c.Discover.Ignore {
		if pattern == "" {
			return errors.New(errors.ErrCodeConfigValidation, "discover.ignore cannot contain an empty pattern")
		}
	}

	if c.Watch.DebounceMs < 0 {
		return errors.New(errors.ErrCodeConfigValidation, "watch.debounce_ms cannot be negative").
			WithDetail("debounceMs", c.Watch.DebounceMs)
	}

	return nil
}
