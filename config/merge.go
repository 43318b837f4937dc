package config

// mergeConfigs merges override configuration into base. Scalars in override
// win when set, lists are replaced, maps are merged key by key.
func mergeConfigs(base, override *Config) *Config {
	result := *base

	if override.Document != "" {
		result.Document = override.Document
	}
	if override.Strict != nil {
		strict := *override.Strict
		result.Strict = &strict
	}

	if override.Rules.Disable != nil {
		result.Rules.Disable = append([]string(nil), override.Rules.Disable...)
	}
	if len(override.Rules.Severity) > 0 {
		merged := make(map[string]string, len(base.Rules.Severity)+len(override.Rules.Severity))
		for k, v := range base.Rules.Severity {
			merged[k] = v
		}
		for k, v := range override.Rules.Severity {
			merged[k] = v
		}
		result.Rules.Severity = merged
	}

	if override.Discover.Ignore != nil {
		result.Discover.Ignore = append([]string(nil), override.Discover.Ignore...)
	}
	if override.Watch.DebounceMs != 0 {
		result.Watch.DebounceMs = override.Watch.DebounceMs
	}

	if len(override.Extensions) > 0 {
		merged := make(map[string]interface{}, len(base.Extensions)+len(override.Extensions))
		for k, v := range base.Extensions {
			merged[k] = v
		}
		for k, v := range override.Extensions {
			merged[k] = v
		}
		result.Extensions = merged
	}

	return &result
}
