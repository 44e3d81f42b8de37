package config

// mergeConfigs merges override configuration into base. Set fields of
// override win; extension sections are replaced key by key.
func mergeConfigs(base, override *Config) *Config {
	result := *base

	if override.Version != "" {
		result.Version = override.Version
	}

	v := override.Viewer
	if v.BatchSize != 0 {
		result.Viewer.BatchSize = v.BatchSize
	}
	if v.PreviewLimit != 0 {
		result.Viewer.PreviewLimit = v.PreviewLimit
	}
	if v.DefaultView != "" {
		result.Viewer.DefaultView = v.DefaultView
	}
	if len(v.FilePatterns) > 0 {
		result.Viewer.FilePatterns = append([]string(nil), v.FilePatterns...)
	}
	if v.WatchDebounceMS != 0 {
		result.Viewer.WatchDebounceMS = v.WatchDebounceMS
	}
	if v.Editor != "" {
		result.Viewer.Editor = v.Editor
	}
	if len(v.Keys) > 0 {
		keys := make(map[string][]string, len(base.Viewer.Keys)+len(v.Keys))
		for action, bindings := range base.Viewer.Keys {
			keys[action] = bindings
		}
		for action, bindings := range v.Keys {
			keys[action] = bindings
		}
		result.Viewer.Keys = keys
	}

	if override.Theme.Name != "" {
		result.Theme.Name = override.Theme.Name
	}
	if override.Theme.Icons != "" {
		result.Theme.Icons = override.Theme.Icons
	}

	if len(override.Extensions) > 0 {
		ext := make(map[string]interface{}, len(base.Extensions)+len(override.Extensions))
		for k, val := range base.Extensions {
			ext[k] = val
		}
		for k, val := range override.Extensions {
			ext[k] = val
		}
		result.Extensions = ext
	}

	return &result
}
