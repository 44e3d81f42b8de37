package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Defaults applied by SetDefaults.
const (
	DefaultVersion         = "1.0"
	DefaultBatchSize       = 200
	DefaultPreviewLimit    = 220
	DefaultView            = "structured"
	DefaultWatchDebounceMS = 150
	DefaultThemeName       = "default"
)

// DefaultFilePatterns are the file names treated as JSONL documents.
var DefaultFilePatterns = []string{"*.jsonl", "*.ndjson"}

// ViewerConfig holds the settings of the document viewer.
type ViewerConfig struct {
	BatchSize       int                 `yaml:"batch_size,omitempty" toml:"batch_size,omitempty" json:"batch_size,omitempty" jsonschema:"description=Records rendered per batch in structured view,minimum=1"`
	PreviewLimit    int                 `yaml:"preview_limit,omitempty" toml:"preview_limit,omitempty" json:"preview_limit,omitempty" jsonschema:"description=Characters shown in a collapsed record preview,minimum=1"`
	DefaultView     string              `yaml:"default_view,omitempty" toml:"default_view,omitempty" json:"default_view,omitempty" jsonschema:"description=View mode used when a document is opened,enum=structured,enum=raw"`
	FilePatterns    []string            `yaml:"file_patterns,omitempty" toml:"file_patterns,omitempty" json:"file_patterns,omitempty" jsonschema:"description=File name patterns accepted as JSONL documents"`
	WatchDebounceMS int                 `yaml:"watch_debounce_ms,omitempty" toml:"watch_debounce_ms,omitempty" json:"watch_debounce_ms,omitempty" jsonschema:"description=Delay in milliseconds before reloading after an external change,minimum=0"`
	Editor          string              `yaml:"editor,omitempty" toml:"editor,omitempty" json:"editor,omitempty" jsonschema:"description=Command used by 'open as text' (defaults to $VISUAL or $EDITOR)"`
	Keys            map[string][]string `yaml:"keys,omitempty" toml:"keys,omitempty" json:"keys,omitempty" jsonschema:"description=Key binding overrides by action name"`
}

// ThemeConfig selects the color theme.
type ThemeConfig struct {
	Name  string `yaml:"name,omitempty" toml:"name,omitempty" json:"name,omitempty" jsonschema:"description=Color theme,enum=default,enum=terminal,enum=mono"`
	Icons string `yaml:"icons,omitempty" toml:"icons,omitempty" json:"icons,omitempty" jsonschema:"description=Icon set used in status lines,enum=nerd,enum=ascii"`
}

// Config is the top-level jsonlview configuration.
type Config struct {
	Version string       `yaml:"version" toml:"version" json:"version" jsonschema:"description=Configuration version (e.g. 1.0)"`
	Viewer  ViewerConfig `yaml:"viewer,omitempty" toml:"viewer,omitempty" json:"viewer,omitempty" jsonschema:"description=Document viewer settings"`
	Theme   ThemeConfig  `yaml:"theme,omitempty" toml:"theme,omitempty" json:"theme,omitempty" jsonschema:"description=Theme settings"`

	// Extensions captures all other top-level keys for extensibility.
	Extensions map[string]interface{} `yaml:",inline" toml:"-" json:"-" jsonschema:"-"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	c := &Config{}
	c.SetDefaults()
	return c
}

// SetDefaults fills in unset fields.
func (c *Config) SetDefaults() {
	if c.Version == "" {
		c.Version = DefaultVersion
	}
	if c.Viewer.BatchSize == 0 {
		c.Viewer.BatchSize = DefaultBatchSize
	}
	if c.Viewer.PreviewLimit == 0 {
		c.Viewer.PreviewLimit = DefaultPreviewLimit
	}
	if c.Viewer.DefaultView == "" {
		c.Viewer.DefaultView = DefaultView
	}
	if len(c.Viewer.FilePatterns) == 0 {
		c.Viewer.FilePatterns = append([]string(nil), DefaultFilePatterns...)
	}
	if c.Viewer.WatchDebounceMS == 0 {
		c.Viewer.WatchDebounceMS = DefaultWatchDebounceMS
	}
	if c.Theme.Name == "" {
		c.Theme.Name = DefaultThemeName
	}
}

// UnmarshalExtension decodes a specific extension's configuration from the
// loaded jsonlview.yml into the provided target struct. The target must be a
// pointer.
//
// Example:
//
//	var logCfg logging.Config
//	err := cfg.UnmarshalExtension("logging", &logCfg)
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		// A missing key leaves the target zero-valued.
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

// ConfigSource identifies the origin of a configuration value.
type ConfigSource string

const (
	SourceDefault ConfigSource = "default"
	SourceGlobal  ConfigSource = "global"
	SourceProject ConfigSource = "project"
)

// LayeredConfig keeps every configuration layer separately, plus the merged
// result, for `jsonlview config`.
type LayeredConfig struct {
	Default   *Config
	Global    *Config
	Project   *Config
	Final     *Config
	FilePaths map[ConfigSource]string
}
