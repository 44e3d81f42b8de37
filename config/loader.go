package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// configNames are the file names searched for, in order of precedence.
var configNames = []string{
	"jsonlview.yml",
	"jsonlview.yaml",
	"jsonlview.toml",
	".jsonlview.yml",
	".jsonlview.yaml",
	".jsonlview.toml",
}

// knownKeys are the top-level keys decoded into Config fields; everything else
// is an extension.
var knownKeys = map[string]bool{
	"version": true,
	"viewer":  true,
	"theme":   true,
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// decode parses a configuration file body. TOML is used for .toml paths,
// YAML for everything else. ${VAR} references are expanded first.
func decode(data []byte, path string) (*Config, error) {
	expanded := []byte(expandEnvVars(string(data)))

	var cfg Config
	if !isTOML(path) {
		if err := yaml.Unmarshal(expanded, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}

	if err := toml.Unmarshal(expanded, &cfg); err != nil {
		return nil, err
	}
	var raw map[string]interface{}
	if err := toml.Unmarshal(expanded, &raw); err != nil {
		return nil, err
	}
	for key, value := range raw {
		if knownKeys[key] {
			continue
		}
		if cfg.Extensions == nil {
			cfg.Extensions = make(map[string]interface{})
		}
		cfg.Extensions[key] = value
	}
	return &cfg, nil
}

// expandEnvVars replaces ${VAR} with environment variable values.
// ${VAR:-default} falls back to default when VAR is unset or empty.
func expandEnvVars(content string) string {
	return envVarRegex.ReplaceAllStringFunc(content, func(match string) string {
		varName := envVarRegex.FindStringSubmatch(match)[1]

		parts := strings.SplitN(varName, ":-", 2)
		varName = parts[0]
		defaultValue := ""
		if len(parts) > 1 {
			defaultValue = parts[1]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}
		return defaultValue
	})
}

// findIn returns the first config file present in dir.
func findIn(dir string) string {
	for _, name := range configNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}
