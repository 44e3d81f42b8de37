package config

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/grovetools/jsonlview/errors"
	"github.com/grovetools/jsonlview/pkg/paths"
)

// Load reads, validates and returns a single configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}

	return LoadFromBytes(data, path)
}

// LoadDefault finds and loads the configuration for the current directory:
// 1. Global config ($XDG_CONFIG_HOME/jsonlview/jsonlview.yml) - base layer
// 2. Project config (jsonlview.yml found walking up) - overrides global
func LoadDefault() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to get current directory")
	}
	return LoadFrom(cwd)
}

// LoadFrom loads configuration with layered merging starting from the given
// directory.
func LoadFrom(startDir string) (*Config, error) {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	return LoadFromWithLogger(startDir, logger)
}

// LoadFromWithLogger loads configuration with layered merging and logging.
// Missing files are not an error: without any file the defaults are used.
func LoadFromWithLogger(startDir string, logger *logrus.Logger) (*Config, error) {
	layered, err := loadLayers(startDir, logger)
	if err != nil {
		return nil, err
	}

	if logger.IsLevelEnabled(logrus.DebugLevel) {
		if data, err := yaml.Marshal(layered.Final); err == nil {
			logger.Debugf("Merged configuration:\n%s", string(data))
		}
	}
	return layered.Final, nil
}

// LoadLayered loads every configuration layer without discarding the
// individual layers, for `jsonlview config`.
func LoadLayered(startDir string) (*LayeredConfig, error) {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	return loadLayers(startDir, logger)
}

func loadLayers(startDir string, logger *logrus.Logger) (*LayeredConfig, error) {
	layered := &LayeredConfig{
		Default:   Default(),
		FilePaths: make(map[ConfigSource]string),
	}

	final := &Config{}

	if globalPath := GlobalConfigPath(); globalPath != "" {
		if cfg, err := readLayer(globalPath); err == nil {
			logger.WithField("path", globalPath).Debug("Loading global configuration")
			layered.Global = cfg
			layered.FilePaths[SourceGlobal] = globalPath
			final = mergeConfigs(final, cfg)
		} else if !os.IsNotExist(err) {
			logger.WithError(err).Warn("Failed to load global configuration, continuing without it")
		}
	}

	projectPath, err := FindConfigFile(startDir)
	if err == nil && projectPath != layered.FilePaths[SourceGlobal] {
		logger.WithField("path", projectPath).Debug("Loading project configuration")
		cfg, err := readLayer(projectPath)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse project config").
				WithDetail("path", projectPath)
		}
		layered.Project = cfg
		layered.FilePaths[SourceProject] = projectPath
		final = mergeConfigs(final, cfg)
	}

	validator, err := NewSchemaValidator()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to create validator")
	}
	if err := validator.ValidateConfig(final); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigValidation, "schema validation failed")
	}

	final.SetDefaults()
	if err := final.Validate(); err != nil {
		return nil, err
	}

	layered.Final = final
	return layered, nil
}

func readLayer(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return decode(data, path)
}

// LoadFromBytes parses configuration from a file body. path selects the
// format (.toml or YAML) and is used in error details.
func LoadFromBytes(data []byte, path string) (*Config, error) {
	config, err := decode(data, path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse configuration").
			WithDetail("path", path)
	}

	validator, err := NewSchemaValidator()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to create validator")
	}
	if err := validator.ValidateConfig(config); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigValidation, "schema validation failed").
			WithDetail("path", path)
	}

	config.SetDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// FindConfigFile searches for a configuration file from startDir up to the
// filesystem root, then in the global config directory.
func FindConfigFile(startDir string) (string, error) {
	dir := startDir
	for {
		if path := findIn(dir); path != "" {
			return path, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if globalPath := GlobalConfigPath(); globalPath != "" {
		return globalPath, nil
	}

	return "", errors.ConfigNotFound(startDir).WithDetail("searchPath", startDir)
}

// GlobalConfigPath returns the first config file present in the global config
// directory, or "".
func GlobalConfigPath() string {
	dir := paths.ConfigDir()
	if dir == "" {
		return ""
	}
	return findIn(dir)
}
