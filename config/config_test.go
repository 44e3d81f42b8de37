package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/grovetools/jsonlview/errors"
)

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("JSONLVIEW_HOME", home)
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// TestExtensions verifies that unknown top-level sections are kept as extensions
func TestExtensions(t *testing.T) {
	yamlContent := []byte(`
version: "1.0"
viewer:
  batch_size: 50

logging:
  level: debug
  file:
    enabled: true
    path: /tmp/jsonlview.log

monitoring:
  enabled: true
  interval: 30
`)

	cfg, err := LoadFromBytes(yamlContent, "jsonlview.yml")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Viewer.BatchSize != 50 {
		t.Errorf("Expected batch_size 50, got %d", cfg.Viewer.BatchSize)
	}

	type LogConfig struct {
		Level string `yaml:"level"`
		File  struct {
			Enabled bool   `yaml:"enabled"`
			Path    string `yaml:"path"`
		} `yaml:"file"`
	}

	var logCfg LogConfig
	if err := cfg.UnmarshalExtension("logging", &logCfg); err != nil {
		t.Fatalf("Failed to unmarshal logging extension: %v", err)
	}
	if logCfg.Level != "debug" || !logCfg.File.Enabled || logCfg.File.Path != "/tmp/jsonlview.log" {
		t.Errorf("Unexpected logging extension: %+v", logCfg)
	}

	type MonitoringConfig struct {
		Enabled  bool `yaml:"enabled"`
		Interval int  `yaml:"interval"`
	}
	var monCfg MonitoringConfig
	if err := cfg.UnmarshalExtension("monitoring", &monCfg); err != nil {
		t.Fatalf("Failed to unmarshal monitoring extension: %v", err)
	}
	if !monCfg.Enabled || monCfg.Interval != 30 {
		t.Errorf("Unexpected monitoring extension: %+v", monCfg)
	}

	// Missing extensions leave the target untouched
	var missing MonitoringConfig
	if err := cfg.UnmarshalExtension("absent", &missing); err != nil {
		t.Fatalf("Unexpected error for missing extension: %v", err)
	}
	if missing.Enabled {
		t.Error("Missing extension should leave target zero-valued")
	}
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	if cfg.Version != DefaultVersion {
		t.Errorf("Expected version %s, got %s", DefaultVersion, cfg.Version)
	}
	if cfg.Viewer.BatchSize != 200 {
		t.Errorf("Expected batch size 200, got %d", cfg.Viewer.BatchSize)
	}
	if cfg.Viewer.PreviewLimit != 220 {
		t.Errorf("Expected preview limit 220, got %d", cfg.Viewer.PreviewLimit)
	}
	if cfg.Viewer.DefaultView != "structured" {
		t.Errorf("Expected structured view, got %s", cfg.Viewer.DefaultView)
	}
	if len(cfg.Viewer.FilePatterns) != 2 {
		t.Errorf("Expected default file patterns, got %v", cfg.Viewer.FilePatterns)
	}
	if cfg.Viewer.WatchDebounceMS != 150 {
		t.Errorf("Expected debounce 150, got %d", cfg.Viewer.WatchDebounceMS)
	}

	// Defaults must not alias the package-level pattern list
	cfg.Viewer.FilePatterns[0] = "changed"
	if DefaultFilePatterns[0] != "*.jsonl" {
		t.Error("SetDefaults aliased DefaultFilePatterns")
	}
}

func TestLoadTOML(t *testing.T) {
	tomlContent := []byte(`
version = "1.0"

[viewer]
batch_size = 25
default_view = "raw"
file_patterns = ["*.log"]

[viewer.keys]
quit = ["ctrl+q"]

[logging]
level = "warn"
`)

	cfg, err := LoadFromBytes(tomlContent, "jsonlview.toml")
	if err != nil {
		t.Fatalf("Failed to load TOML config: %v", err)
	}

	if cfg.Viewer.BatchSize != 25 {
		t.Errorf("Expected batch_size 25, got %d", cfg.Viewer.BatchSize)
	}
	if cfg.Viewer.DefaultView != "raw" {
		t.Errorf("Expected raw view, got %s", cfg.Viewer.DefaultView)
	}
	if got := cfg.Viewer.Keys["quit"]; len(got) != 1 || got[0] != "ctrl+q" {
		t.Errorf("Expected quit override, got %v", got)
	}
	if _, ok := cfg.Extensions["viewer"]; ok {
		t.Error("Known keys must not be captured as extensions")
	}

	var logCfg struct {
		Level string `yaml:"level"`
	}
	if err := cfg.UnmarshalExtension("logging", &logCfg); err != nil {
		t.Fatal(err)
	}
	if logCfg.Level != "warn" {
		t.Errorf("Expected warn level, got %s", logCfg.Level)
	}
}

func TestEnvExpansion(t *testing.T) {
	t.Setenv("JSONLVIEW_TEST_EDITOR", "nvim")

	cfg, err := LoadFromBytes([]byte(`
viewer:
  editor: ${JSONLVIEW_TEST_EDITOR}
theme:
  name: ${JSONLVIEW_TEST_THEME:-mono}
`), "jsonlview.yml")
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Viewer.Editor != "nvim" {
		t.Errorf("Expected editor nvim, got %s", cfg.Viewer.Editor)
	}
	if cfg.Theme.Name != "mono" {
		t.Errorf("Expected theme fallback mono, got %s", cfg.Theme.Name)
	}
}

func TestSchemaRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown view", "viewer:\n  default_view: sideways\n"},
		{"negative batch", "viewer:\n  batch_size: -1\n"},
		{"bad logging level", "logging:\n  level: loud\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromBytes([]byte(tt.content), "jsonlview.yml")
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !errors.Is(err, errors.ErrCodeConfigValidation) {
				t.Errorf("Expected CONFIG_VALIDATION, got %v", errors.GetCode(err))
			}
		})
	}
}

func TestInvalidYAML(t *testing.T) {
	_, err := LoadFromBytes([]byte("viewer: [unclosed"), "jsonlview.yml")
	if !errors.Is(err, errors.ErrCodeConfigInvalid) {
		t.Fatalf("Expected CONFIG_INVALID, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if !errors.Is(err, errors.ErrCodeConfigNotFound) {
		t.Fatalf("Expected CONFIG_NOT_FOUND, got %v", err)
	}
}

func TestLoadFromWithoutFiles(t *testing.T) {
	isolateHome(t)

	cfg, err := LoadFrom(t.TempDir())
	if err != nil {
		t.Fatalf("Expected defaults without config files, got %v", err)
	}
	if cfg.Viewer.BatchSize != DefaultBatchSize {
		t.Errorf("Expected default batch size, got %d", cfg.Viewer.BatchSize)
	}
}

func TestLayeredLoading(t *testing.T) {
	home := isolateHome(t)
	writeFile(t, filepath.Join(home, "config", "jsonlview.yml"), `
viewer:
  batch_size: 10
  editor: vim
  keys:
    quit: ["q"]
theme:
  name: mono
`)

	project := t.TempDir()
	writeFile(t, filepath.Join(project, "jsonlview.yml"), `
viewer:
  batch_size: 20
  keys:
    copy: ["c"]
`)
	nested := filepath.Join(project, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	layered, err := LoadLayered(nested)
	if err != nil {
		t.Fatalf("LoadLayered failed: %v", err)
	}

	if layered.Global == nil || layered.Project == nil {
		t.Fatal("Expected both global and project layers")
	}
	if layered.FilePaths[SourceProject] != filepath.Join(project, "jsonlview.yml") {
		t.Errorf("Unexpected project path %s", layered.FilePaths[SourceProject])
	}

	final := layered.Final
	if final.Viewer.BatchSize != 20 {
		t.Errorf("Project batch size should win, got %d", final.Viewer.BatchSize)
	}
	if final.Viewer.Editor != "vim" {
		t.Errorf("Global editor should be kept, got %s", final.Viewer.Editor)
	}
	if final.Theme.Name != "mono" {
		t.Errorf("Global theme should be kept, got %s", final.Theme.Name)
	}
	if len(final.Viewer.Keys) != 2 {
		t.Errorf("Key overrides should merge, got %v", final.Viewer.Keys)
	}
	if final.Viewer.PreviewLimit != DefaultPreviewLimit {
		t.Errorf("Defaults should fill unset values, got %d", final.Viewer.PreviewLimit)
	}
}

func TestFindConfigFileWalksUp(t *testing.T) {
	isolateHome(t)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".jsonlview.toml"), "version = \"1.0\"\n")
	dir := filepath.Join(root, "x", "y")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}

	path, err := FindConfigFile(dir)
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(root, ".jsonlview.toml") {
		t.Errorf("Unexpected config path %s", path)
	}
}

func TestValidateFilePatterns(t *testing.T) {
	cfg := Default()
	cfg.Viewer.FilePatterns = []string{"[invalid"}
	if err := cfg.Validate(); !errors.Is(err, errors.ErrCodeConfigValidation) {
		t.Fatalf("Expected pattern validation error, got %v", err)
	}
}
