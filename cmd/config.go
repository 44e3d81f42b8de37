package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/grovetools/jsonlview/cli"
	"github.com/grovetools/jsonlview/config"
	"github.com/grovetools/jsonlview/errors"
	"github.com/grovetools/jsonlview/logging"
	"github.com/grovetools/jsonlview/tui/components/table"
)

const starterConfig = `version: "1.0"

viewer:
  batch_size: 200
  preview_limit: 220
  default_view: structured
  file_patterns: ["*.jsonl", "*.ndjson"]
  watch_debounce_ms: 150
  # editor: "code --wait"
  # keys:
  #   copy_record: ["c"]

theme:
  name: default
`

// NewConfigCmd creates the config command.
func NewConfigCmd() *cobra.Command {
	var (
		validate bool
		schema   bool
		layers   bool
		initFile bool
	)
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show, validate or initialize the configuration",
		Long: `Show the effective configuration, built by merging:
1. Global config ($XDG_CONFIG_HOME/jsonlview/jsonlview.yml)
2. Project config (jsonlview.yml found walking up from the current directory)

Examples:
  jsonlview config
  jsonlview config --layers
  jsonlview config --validate -c ./jsonlview.yml
  jsonlview config --schema > jsonlview.schema.json
  jsonlview config --init`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			ulog := logging.NewUnifiedLogger("config")
			ctx := logging.WithWriter(contextOf(cmd), cmd.ErrOrStderr())

			switch {
			case schema:
				data, err := config.GenerateSchema()
				if err != nil {
					return errors.Wrap(err, errors.ErrCodeInternal, "failed to generate schema")
				}
				fmt.Fprintln(out, string(data))
				return nil

			case initFile:
				path, err := writeStarterConfig()
				if err != nil {
					return err
				}
				ulog.Success("Wrote starter configuration").Field("path", path).Log(ctx)
				logging.NewPrettyLogger().WithWriter(cmd.ErrOrStderr()).Path("File", path)
				return nil

			case validate:
				if _, err := cli.LoadConfig(cmd); err != nil {
					return err
				}
				ulog.Success("Configuration is valid").
					Field("config", cli.GetOptions(cmd).ConfigFile).
					Log(ctx)
				return nil

			case layers:
				return printLayers(cmd)
			}

			cfg, err := cli.LoadConfig(cmd)
			if err != nil {
				return err
			}
			if cli.GetOptions(cmd).JSONOutput {
				data, err := yaml.Marshal(cfg)
				if err != nil {
					return err
				}
				fmt.Fprint(out, string(data))
				return nil
			}
			fmt.Fprintln(out, table.KeyValue(settingsRows(cfg)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&validate, "validate", false, "Validate the configuration and exit")
	cmd.Flags().BoolVar(&schema, "schema", false, "Print the configuration JSON Schema")
	cmd.Flags().BoolVar(&layers, "layers", false, "Print each configuration layer as YAML")
	cmd.Flags().BoolVar(&initFile, "init", false, "Write a starter jsonlview.yml in the current directory")
	cmd.MarkFlagsMutuallyExclusive("validate", "schema", "layers", "init")
	return cmd
}

// settingsRows lists the effective settings for display.
func settingsRows(cfg *config.Config) [][]string {
	rows := [][]string{
		{"viewer.batch_size", strconv.Itoa(cfg.Viewer.BatchSize)},
		{"viewer.preview_limit", strconv.Itoa(cfg.Viewer.PreviewLimit)},
		{"viewer.default_view", cfg.Viewer.DefaultView},
		{"viewer.file_patterns", strings.Join(cfg.Viewer.FilePatterns, ", ")},
		{"viewer.watch_debounce_ms", strconv.Itoa(cfg.Viewer.WatchDebounceMS)},
		{"viewer.editor", cfg.Viewer.Editor},
		{"theme.name", cfg.Theme.Name},
		{"theme.icons", cfg.Theme.Icons},
	}
	actions := make([]string, 0, len(cfg.Viewer.Keys))
	for action := range cfg.Viewer.Keys {
		actions = append(actions, action)
	}
	sort.Strings(actions)
	for _, action := range actions {
		rows = append(rows, []string{"viewer.keys." + action, strings.Join(cfg.Viewer.Keys[action], ", ")})
	}
	return rows
}

func printLayers(cmd *cobra.Command) error {
	cwd, err := os.Getwd()
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to get current directory")
	}
	layered, err := config.LoadLayered(cwd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printLayer := func(title, path string, cfg *config.Config) {
		if cfg == nil {
			return
		}
		fmt.Fprintf(out, "--- # %s\n", title)
		if path != "" {
			fmt.Fprintf(out, "# Source: %s\n", path)
		}
		data, _ := yaml.Marshal(cfg)
		fmt.Fprintln(out, string(data))
	}

	printLayer("DEFAULTS", "", layered.Default)
	printLayer("GLOBAL CONFIG", layered.FilePaths[config.SourceGlobal], layered.Global)
	printLayer("PROJECT CONFIG", layered.FilePaths[config.SourceProject], layered.Project)
	printLayer("FINAL MERGED CONFIG", "", layered.Final)
	return nil
}

// writeStarterConfig creates jsonlview.yml in the working directory without
// overwriting an existing file.
func writeStarterConfig() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeInternal, "failed to get current directory")
	}
	path := filepath.Join(cwd, "jsonlview.yml")
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return "", errors.New(errors.ErrCodeInvalidInput, "jsonlview.yml already exists").
				WithDetail("path", path)
		}
		return "", errors.WriteFailed(path, err)
	}
	defer f.Close()
	if _, err := f.WriteString(starterConfig); err != nil {
		return "", errors.WriteFailed(path, err)
	}
	return path, nil
}
