package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grovetools/jsonlview/cli"
	"github.com/grovetools/jsonlview/tui/components/jsonlview"
	"github.com/grovetools/jsonlview/tui/components/table"
	"github.com/grovetools/jsonlview/tui/keymap"
	"github.com/grovetools/jsonlview/tui/theme"
)

// NewKeysCmd creates the command that lists the viewer key bindings.
func NewKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List the viewer key bindings",
		Long: `List the key bindings of the interactive viewer, including overrides
from viewer.keys in the configuration. The config key column names the
entry to use to rebind an action.

Examples:
  jsonlview keys
  jsonlview keys --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.LoadConfig(cmd)
			if err != nil {
				return err
			}
			sections := keymap.Export(jsonlview.LoadKeyMap(cfg))

			out := cmd.OutOrStdout()
			if cli.GetOptions(cmd).JSONOutput {
				data, err := json.MarshalIndent(sections, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			t := theme.DefaultTheme
			for _, s := range sections {
				rows := make([][]string, 0, len(s.Bindings))
				for _, b := range s.Bindings {
					rows = append(rows, []string{strings.Join(b.Keys, " "), b.Description, b.ConfigKey})
				}
				fmt.Fprintln(out, t.Title.Render(s.Name))
				fmt.Fprintln(out, table.Render([]string{"Keys", "Action", "Config key"}, rows))
			}
			return nil
		},
	}
}
