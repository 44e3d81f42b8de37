// Package cmd implements the jsonlview subcommands.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/grovetools/jsonlview/cli"
	"github.com/grovetools/jsonlview/version"
)

// NewRootCmd builds the jsonlview command tree. Running the root with a file
// argument is the same as `jsonlview view`.
func NewRootCmd() *cobra.Command {
	root := cli.NewStandardCommand("jsonlview", "View, search and edit JSON Lines files")
	root.Long = `Browse JSONL documents as colorized, collapsible records.

Examples:
  jsonlview events.jsonl
  jsonlview print events.jsonl --search timeout
  jsonlview replace events.jsonl --find staging --with prod --all
  jsonlview tail -f service.jsonl`
	root.SilenceUsage = true
	root.SilenceErrors = true

	view := NewViewCmd()
	root.Args = cobra.MaximumNArgs(1)
	root.Flags().AddFlagSet(view.Flags())
	root.RunE = view.RunE

	root.AddCommand(
		view,
		NewPrintCmd(),
		NewReplaceCmd(),
		NewTailCmd(),
		NewConfigCmd(),
		NewKeysCmd(),
		cli.NewVersionCommand("jsonlview", version.GetInfo()),
	)

	cli.SetVersionTemplate(root, version.GetInfo())
	cli.ApplyStyledHelpRecursive(root)
	return root
}
