package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grovetools/jsonlview/errors"
	"github.com/grovetools/jsonlview/logging"
	"github.com/grovetools/jsonlview/pkg/viewer"
)

type replaceOptions struct {
	find   string
	with   string
	nth    int
	all    bool
	dryRun bool
}

// NewReplaceCmd creates the batch search and replace command.
func NewReplaceCmd() *cobra.Command {
	var opts replaceOptions
	cmd := &cobra.Command{
		Use:   "replace FILE",
		Short: "Replace text in a JSONL document",
		Long: `Replace occurrences of a term in a JSONL document. Matching is
case-insensitive and counted over the whole document. Without --nth or
--all the first occurrence is replaced.

Examples:
  jsonlview replace events.jsonl --find staging --with prod --all
  jsonlview replace events.jsonl --find 500 --with 503 --nth 2
  jsonlview replace events.jsonl --find foo --with bar --all --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplace(cmd, args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.find, "find", "", "Text to search for")
	cmd.Flags().StringVar(&opts.with, "with", "", "Replacement text")
	cmd.Flags().IntVar(&opts.nth, "nth", 0, "Replace only the Nth occurrence (1-based)")
	cmd.Flags().BoolVar(&opts.all, "all", false, "Replace every occurrence")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print the result instead of writing the file")
	_ = cmd.MarkFlagRequired("find")
	cmd.MarkFlagsMutuallyExclusive("nth", "all")
	return cmd
}

func runReplace(cmd *cobra.Command, path string, opts replaceOptions) error {
	if opts.find == "" {
		return errors.New(errors.ErrCodeInvalidInput, "--find must not be empty")
	}
	if opts.nth < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "--nth must be positive")
	}

	cfg, h, err := openDocument(cmd, path)
	if err != nil {
		return err
	}
	text, err := h.Load()
	if err != nil {
		return err
	}

	var host viewer.Host = h
	if opts.dryRun {
		host = nil
	}
	ctrl := viewer.New(host, viewer.Options{BatchSize: cfg.Viewer.BatchSize})
	ctrl.LoadDocument(text)
	ctrl.SetSearchTerm(opts.find)

	ulog := logging.NewUnifiedLogger("replace")
	ctx := logging.WithWriter(contextOf(cmd), cmd.ErrOrStderr())
	count := ctrl.Search().Count
	if count == 0 {
		ulog.Status(fmt.Sprintf("No occurrences of %q", opts.find)).
			Field("path", h.Path()).
			Field("term", opts.find).
			Log(ctx)
		return nil
	}

	replaced := 0
	switch {
	case opts.all:
		replaced, err = ctrl.ReplaceAll(opts.with)
	default:
		n := max(opts.nth, 1)
		if n > count {
			return errors.New(errors.ErrCodeInvalidInput,
				fmt.Sprintf("--nth %d is out of range, the document has %d occurrences", n, count))
		}
		for i := 1; i < n; i++ {
			ctrl.NextMatch()
		}
		var changed bool
		changed, err = ctrl.ReplaceCurrent(opts.with)
		if changed {
			replaced = 1
		}
	}
	if err != nil {
		return err
	}

	if opts.dryRun {
		fmt.Fprint(cmd.OutOrStdout(), ctrl.SerializeDocument())
		ulog.Status(fmt.Sprintf("Would replace %d of %d occurrences", replaced, count)).
			Field("path", h.Path()).
			Field("count", replaced).
			Field("dry_run", true).
			Log(ctx)
		return nil
	}
	ulog.Success(fmt.Sprintf("Replaced %d occurrences in %s", replaced, h.Path())).
		Field("path", h.Path()).
		Field("term", opts.find).
		Field("count", replaced).
		Log(ctx)
	return nil
}
