package cmd

import (
	"context"
	stderrors "errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/grovetools/jsonlview/cli"
	"github.com/grovetools/jsonlview/errors"
	"github.com/grovetools/jsonlview/pkg/host"
	"github.com/grovetools/jsonlview/pkg/viewer"
	"github.com/grovetools/jsonlview/state"
	"github.com/grovetools/jsonlview/tui"
	"github.com/grovetools/jsonlview/tui/components/jsonlview"
	"github.com/grovetools/jsonlview/tui/components/picker"
)

const discoverDepth = 2

// NewViewCmd creates the interactive viewer command.
func NewViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view [FILE|DIR]",
		Short: "Open a JSONL document in the interactive viewer",
		Long: `Open a JSONL document in the interactive viewer.

With a directory, or no argument, the documents found there are listed
first. The view reloads when the file changes on disk.

Examples:
  jsonlview view events.jsonl
  jsonlview view ./logs
  jsonlview view events.jsonl --raw --no-watch`,
		Args: cobra.MaximumNArgs(1),
		RunE: runView,
	}
	cmd.Flags().Bool("raw", false, "Start in the raw view")
	cmd.Flags().Bool("no-watch", false, "Do not reload when the file changes")
	return cmd
}

func runView(cmd *cobra.Command, args []string) error {
	if !tui.IsInteractive() {
		return errors.New(errors.ErrCodeInvalidInput, "the viewer needs a terminal; use 'jsonlview print' instead")
	}

	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	path, err := resolveDocument(cmd, target)
	if err != nil || path == "" {
		return err
	}

	cfg, h, err := openDocument(cmd, path)
	if err != nil {
		return err
	}

	logger := cli.GetLogger(cmd)
	opts := jsonlview.OptionsFromConfig(cfg)
	noWatch, _ := cmd.Flags().GetBool("no-watch")
	opts.Watch = !noWatch

	statePath := state.DefaultPath()
	remembered := loadState(statePath, logger)
	if e, ok := remembered.Get(h.Path()); ok {
		if mode, err := viewer.ParseMode(e.Mode); err == nil {
			opts.Viewer.Mode = mode
		}
		opts.Search = e.Search
	}
	if raw, _ := cmd.Flags().GetBool("raw"); raw {
		opts.Viewer.Mode = viewer.ModeRaw
	}

	m := jsonlview.New(h, opts)
	defer m.Close()
	final, err := tui.Run(m, tea.WithMouseCellMotion(), tea.WithContext(contextOf(cmd)))
	if err != nil && !stderrors.Is(err, tea.ErrProgramKilled) {
		return errors.Wrap(err, errors.ErrCodeInternal, "viewer failed")
	}

	if fm, ok := final.(jsonlview.Model); ok && statePath != "" {
		ctrl := fm.Controller()
		remembered.Put(h.Path(), state.Entry{Mode: ctrl.Mode().String(), Search: ctrl.Search().Term})
		if err := state.Save(statePath, remembered); err != nil {
			logger.WithError(err).Warn("Failed to save viewer state")
		}
	}
	return nil
}

// loadState reads the remembered per-document settings. A broken state file
// is logged and ignored.
func loadState(path string, logger *logrus.Logger) state.State {
	if path == "" {
		return make(state.State)
	}
	s, err := state.Load(path)
	if err != nil {
		logger.WithError(err).Warn("Ignoring unreadable viewer state")
		return make(state.State)
	}
	return s
}

// resolveDocument returns target when it is a file. For a directory it lists
// the documents inside and lets the user pick one; "" means nothing was
// chosen.
func resolveDocument(cmd *cobra.Command, target string) (string, error) {
	info, err := os.Stat(target)
	if err != nil {
		return "", errors.ReadFailed(target, err)
	}
	if !info.IsDir() {
		return target, nil
	}

	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return "", err
	}
	discover := func() ([]string, error) {
		return host.Discover(target, cfg.Viewer.FilePatterns, discoverDepth)
	}
	paths, err := discover()
	if err != nil {
		return "", err
	}
	switch len(paths) {
	case 0:
		return "", errors.NoDocument()
	case 1:
		return paths[0], nil
	}

	p := picker.New(target, paths)
	p.Loader = discover
	final, err := tui.Run(p, tea.WithContext(contextOf(cmd)))
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeInternal, "picker failed")
	}
	return final.(picker.Model).Selected(), nil
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
