package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/grovetools/jsonlview/errors"
	"github.com/grovetools/jsonlview/pkg/colorize"
	"github.com/grovetools/jsonlview/pkg/follow"
	"github.com/grovetools/jsonlview/pkg/record"
	"github.com/grovetools/jsonlview/tui"
	"github.com/grovetools/jsonlview/tui/components/tailview"
	"github.com/grovetools/jsonlview/tui/keymap"
	"github.com/grovetools/jsonlview/tui/theme"
)

// NewTailCmd creates the tail command.
func NewTailCmd() *cobra.Command {
	var (
		followFile bool
		lines      int
		interact   bool
	)
	cmd := &cobra.Command{
		Use:   "tail FILE",
		Short: "Print records as they are appended to a JSONL file",
		Long: `Print one colorized line per record. Each line is parsed on its own, so
a malformed line is reported without affecting the others.

Examples:
  jsonlview tail service.jsonl -n 20
  jsonlview tail -f service.jsonl
  jsonlview tail -f service.jsonl --tui`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, h, err := openDocument(cmd, args[0])
			if err != nil {
				return err
			}
			f, err := follow.Start(h.Path(), follow.Options{Follow: followFile, Tail: lines})
			if err != nil {
				return err
			}
			defer f.Stop()

			if interact {
				return runTailTUI(cmd, f, cfg.Viewer.PreviewLimit)
			}

			ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt)
			defer stop()
			return printRecords(ctx, cmd.OutOrStdout(), f, cfg.Viewer.PreviewLimit)
		},
	}
	cmd.Flags().BoolVarP(&followFile, "follow", "f", false, "Keep reading as the file grows")
	cmd.Flags().IntVarP(&lines, "lines", "n", 0, "Start with the last N records (0 for all)")
	cmd.Flags().BoolVar(&interact, "tui", false, "Show the stream in a scrolling view")
	return cmd
}

// recordSource is what printRecords reads from; *follow.Follower implements it.
type recordSource interface {
	Records() <-chan *record.Record
	Err() error
	Stop() error
}

func printRecords(ctx context.Context, w io.Writer, src recordSource, previewLimit int) error {
	t := theme.DefaultTheme
	for {
		select {
		case <-ctx.Done():
			return src.Stop()
		case r, ok := <-src.Records():
			if !ok {
				return src.Err()
			}
			fmt.Fprintln(w, formatTailLine(t, r, previewLimit))
		}
	}
}

// formatTailLine renders a record as a numbered one-line preview.
func formatTailLine(t *theme.Theme, r *record.Record, previewLimit int) string {
	if previewLimit <= 0 {
		previewLimit = colorize.PreviewLimit
	}
	num := t.Muted.Render(fmt.Sprintf("%6d", r.Index+1))
	if r.Err != "" {
		return num + " " + t.Error.Render("Parse Error: "+r.Err) + " " + colorize.Truncate(r.Raw, previewLimit)
	}
	return num + " " + t.RenderSpans(colorize.Preview(r.Value, previewLimit), -1)
}

// tailProgram wraps the tail view with quit handling.
type tailProgram struct {
	view tailview.Model
	src  tailview.Source
	quit key.Binding
}

func (p tailProgram) Init() tea.Cmd {
	return p.view.Start(p.src)
}

func (p tailProgram) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, p.quit) {
		return p, tea.Quit
	}
	var cmd tea.Cmd
	p.view, cmd = p.view.Update(msg)
	return p, cmd
}

func (p tailProgram) View() string {
	return p.view.View()
}

func runTailTUI(cmd *cobra.Command, f *follow.Follower, previewLimit int) error {
	if !tui.IsInteractive() {
		return errors.New(errors.ErrCodeInvalidInput, "--tui needs a terminal")
	}
	p := tailProgram{
		view: tailview.New(80, 24, previewLimit),
		src:  f,
		quit: keymap.NewBase().Quit,
	}
	if _, err := tui.Run(p, tea.WithMouseCellMotion(), tea.WithContext(contextOf(cmd))); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "tail view failed")
	}
	return f.Err()
}
