package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grovetools/jsonlview/cli"
	"github.com/grovetools/jsonlview/pkg/colorize"
	"github.com/grovetools/jsonlview/pkg/query"
	"github.com/grovetools/jsonlview/pkg/record"
	"github.com/grovetools/jsonlview/pkg/viewer"
	"github.com/grovetools/jsonlview/tui/theme"
)

type printOptions struct {
	raw       bool
	collapsed bool
	search    string
	jq        string
	html      bool
	limit     int
}

// NewPrintCmd creates the non-interactive render command.
func NewPrintCmd() *cobra.Command {
	var opts printOptions
	cmd := &cobra.Command{
		Use:   "print FILE",
		Short: "Render a JSONL document to stdout",
		Long: `Render a JSONL document to stdout the way the viewer shows it.

Examples:
  jsonlview print events.jsonl
  jsonlview print events.jsonl --raw --search error
  jsonlview print events.jsonl --jq 'select(.status >= 500) | {path, status}'
  jsonlview print events.jsonl --html > events.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrint(cmd, args[0], opts)
		},
	}
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "One line per record")
	cmd.Flags().BoolVar(&opts.collapsed, "collapsed", false, "Show every record collapsed to a preview")
	cmd.Flags().StringVar(&opts.search, "search", "", "Highlight occurrences of a search term")
	cmd.Flags().StringVar(&opts.jq, "jq", "", "Transform each record with a jq expression first")
	cmd.Flags().BoolVar(&opts.html, "html", false, "Write an HTML fragment instead of terminal colors")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "Print at most this many records")
	return cmd
}

func runPrint(cmd *cobra.Command, path string, opts printOptions) error {
	cfg, h, err := openDocument(cmd, path)
	if err != nil {
		return err
	}
	text, err := h.Load()
	if err != nil {
		return err
	}

	if opts.jq != "" {
		q, err := query.Compile(opts.jq)
		if err != nil {
			return err
		}
		text = record.Serialize(q.ApplyAll(record.Parse(text)))
	}

	out := cmd.OutOrStdout()
	if cli.GetOptions(cmd).JSONOutput {
		records := record.Parse(text)
		if opts.limit > 0 && len(records) > opts.limit {
			records = records[:opts.limit]
		}
		if len(records) > 0 {
			fmt.Fprint(out, record.Serialize(records))
		}
		return nil
	}

	vopts := viewer.Options{
		BatchSize:    cfg.Viewer.BatchSize,
		PreviewLimit: cfg.Viewer.PreviewLimit,
		Mode:         viewer.ModeStructured,
	}
	if opts.raw {
		vopts.Mode = viewer.ModeRaw
	}
	ctrl := viewer.New(nil, vopts)
	ctrl.LoadDocument(text)
	if opts.collapsed {
		ctrl.CollapseAll()
	}
	if opts.search != "" {
		ctrl.SetSearchTerm(opts.search)
	}
	for ctrl.RenderNextBatch() {
	}

	f := ctrl.Frame()
	records := f.Records
	if opts.limit > 0 && len(records) > opts.limit {
		records = records[:opts.limit]
	}

	if opts.html {
		writeHTML(out, f, records)
	} else {
		writeFrame(out, theme.DefaultTheme, f, records)
	}

	t := theme.DefaultTheme
	summary := f.StatsText()
	if info := f.SearchInfo(); info != "" {
		summary += " · " + opts.search + ": " + info
	}
	fmt.Fprintln(cmd.ErrOrStderr(), t.Muted.Render(summary))
	return nil
}

// writeFrame writes records as the viewer draws them.
func writeFrame(w io.Writer, t *theme.Theme, f viewer.Frame, records []viewer.RenderedRecord) {
	if f.Empty {
		fmt.Fprintln(w, t.Muted.Render(viewer.EmptyText))
		return
	}
	width := len(fmt.Sprint(f.Total))
	for _, r := range records {
		body := t.RenderSpans(r.Spans, r.Current)
		if f.Mode == viewer.ModeRaw {
			fmt.Fprintf(w, "%s %s\n", t.Muted.Render(fmt.Sprintf("%*d", width, r.Number())), body)
			continue
		}
		header := t.Bold.Render(fmt.Sprintf("#%d", r.Number()))
		if a := r.Arrow(); a != "" {
			header = t.Accent.Render(a) + " " + header
		}
		if l := r.Label(); l != "" {
			header += "  " + t.Error.Render(l)
		}
		fmt.Fprintln(w, header)
		for _, line := range strings.Split(body, "\n") {
			fmt.Fprintln(w, "  "+line)
		}
	}
}

// writeHTML writes records as an HTML fragment using the colorizer classes.
func writeHTML(w io.Writer, f viewer.Frame, records []viewer.RenderedRecord) {
	fmt.Fprintln(w, `<div class="jsonl">`)
	if f.Empty {
		fmt.Fprintf(w, "<p class=\"empty\">%s</p>\n", colorize.EscapeHTML(viewer.EmptyText))
	}
	for _, r := range records {
		class := "entry"
		if r.Err != "" {
			class += " invalid"
		}
		fmt.Fprintf(w, "<div class=\"%s\"><div class=\"header\">%s</div><pre>%s</pre></div>\n",
			class, colorize.EscapeHTML(r.Header()), colorize.HTML(r.Spans, r.Current))
	}
	fmt.Fprintln(w, `</div>`)
}
