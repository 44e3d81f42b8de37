package cli

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/jsonlview/errors"
	"github.com/grovetools/jsonlview/testutil"
	"github.com/grovetools/jsonlview/tui/theme"
	"github.com/grovetools/jsonlview/version"
)

func TestWrapText(t *testing.T) {
	out := wrapText("one two three four five", 9)
	assert.Equal(t, "one two\nthree\nfour five", out)
	assert.Equal(t, "keep\nbreaks", wrapText("keep\nbreaks", 40))
}

func TestParseDescription(t *testing.T) {
	desc, ex := parseDescription("Shows records.\n\nExamples:\n  jsonlview print a.jsonl")
	assert.Equal(t, "Shows records.", desc)
	assert.Equal(t, "jsonlview print a.jsonl", ex)

	desc, ex = parseDescription("Just text.")
	assert.Equal(t, "Just text.", desc)
	assert.Empty(t, ex)
}

func TestRenderHelp(t *testing.T) {
	root := NewStandardCommand("jsonlview", "View JSONL files")
	printCmd := &cobra.Command{
		Use:   "print FILE",
		Short: "Print records",
		Long:  "Print records to stdout.\n\nExamples:\n  # plain\n  jsonlview print a.jsonl --raw",
		Run:   func(*cobra.Command, []string) {},
	}
	printCmd.Flags().Int("limit", 0, "Maximum number of records")
	printCmd.Flags().Bool("raw", false, "One line per record")
	root.AddCommand(printCmd)

	var buf bytes.Buffer
	renderHelp(&buf, root, 70)
	out := buf.String()
	assert.Contains(t, out, "JSONLVIEW")
	assert.Contains(t, out, "COMMANDS")
	assert.Contains(t, out, "print")
	assert.Contains(t, out, "--verbose")

	buf.Reset()
	renderHelp(&buf, printCmd, 70)
	out = buf.String()
	assert.Contains(t, out, "FLAGS")
	assert.Contains(t, out, "    --limit")
	assert.Contains(t, out, "EXAMPLES")
	assert.Contains(t, out, "# plain")
}

func TestHelpExtras(t *testing.T) {
	cmd := &cobra.Command{Use: "keys", Run: func(*cobra.Command, []string) {}}
	SetStyledHelpWithExtras(cmd, func(out io.Writer, _ *theme.Theme) {
		fmt.Fprintln(out, "EXTRA SECTION")
	})
	var buf bytes.Buffer
	renderHelp(&buf, cmd, 70)
	assert.Contains(t, buf.String(), "EXTRA SECTION")
}

func TestGetOptions(t *testing.T) {
	cmd := NewStandardCommand("jsonlview", "")
	require.NoError(t, cmd.ParseFlags([]string{"-v", "--json", "-c", "x.yml"}))
	assert.Equal(t, CommandOptions{ConfigFile: "x.yml", Verbose: true, JSONOutput: true}, GetOptions(cmd))
}

func TestLoadConfig(t *testing.T) {
	testutil.IsolateHome(t)
	dir := t.TempDir()
	path := testutil.WriteJSONL(t, dir, "jsonlview.yml", "version: \"1.0\"", "viewer:", "  batch_size: 50")

	cmd := NewStandardCommand("jsonlview", "")
	require.NoError(t, cmd.ParseFlags([]string{"--config", path}))
	cfg, err := LoadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Viewer.BatchSize)

	cmd = NewStandardCommand("jsonlview", "")
	require.NoError(t, cmd.ParseFlags([]string{"--config", dir + "/missing.yml"}))
	_, err = LoadConfig(cmd)
	assert.True(t, errors.Is(err, errors.ErrCodeConfigNotFound))
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"no document", errors.NoDocument(), errors.Message(errors.NoDocument())},
		{"wrong type", errors.WrongFileType("a.txt"), "not a .jsonl file"},
		{"query", errors.QueryInvalid(".[", fmt.Errorf("unexpected EOF")), "jq syntax"},
		{"generic", fmt.Errorf("boom"), "Error: boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := &ErrorHandler{Out: &buf}
			assert.Equal(t, tt.err, h.Handle(tt.err))
			assert.Contains(t, buf.String(), tt.want)
		})
	}

	var buf bytes.Buffer
	h := &ErrorHandler{Out: &buf, Verbose: true}
	h.Handle(errors.ReadFailed("a.jsonl", fmt.Errorf("denied")))
	assert.Contains(t, buf.String(), "READ_FAILED")
	assert.Nil(t, (&ErrorHandler{Out: &buf}).Handle(nil))
}

func TestVersionCommand(t *testing.T) {
	info := version.GetInfo()
	root := NewStandardCommand("jsonlview", "")
	root.AddCommand(NewVersionCommand("jsonlview", info))

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"version"})
	require.NoError(t, root.Execute())
	assert.True(t, strings.HasPrefix(buf.String(), "jsonlview "+info.Version))

	buf.Reset()
	root.SetArgs([]string{"version", "--json"})
	require.NoError(t, root.Execute())
	assert.Contains(t, buf.String(), `"goVersion"`)
}
