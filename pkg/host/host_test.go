package host

import (
	"context"
	stderrors "errors"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/jsonlview/config"
	"github.com/grovetools/jsonlview/errors"
	"github.com/grovetools/jsonlview/pkg/viewer"
	"github.com/grovetools/jsonlview/testutil"
)

var _ viewer.Host = (*FileHost)(nil)

func newHost(t *testing.T, path string, opts Options) *FileHost {
	t.Helper()
	h, err := New(path, opts)
	require.NoError(t, err)
	return h
}

func TestCheckDocument(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
		opts Options
		code errors.ErrorCode
	}{
		{"no document", "", Options{}, errors.ErrCodeNoDocument},
		{"jsonl", filepath.Join(dir, "a.jsonl"), Options{}, ""},
		{"ndjson", filepath.Join(dir, "a.ndjson"), Options{}, ""},
		{"json", filepath.Join(dir, "a.json"), Options{}, errors.ErrCodeWrongFileType},
		{"text", filepath.Join(dir, "notes.txt"), Options{}, errors.ErrCodeWrongFileType},
		{"custom pattern", filepath.Join(dir, "events.log"), Options{Patterns: []string{"*.log"}}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newHost(t, tt.path, tt.opts).CheckDocument()
			if tt.code == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.code), "expected %s, got %v", tt.code, err)
		})
	}
}

func TestNewRejectsInvalidPattern(t *testing.T) {
	_, err := New("a.jsonl", Options{Patterns: []string{"[unclosed"}})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteJSONL(t, dir, "data.jsonl", `{"a":1}`, `broken`)

	text, err := newHost(t, path, Options{}).Load()
	require.NoError(t, err)
	assert.Equal(t, "{\"a\":1}\nbroken\n", text)

	_, err = newHost(t, filepath.Join(dir, "missing.jsonl"), Options{}).Load()
	assert.True(t, errors.Is(err, errors.ErrCodeReadFailed))

	_, err = newHost(t, filepath.Join(dir, "data.txt"), Options{}).Load()
	assert.True(t, errors.Is(err, errors.ErrCodeWrongFileType))
}

func TestReplaceDocumentKeepsMode(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteJSONL(t, dir, "data.jsonl", `{"a":1}`)
	require.NoError(t, os.Chmod(path, 0600))

	h := newHost(t, path, Options{})
	require.NoError(t, h.ReplaceDocument("{\"a\":2}\n"))

	assert.Equal(t, "{\"a\":2}\n", testutil.ReadFile(t, path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	assert.True(t, h.isOwnWrite("{\"a\":2}\n"))
	assert.False(t, h.isOwnWrite("{\"a\":3}\n"))
}

func TestReplaceDocumentLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteJSONL(t, dir, "data.jsonl", `{"a":1}`)

	h := newHost(t, path, Options{})
	require.NoError(t, h.ReplaceDocument("{\"a\":2}\n"))
	require.NoError(t, h.ReplaceDocument("{\"a\":3}\n"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "data.jsonl", entries[0].Name())
	assert.Equal(t, "{\"a\":3}\n", testutil.ReadFile(t, path))
}

func TestReplaceDocumentThroughSymlink(t *testing.T) {
	dir := t.TempDir()
	target := testutil.WriteJSONL(t, dir, "real.jsonl", `{"a":1}`)
	link := filepath.Join(dir, "link.jsonl")
	require.NoError(t, os.Symlink(target, link))

	require.NoError(t, newHost(t, link, Options{}).ReplaceDocument("{\"a\":2}\n"))

	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink, "the link is kept")
	assert.Equal(t, "{\"a\":2}\n", testutil.ReadFile(t, target))
}

func TestReplaceDocumentWrongType(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))

	err := newHost(t, path, Options{}).ReplaceDocument("changed")
	assert.True(t, errors.Is(err, errors.ErrCodeWrongFileType))
	assert.Equal(t, "{}", testutil.ReadFile(t, path), "a rejected write must not touch the file")
}

func TestCopyToClipboard(t *testing.T) {
	h := newHost(t, "a.jsonl", Options{})

	var got string
	h.writeClipboard = func(s string) error { got = s; return nil }
	require.NoError(t, h.CopyToClipboard("payload"))
	assert.Equal(t, "payload", got)

	h.writeClipboard = func(string) error { return stderrors.New("no clipboard") }
	err := h.CopyToClipboard("payload")
	assert.True(t, errors.Is(err, errors.ErrCodeClipboardFailed))
}

func TestEditorCommand(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "nano -w")
	path := filepath.Join(t.TempDir(), "a.jsonl")

	cmd, err := newHost(t, path, Options{}).EditorCommand()
	require.NoError(t, err)
	assert.Equal(t, []string{"nano", "-w", path}, cmd.Args)

	t.Setenv("VISUAL", "code --wait")
	cmd, err = newHost(t, path, Options{}).EditorCommand()
	require.NoError(t, err)
	assert.Equal(t, []string{"code", "--wait", path}, cmd.Args)

	cmd, err = newHost(t, path, Options{Editor: "hx"}).EditorCommand()
	require.NoError(t, err)
	assert.Equal(t, []string{"hx", path}, cmd.Args)

	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")
	cmd, err = newHost(t, path, Options{}).EditorCommand()
	require.NoError(t, err)
	assert.Equal(t, []string{"vi", path}, cmd.Args)

	_, err = newHost(t, "", Options{}).EditorCommand()
	assert.True(t, errors.Is(err, errors.ErrCodeNoDocument))
}

func TestOpenAsPlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.jsonl")
	h := newHost(t, path, Options{Editor: "myeditor"})

	var ran *exec.Cmd
	h.runCommand = func(cmd *exec.Cmd) error { ran = cmd; return nil }
	require.NoError(t, h.OpenAsPlainText())
	require.NotNil(t, ran)
	assert.Equal(t, []string{"myeditor", path}, ran.Args)

	h.runCommand = func(*exec.Cmd) error { return stderrors.New("exit status 1") }
	err := h.OpenAsPlainText()
	assert.True(t, errors.Is(err, errors.ErrCodeEditorFailed))
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Viewer.Editor = "emacs"
	opts := OptionsFromConfig(cfg)

	assert.Equal(t, config.DefaultFilePatterns, opts.Patterns)
	assert.Equal(t, "emacs", opts.Editor)
	assert.Equal(t, 150*time.Millisecond, opts.Debounce)
}

func TestControllerThroughHost(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteJSONL(t, dir, "data.jsonl",
		`{"name":"foo"}`,
		`{"name":"foofoo"}`,
		`not json foo`,
	)
	h := newHost(t, path, Options{})
	text, err := h.Load()
	require.NoError(t, err)

	c := viewer.New(h, viewer.DefaultOptions())
	c.LoadDocument(text)
	c.SetSearchTerm("foo")
	require.Equal(t, 4, c.Search().Count)

	n, err := c.ReplaceAll("bar")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, "{\"name\":\"bar\"}\n{\"name\":\"barbar\"}\nnot json bar\n", testutil.ReadFile(t, path))
}

type changes struct {
	mu    sync.Mutex
	texts []string
}

func (c *changes) add(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.texts = append(c.texts, text)
}

func (c *changes) all() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.texts...)
}

func TestWatchReportsExternalChanges(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteJSONL(t, dir, testutil.RandomString(8)+".jsonl", `{"v":1}`)
	h := newHost(t, path, Options{Debounce: 30 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := &changes{}
	done := make(chan error, 1)
	go func() { done <- h.Watch(ctx, got.add) }()

	// Give the watcher time to register before changing the file.
	time.Sleep(100 * time.Millisecond)

	// Our own write is ignored.
	require.NoError(t, h.ReplaceDocument("{\"v\":2}\n"))
	time.Sleep(200 * time.Millisecond)
	assert.Empty(t, got.all())

	// An external write is reported once, after the debounce period.
	testutil.AppendLines(t, path, `{"v":3}`)
	testutil.Eventually(t, 2*time.Second, func() bool { return len(got.all()) == 1 }, "external change")
	assert.Equal(t, "{\"v\":2}\n{\"v\":3}\n", got.all()[0])

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestWatchRequiresDocument(t *testing.T) {
	err := newHost(t, "", Options{}).Watch(context.Background(), func(string) {})
	assert.True(t, errors.Is(err, errors.ErrCodeNoDocument))
}
