package logging

import (
	"io"
	"os"
	"sync"
)

// globalWriter is an io.Writer whose destination can be swapped at runtime.
// Every terminal-facing log sink writes through it.
type globalWriter struct {
	mu sync.RWMutex
	w  io.Writer
}

// Write implements the io.Writer interface.
func (gw *globalWriter) Write(p []byte) (n int, err error) {
	gw.mu.RLock()
	defer gw.mu.RUnlock()
	return gw.w.Write(p)
}

func (gw *globalWriter) swap(w io.Writer) io.Writer {
	gw.mu.Lock()
	defer gw.mu.Unlock()
	prev := gw.w
	gw.w = w
	return prev
}

var defaultGlobalWriter = &globalWriter{w: os.Stderr}

// SetGlobalOutput sets the terminal destination for all loggers.
func SetGlobalOutput(w io.Writer) {
	defaultGlobalWriter.swap(w)
}

// GetGlobalOutput returns the shared terminal writer.
func GetGlobalOutput() io.Writer {
	return defaultGlobalWriter
}

// SilenceTerminal discards terminal log output until the returned function
// is called. The interactive viewer holds it while it owns the screen.
func SilenceTerminal() (restore func()) {
	prev := defaultGlobalWriter.swap(io.Discard)
	return func() { defaultGlobalWriter.swap(prev) }
}
