package logging

import (
	"context"
	"io"
)

// writerKey carries the writer that user-facing lines of a command go to.
type writerKey struct{}

// GetWriter returns the writer attached to ctx by WithWriter. Without one it
// returns the global output, which SilenceTerminal discards during TUI runs.
func GetWriter(ctx context.Context) io.Writer {
	if ctx != nil {
		if w, ok := ctx.Value(writerKey{}).(io.Writer); ok && w != nil {
			return w
		}
	}
	return GetGlobalOutput()
}

// WithWriter attaches w to ctx. Commands pass their cobra error stream so
// status lines stay out of stdout, which may carry document text.
func WithWriter(ctx context.Context, w io.Writer) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, writerKey{}, w)
}
