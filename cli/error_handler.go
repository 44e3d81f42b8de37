package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/grovetools/jsonlview/errors"
	"github.com/grovetools/jsonlview/tui/theme"
)

// ErrorHandler prints user-friendly error messages.
type ErrorHandler struct {
	Verbose bool
	Out     io.Writer
}

// NewErrorHandler creates an error handler writing to stderr.
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
		Out:     os.Stderr,
	}
}

// Handle reports err and returns it unchanged. A missing or non-JSONL
// document is a notice, not a failure, and is printed as such.
func (h *ErrorHandler) Handle(err error) error {
	if err == nil {
		return nil
	}
	t := theme.DefaultTheme

	switch errors.GetCode(err) {
	case errors.ErrCodeNoDocument:
		fmt.Fprintf(h.Out, "%s %s\n", t.Info.Render(theme.IconInfo), errors.Message(err))
		return err

	case errors.ErrCodeWrongFileType:
		fmt.Fprintf(h.Out, "%s %s\n", t.Warning.Render(theme.IconWarning), errors.Message(err))
		return err

	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(h.Out, "%s %s\n", t.Error.Render(theme.IconError), errors.Message(err))
		fmt.Fprintln(h.Out, t.Muted.Render("Run 'jsonlview config --init' to write a starter configuration."))
		return err

	case errors.ErrCodeQueryInvalid:
		fmt.Fprintf(h.Out, "%s %s\n", t.Error.Render(theme.IconError), err.Error())
		fmt.Fprintln(h.Out, t.Muted.Render("Queries use jq syntax, for example '.level' or 'select(.status >= 500)'."))
		return err

	default:
		fmt.Fprintf(h.Out, "%s Error: %v\n", t.Error.Render(theme.IconError), err)
		if h.Verbose {
			var ve *errors.ViewerError
			if stderrors.As(err, &ve) {
				fmt.Fprintf(h.Out, "\nError details:\n%s\n", ve.ToJSON())
			}
		}
		return err
	}
}
