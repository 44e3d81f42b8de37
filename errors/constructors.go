package errors

import (
	"fmt"
	"os/exec"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *ViewerError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *ViewerError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// NoDocument reports a command that needs an open document but has none.
func NoDocument() *ViewerError {
	return New(ErrCodeNoDocument, "Open a .jsonl file first.")
}

// WrongFileType reports a command invoked on a file that is not line-delimited JSON.
func WrongFileType(path string) *ViewerError {
	return New(ErrCodeWrongFileType, "Active file is not a .jsonl file.").
		WithDetail("path", path)
}

// ReadFailed wraps a failure to read the document.
func ReadFailed(path string, err error) *ViewerError {
	return Wrap(err, ErrCodeReadFailed, fmt.Sprintf("failed to read %s", path)).
		WithDetail("path", path)
}

// WriteFailed wraps a failure to persist the document.
func WriteFailed(path string, err error) *ViewerError {
	return Wrap(err, ErrCodeWriteFailed, fmt.Sprintf("failed to write %s", path)).
		WithDetail("path", path)
}

// ClipboardFailed wraps a clipboard write failure.
func ClipboardFailed(err error) *ViewerError {
	return Wrap(err, ErrCodeClipboardFailed, "failed to copy to clipboard")
}

// EditorFailed wraps a failure to launch the plain text editor.
func EditorFailed(editor string, err error) *ViewerError {
	viewerErr := Wrap(err, ErrCodeEditorFailed, fmt.Sprintf("editor failed: %s", editor)).
		WithDetail("editor", editor)

	if exitErr, ok := err.(*exec.ExitError); ok {
		viewerErr = viewerErr.WithDetail("exitCode", exitErr.ExitCode())
	}

	return viewerErr
}

// QueryInvalid wraps a jq expression that failed to parse or compile.
func QueryInvalid(expr string, err error) *ViewerError {
	return Wrap(err, ErrCodeQueryInvalid, fmt.Sprintf("invalid query: %s", expr)).
		WithDetail("query", expr)
}
