package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Configuration errors
	ErrCodeConfigNotFound   ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid    ErrorCode = "CONFIG_INVALID"
	ErrCodeConfigValidation ErrorCode = "CONFIG_VALIDATION"

	// Document errors
	ErrCodeNoDocument    ErrorCode = "NO_DOCUMENT"
	ErrCodeWrongFileType ErrorCode = "WRONG_FILE_TYPE"
	ErrCodeReadFailed    ErrorCode = "READ_FAILED"
	ErrCodeWriteFailed   ErrorCode = "WRITE_FAILED"

	// Host integration errors
	ErrCodeClipboardFailed ErrorCode = "CLIPBOARD_FAILED"
	ErrCodeEditorFailed    ErrorCode = "EDITOR_FAILED"

	// Query errors
	ErrCodeQueryInvalid ErrorCode = "QUERY_INVALID"

	// General errors
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// ViewerError represents a structured error with context
type ViewerError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *ViewerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ViewerError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *ViewerError) WithDetail(key string, value interface{}) *ViewerError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *ViewerError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new ViewerError
func New(code ErrorCode, message string) *ViewerError {
	return &ViewerError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a ViewerError
func Wrap(err error, code ErrorCode, message string) *ViewerError {
	return &ViewerError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error is a specific ViewerError code
func Is(err error, code ErrorCode) bool {
	return GetCode(err) == code && code != ""
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	viewerErr, ok := err.(*ViewerError)
	if !ok {
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return viewerErr.Code
}

// IsNotice reports whether the error is informational rather than a failure:
// the command was aborted without side effects because there was nothing to act on.
func IsNotice(err error) bool {
	switch GetCode(err) {
	case ErrCodeNoDocument, ErrCodeWrongFileType:
		return true
	}
	return false
}

// Message returns the user-facing message of a ViewerError anywhere in the
// chain, or err.Error() for other errors.
func Message(err error) string {
	if err == nil {
		return ""
	}
	for e := err; e != nil; {
		if viewerErr, ok := e.(*ViewerError); ok {
			return viewerErr.Message
		}
		unwrapper, ok := e.(interface{ Unwrap() error })
		if !ok {
			break
		}
		e = unwrapper.Unwrap()
	}
	return err.Error()
}
