package errors

import (
	stderrors "errors"
	"fmt"
	"os/exec"
	"testing"
)

func TestViewerError(t *testing.T) {
	// Test basic error creation
	err := New(ErrCodeNoDocument, "no document")
	if err.Code != ErrCodeNoDocument {
		t.Errorf("expected code %s, got %s", ErrCodeNoDocument, err.Code)
	}

	// Test error wrapping
	cause := fmt.Errorf("underlying error")
	wrapped := Wrap(cause, ErrCodeWriteFailed, "write failed")

	if wrapped.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}

	// Test Is function
	if !Is(wrapped, ErrCodeWriteFailed) {
		t.Error("Is should return true for matching code")
	}

	if Is(wrapped, ErrCodeNoDocument) {
		t.Error("Is should return false for non-matching code")
	}

	// Wrapped in a stdlib error, the code is still found
	outer := fmt.Errorf("saving: %w", wrapped)
	if GetCode(outer) != ErrCodeWriteFailed {
		t.Errorf("expected code through fmt wrapping, got %q", GetCode(outer))
	}

	// Test WithDetail
	detailed := err.WithDetail("path", "a.jsonl").WithDetail("line", 3)
	if detailed.Details["path"] != "a.jsonl" {
		t.Error("WithDetail should add details")
	}
}

func TestErrorConstructors(t *testing.T) {
	err := WrongFileType("notes.txt")
	if err.Code != ErrCodeWrongFileType {
		t.Errorf("expected code %s, got %s", ErrCodeWrongFileType, err.Code)
	}
	if err.Details["path"] != "notes.txt" {
		t.Error("WrongFileType should include path detail")
	}

	err = ReadFailed("a.jsonl", fmt.Errorf("boom"))
	if err.Code != ErrCodeReadFailed || err.Cause == nil {
		t.Errorf("ReadFailed should wrap the cause, got %+v", err)
	}

	err = EditorFailed("vi", &exec.Error{Name: "vi", Err: exec.ErrNotFound})
	if err.Details["editor"] != "vi" {
		t.Error("EditorFailed should include editor detail")
	}
}

func TestIsNotice(t *testing.T) {
	if !IsNotice(NoDocument()) {
		t.Error("NoDocument should be a notice")
	}
	if !IsNotice(WrongFileType("x.txt")) {
		t.Error("WrongFileType should be a notice")
	}
	if IsNotice(WriteFailed("x.jsonl", fmt.Errorf("disk full"))) {
		t.Error("WriteFailed should not be a notice")
	}
	if IsNotice(nil) {
		t.Error("nil should not be a notice")
	}
}

func TestMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{NoDocument(), "Open a .jsonl file first."},
		{fmt.Errorf("open: %w", WrongFileType("a.txt")), "Active file is not a .jsonl file."},
		{stderrors.New("plain"), "plain"},
	}
	for _, tt := range tests {
		if got := Message(tt.err); got != tt.want {
			t.Errorf("Message(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
