package viewer

// Host is the environment a controller is embedded in. It owns the document
// storage and the side effects the controller may request.
type Host interface {
	// ReplaceDocument persists text as the new full document content.
	ReplaceDocument(text string) error
	// CopyToClipboard places text on the system clipboard.
	CopyToClipboard(text string) error
	// OpenAsPlainText reopens the document in a plain text editor.
	OpenAsPlainText() error
}
