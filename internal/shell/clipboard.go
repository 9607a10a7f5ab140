// Package shell implements the presentation-side collaborators: clipboard
// access, desktop notifications and login item registration.
package shell

import (
	"fmt"

	"golang.design/x/clipboard"

	"github.com/textgrab/textgrab/internal/common"
)

// Clipboard implements service.Pasteboard over the system clipboard.
type Clipboard struct{}

// NewClipboard initializes clipboard access. Initialization fails on
// headless systems without a display server.
func NewClipboard() (*Clipboard, error) {
	if err := clipboard.Init(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrClipboardUnavailable, err)
	}
	return &Clipboard{}, nil
}

// ReadText returns the current textual clipboard content. An empty string
// means the clipboard holds no text.
func (c *Clipboard) ReadText() (string, error) {
	return string(clipboard.Read(clipboard.FmtText)), nil
}

// WriteText replaces the clipboard content with text.
func (c *Clipboard) WriteText(text string) error {
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}
