//go:build darwin

package shell

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// DialogConfirmer asks for confirmation through a native dialog, for runs
// without an attached terminal (e.g. started by launchd).
type DialogConfirmer struct{}

// NewDialogConfirmer creates the dialog-based confirmer.
func NewDialogConfirmer() *DialogConfirmer {
	return &DialogConfirmer{}
}

// Confirm shows the detected text in a dialog. "No" makes osascript exit
// non-zero, which is an ordinary rejection rather than an error.
func (c *DialogConfirmer) Confirm(ctx context.Context, text string) (bool, error) {
	script := fmt.Sprintf(
		`display dialog "%s" with title "Copy detected text to clipboard?" buttons {"No", "Yes"} default button "Yes" cancel button "No"`,
		escapeAppleScript(text))
	cmd := exec.CommandContext(ctx, "osascript", "-e", script)
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return false, nil
		}
		return false, fmt.Errorf("failed to show confirmation dialog: %w", err)
	}
	return true, nil
}
