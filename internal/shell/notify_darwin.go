//go:build darwin

package shell

import (
	"fmt"
	"os/exec"
)

// DesktopNotifier sends notifications through Notification Center via
// osascript.
type DesktopNotifier struct{}

// NewNotifier creates the platform notifier.
func NewNotifier() *DesktopNotifier {
	return &DesktopNotifier{}
}

// Notify sends a desktop notification.
func (n *DesktopNotifier) Notify(title, body string) error {
	script := fmt.Sprintf(`display notification "%s" with title "%s"`,
		escapeAppleScript(body), escapeAppleScript(title))
	cmd := exec.Command("osascript", "-e", script)
	return cmd.Run()
}
