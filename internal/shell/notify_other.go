//go:build !darwin

package shell

import "github.com/gen2brain/beeep"

// DesktopNotifier sends notifications through the platform notification
// service.
type DesktopNotifier struct{}

// NewNotifier creates the platform notifier.
func NewNotifier() *DesktopNotifier {
	return &DesktopNotifier{}
}

// Notify sends a desktop notification.
func (n *DesktopNotifier) Notify(title, body string) error {
	return beeep.Notify(title, body, "")
}
