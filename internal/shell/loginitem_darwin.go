//go:build darwin

package shell

import (
	"fmt"
	"os"
	"path/filepath"
)

// Enable installs the launch agent plist.
func (l *LaunchAgent) Enable() error {
	path, err := l.PlistPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create LaunchAgents directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(renderPlist(l.label, l.execPath)), 0o644); err != nil {
		return fmt.Errorf("failed to write launch agent: %w", err)
	}
	return nil
}

// Disable removes the launch agent plist if present.
func (l *LaunchAgent) Disable() error {
	path, err := l.PlistPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove launch agent: %w", err)
	}
	return nil
}
