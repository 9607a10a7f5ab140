package shell

import (
	"fmt"
	"os"
	"path/filepath"
)

// LaunchAgent manages the login item that starts the watch daemon when the
// user logs in.
type LaunchAgent struct {
	label    string
	execPath string
}

// NewLaunchAgent creates a launch agent descriptor for the current binary.
func NewLaunchAgent(label string) (*LaunchAgent, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable path: %w", err)
	}
	return &LaunchAgent{label: label, execPath: exe}, nil
}

// PlistPath returns the per-user launch agent plist location.
func (l *LaunchAgent) PlistPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, "Library", "LaunchAgents", l.label+".plist"), nil
}

// Enabled reports whether the launch agent plist is installed.
func (l *LaunchAgent) Enabled() bool {
	path, err := l.PlistPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// renderPlist produces the launchd property list for the agent. The daemon
// is started with the watch subcommand and kept out of the Dock.
func renderPlist(label, execPath string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>%s</string>
	<key>ProgramArguments</key>
	<array>
		<string>%s</string>
		<string>watch</string>
	</array>
	<key>RunAtLoad</key>
	<true/>
	<key>ProcessType</key>
	<string>Background</string>
</dict>
</plist>
`, label, execPath)
}
