//go:build !darwin

package shell

import "errors"

// Enable is unsupported outside macOS.
func (l *LaunchAgent) Enable() error {
	return errors.ErrUnsupported
}

// Disable is unsupported outside macOS.
func (l *LaunchAgent) Disable() error {
	return errors.ErrUnsupported
}
