//go:build !darwin

package main

import "github.com/textgrab/textgrab/internal/service"

// fallbackConfirmer prompts on stdin when no terminal is detected; there is
// no native dialog surface to fall back to on this platform.
func fallbackConfirmer() service.Confirmer {
	return terminalPrompter()
}
