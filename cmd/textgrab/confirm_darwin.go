//go:build darwin

package main

import (
	"github.com/textgrab/textgrab/internal/service"
	"github.com/textgrab/textgrab/internal/shell"
)

// fallbackConfirmer uses a native dialog when no terminal is attached, so
// launchd-started daemons can still ask before committing.
func fallbackConfirmer() service.Confirmer {
	return shell.NewDialogConfirmer()
}
