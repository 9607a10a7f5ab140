package main

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/viper"
	"github.com/textgrab/textgrab/internal/cli"
	"github.com/textgrab/textgrab/internal/config"
	"github.com/textgrab/textgrab/internal/service"
	"github.com/textgrab/textgrab/internal/storage"
	"github.com/textgrab/textgrab/internal/tui"
)

// initStore opens the preference database with proper path expansion.
func initStore(ctx context.Context) (*storage.SQLiteStore, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	}
	dbPath = config.ExpandPath(dbPath)

	return storage.NewSQLiteStore(ctx, dbPath)
}

// newConfirmer picks the confirmation surface: the full-screen view on a
// terminal, a plain prompt otherwise.
func newConfirmer() service.Confirmer {
	if isatty.IsTerminal(os.Stdout.Fd()) && isatty.IsTerminal(os.Stdin.Fd()) {
		return tui.NewConfirmer()
	}
	return fallbackConfirmer()
}

func terminalPrompter() service.Confirmer {
	return cli.NewPrompter(nil, nil)
}
