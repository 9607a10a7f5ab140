package main

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/textgrab/textgrab/internal/cli"
	"github.com/textgrab/textgrab/internal/model"
	"github.com/textgrab/textgrab/internal/storage"
)

func prefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Inspect and change preferences",
		Long: `Inspect and change the persisted preferences that govern detection and
clipboard behavior.

Examples:
  textgrab prefs list
  textgrab prefs get confidence
  textgrab prefs set confidence HIGH
  textgrab prefs set detect_qr_codes true
  textgrab prefs set append_to_clipboard true`,
	}

	cmd.AddCommand(prefsListCmd())
	cmd.AddCommand(prefsGetCmd())
	cmd.AddCommand(prefsSetCmd())
	return cmd
}

func prefsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show all preferences",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := initStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			prefs := store.Snapshot()
			for _, row := range prefRows(prefs) {
				fmt.Printf("  %-24s %s\n", row[0], row[1])
			}
			return nil
		},
	}
}

func prefsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Show one preference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := initStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			value, err := prefValue(store.Snapshot(), args[0])
			if err != nil {
				return err
			}
			fmt.Println(value)
			return nil
		},
	}
}

func prefsSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one preference",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := initStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			key, value := args[0], args[1]
			if err := setPref(store, key, value); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s = %s", key, value)))
			return nil
		},
	}
}

func setPref(store *storage.SQLiteStore, key, value string) error {
	switch key {
	case storage.KeyConfidence:
		level, err := model.ParseConfidenceLevel(strings.ToUpper(value))
		if err != nil {
			return err
		}
		return store.SetConfidence(level)
	case storage.KeyPrimaryLanguage:
		return store.SetPrimaryLanguage(value)
	case storage.KeyScreenshotDir:
		return store.SetScreenshotDir(value)
	case storage.KeyAppendSeparator:
		return store.SetAppendSeparator(value)
	}

	if !slices.Contains(storage.BoolKeys, key) {
		return fmt.Errorf("unknown preference %q", key)
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("value for %s must be true or false: %w", key, err)
	}
	return store.SetBool(key, b)
}

func prefValue(prefs model.Preferences, key string) (string, error) {
	for _, row := range prefRows(prefs) {
		if row[0] == key {
			return row[1], nil
		}
	}
	return "", fmt.Errorf("unknown preference %q", key)
}

func prefRows(prefs model.Preferences) [][2]string {
	return [][2]string{
		{storage.KeyConfidence, string(prefs.Confidence)},
		{storage.KeyPrimaryLanguage, prefs.PrimaryLanguage},
		{storage.KeyScreenshotDir, prefs.ScreenshotDir},
		{storage.KeyAppendSeparator, strconv.Quote(prefs.AppendSeparator)},
		{storage.KeyAlwaysDetectEnglish, strconv.FormatBool(prefs.AlwaysDetectEnglish)},
		{storage.KeyDetectQRCodes, strconv.FormatBool(prefs.DetectQRCodes)},
		{storage.KeyNotify, strconv.FormatBool(prefs.Notify)},
		{storage.KeyKeepLinebreaks, strconv.FormatBool(prefs.KeepLinebreaks)},
		{storage.KeyAppendToClipboard, strconv.FormatBool(prefs.AppendToClipboard)},
		{storage.KeyClearClipboard, strconv.FormatBool(prefs.ClearClipboardFirst)},
		{storage.KeyConfirmBeforeCommit, strconv.FormatBool(prefs.ConfirmBeforeCommit)},
		{storage.KeyPaused, strconv.FormatBool(prefs.Paused)},
		{storage.KeyLaunchAtLogin, strconv.FormatBool(prefs.LaunchAtLogin)},
	}
}
